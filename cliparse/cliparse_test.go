// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("ORACLE_KEY_SALT", "test-salt")
	os.Setenv("DEV_MODE", "true")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if !cfg.Dev {
		t.Error("expected dev mode from DEV_MODE env")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-oracle-salt", "s1", "-dev"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_DefaultPort(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "file:test.db", "-oracle-salt", "s1", "-dev"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
}

func TestParseFlags_MissingSalt(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-dev"})
	if err == nil {
		t.Error("expected error for missing oracle key salt")
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-oracle-salt", "s1", "-dev"})
	if err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_OracleRequiredOutsideDev(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "file:test.db", "-oracle-salt", "s1"})
	if err == nil {
		t.Error("expected error when oracle URL missing outside dev mode")
	}

	_, err = ParseFlags([]string{
		"-d", "file:test.db", "-oracle-salt", "s1",
		"-oracle", "http://oracle.local/decrypt",
	})
	if err == nil {
		t.Error("expected error when public key missing outside dev mode")
	}

	cfg, err := ParseFlags([]string{
		"-d", "file:test.db", "-oracle-salt", "s1",
		"-oracle", "http://oracle.local/decrypt",
		"-public-key", `{"length":2048,"n":"ab"}`,
	})
	if err != nil {
		t.Fatalf("expected success with full oracle wiring, got %v", err)
	}
	if cfg.OracleURL != "http://oracle.local/decrypt" {
		t.Errorf("unexpected oracle URL: %s", cfg.OracleURL)
	}
}
