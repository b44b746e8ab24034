package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	OracleURL     string
	OracleKeySalt string
	PublicKeyJSON string
	Dev           bool
}

// ParseFlags validates flags, with environment fallback. A .env file in the
// working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("poll-locker", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Oracle wiring
	fs.StringVar(&cfg.OracleURL, "oracle", "", "Decryption oracle endpoint URL")
	fs.StringVar(&cfg.PublicKeyJSON, "public-key", "", "Election public key JSON (prefer env)")
	fs.BoolVar(&cfg.Dev, "dev", false, "Dev mode: generate a keypair and run a local oracle")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OracleKeySalt, "oracle-salt", "", "Oracle callback key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}

	if !cfg.Dev && os.Getenv("DEV_MODE") == "true" {
		cfg.Dev = true
	}

	// Secrets - MUST be provided
	if cfg.OracleKeySalt == "" {
		cfg.OracleKeySalt = os.Getenv("ORACLE_KEY_SALT")
	}
	if cfg.OracleKeySalt == "" {
		return Config{}, errors.New("ORACLE_KEY_SALT required")
	}

	// Outside dev mode the oracle endpoint and the ceremony's public key
	// must both be supplied; in dev mode they are generated at startup.
	if cfg.OracleURL == "" {
		cfg.OracleURL = os.Getenv("ORACLE_URL")
	}
	if cfg.PublicKeyJSON == "" {
		cfg.PublicKeyJSON = os.Getenv("PAILLIER_PUBLIC_KEY")
	}
	if !cfg.Dev {
		if cfg.OracleURL == "" {
			return Config{}, errors.New("ORACLE_URL required (or run with -dev)")
		}
		if cfg.PublicKeyJSON == "" {
			return Config{}, errors.New("PAILLIER_PUBLIC_KEY required (or run with -dev)")
		}
	}

	return cfg, nil
}
