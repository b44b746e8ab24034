// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/Bethune7436/N-private-poll-locker/cliparse"
	"github.com/Bethune7436/N-private-poll-locker/db"
	"github.com/Bethune7436/N-private-poll-locker/engine"
	"github.com/Bethune7436/N-private-poll-locker/oracle"
	"github.com/Bethune7436/N-private-poll-locker/router"
	"github.com/Bethune7436/N-private-poll-locker/tally"
)

const devKeyBits = 2048

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Wire the election key and the decryption oracle. In dev mode the
	// server generates a throwaway keypair and answers its own decryption
	// requests; in production the key holders run out of process and the
	// engine only ever sees the public half.
	var pub *tally.PublicKey
	var dispatcher engine.Dispatcher
	var localOracle *oracle.Local

	if cfg.Dev {
		priv, err := tally.GenerateKey(devKeyBits)
		if err != nil {
			slog.Error("dev key generation failed", "error", err)
			os.Exit(1)
		}
		pub = &priv.PublicKey
		localOracle = oracle.NewLocal(priv)
		dispatcher = localOracle
		slog.Warn("Dev mode: in-process oracle holds the private key")
	} else {
		pub, err = tally.ParsePublicKey([]byte(cfg.PublicKeyJSON))
		if err != nil {
			slog.Error("invalid election public key", "error", err)
			os.Exit(1)
		}
		dispatcher = oracle.NewHTTPDispatcher(cfg.OracleURL, cfg.OracleKeySalt)
	}

	eng := engine.New(dbConn, pub, dispatcher)
	if localOracle != nil {
		localOracle.SetCallback(eng.OnDecryptionResult)
	}

	// Create router
	mux := router.NewRouter(eng, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
