// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse parses command-line flags and environment variables into
the server Config. A .env file is honored via godotenv.

Flags fall back to environment variables:

	-p            PORT                 (default 3318)
	-d            DATABASE_URL         (required)
	-t            DATABASE_TYPE        (sqlite or postgres, default sqlite)
	-oracle       ORACLE_URL           (required unless -dev)
	-public-key   PAILLIER_PUBLIC_KEY  (required unless -dev)
	-oracle-salt  ORACLE_KEY_SALT      (required)
	-dev          DEV_MODE=true        (generate keypair, run local oracle)
*/
package cliparse
