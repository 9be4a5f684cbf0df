// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: SQLite or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - ControllerID: Identity of the election controller (required)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - TieBreak: "weak" (default) or "crypto"

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-controller   Controller identity
	-tie-break    Tie-break randomness source
	-key-salt     Caller key salt
	-env          Load variables from a dotenv file
	-issue-key    Print the caller key for an identity and exit

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CONTROLLER_ID   → -controller
	TIE_BREAK       → -tie-break
	CALLER_KEY_SALT → -key-salt

CLI flags take precedence over environment variables. A .env file in the
working directory (or the file named by -env) is loaded first and never
overrides variables that are already set.

# Tie-break

The weak source is predictable by anyone who can guess when the tally
runs. Use -tie-break crypto unless the controller is fully trusted.
*/
package cliparse
