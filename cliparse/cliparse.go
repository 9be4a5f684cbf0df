// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	ControllerID  string
	CallerKeySalt string
	TieBreak      string
	EnvFile       string

	// IssueKeyFor, when set, makes the binary print the caller key for
	// that identity and exit.
	IssueKeyFor string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-elect", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Election config
	fs.StringVar(&cfg.ControllerID, "controller", "", "Identity of the election controller")
	fs.StringVar(&cfg.TieBreak, "tie-break", "", "Tie-break randomness source (weak or crypto)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CallerKeySalt, "key-salt", "", "Caller key salt (prefer env)")

	fs.StringVar(&cfg.EnvFile, "env", "", "Load environment variables from this file")
	fs.StringVar(&cfg.IssueKeyFor, "issue-key", "", "Print the caller key for an identity and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables that are already set
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	// Secrets - MUST be provided
	if cfg.CallerKeySalt == "" {
		cfg.CallerKeySalt = os.Getenv("CALLER_KEY_SALT")
	}
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	// Issuing a key needs nothing else
	if cfg.IssueKeyFor != "" {
		return cfg, nil
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
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.ControllerID == "" {
		cfg.ControllerID = os.Getenv("CONTROLLER_ID")
	}
	if cfg.ControllerID == "" {
		return Config{}, errors.New("controller identity required (use -controller or CONTROLLER_ID env)")
	}

	if cfg.TieBreak == "" {
		cfg.TieBreak = os.Getenv("TIE_BREAK")
		if cfg.TieBreak == "" {
			cfg.TieBreak = "weak"
		}
	}
	if cfg.TieBreak != "weak" && cfg.TieBreak != "crypto" {
		return Config{}, fmt.Errorf("unsupported tie-break source %q", cfg.TieBreak)
	}

	return cfg, nil
}
