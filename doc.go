// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Elect API server.

Quickly Elect runs a single election: a controller whitelists voters, the
voters register and submit proposals, each casts one vote, and the tally
picks the proposal with the most votes. Ties are broken by drawing one of
the tied proposals at random.

# Starting the Server

	CALLER_KEY_SALT=... CONTROLLER_ID=chair DATABASE_URL=file:election.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -controller chair

Callers authenticate with a key derived from their identity. Print one with:

	go run . -issue-key alice

# Configuration

Required settings:

  - CALLER_KEY_SALT (-key-salt): Secret for caller key HMAC
  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - CONTROLLER_ID (-controller): Identity allowed to run the election

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TIE_BREAK (-tie-break): weak (default) or crypto

A .env file in the working directory, or the file named by -env, is loaded
first and never overrides variables already set.

# Architecture

  - election: The engine (phases, registry, proposals, votes, tally)
  - handlers: HTTP host that serializes and persists engine operations
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Caller key generation and validation
  - db: Schema and election store
  - metrics: Prometheus counters for operations and phase
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
