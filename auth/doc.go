// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates callers of the election API.

# Caller Keys

Each identity has a caller key derived with HMAC-SHA256:

	key := auth.GenerateCallerKey("alice", salt)
	err := auth.ValidateCallerKey("alice", key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same identity and salt always produce the same key, so nothing has to be
stored. Operators hand keys out with:

	quickly-elect -issue-key alice

# Requests

Clients send both headers on every write:

	X-Caller-ID:  alice
	X-Caller-Key: <key>

Authenticate checks the pair and returns the election.Identity the engine
works with. The engine itself never sees keys.
*/
package auth
