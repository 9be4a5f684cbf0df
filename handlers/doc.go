// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers serves the election engine over HTTP.

# Election Handler

A single ElectionHandler owns the engine, the store and the metrics:

	engine, err := handlers.LoadEngine(ctx, store, cfg)
	h := handlers.NewElectionHandler(engine, store, cfg, metrics.New())

Mutating requests run one at a time against a copy of the engine. The
copy's state and new events are written in one transaction, and only then
does the copy become the live engine. Reads share a lock and see the last
committed state.

# Callers

Every mutating request names its caller in X-Caller-ID and proves it with
X-Caller-Key, an HMAC of the identity (see package auth). Missing or bad
keys get 401. The engine decides what the caller may do.

# Lifecycle

	POST /election/whitelist                     → SetWhitelisted (controller)
	POST /election/participants                  → RegisterSelf
	POST /election/proposals-registration/start  → StartProposalsRegistration
	POST /election/proposals                     → SubmitProposal
	POST /election/proposals-registration/end    → EndProposalsRegistration
	POST /election/voting-session/start          → StartVotingSession
	POST /election/votes                         → CastVote
	POST /election/voting-session/end            → EndVotingSession
	POST /election/tally                         → Tally (controller)

POST /election/phase advances by name instead of by route.

# Errors

Engine errors map to statuses by kind: authorization 403, phase and state
conflicts 409, not found 404, empty election 422, invalid argument 400.
The body carries the engine's code:

	{"error": "Conflict", "code": "wrong-phase", "message": "..."}
*/
package handlers
