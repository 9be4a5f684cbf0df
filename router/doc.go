// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Elect API.

# Route Registration

NewRouter restores the election from the database (or starts a new one)
and returns a configured http.ServeMux:

	mux, err := router.NewRouter(ctx, db, cfg)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Admission:

	POST /election/whitelist          - Add or remove an identity (controller)
	POST /election/participants       - Register the caller
	GET  /election/participants/{id}  - Participant record

Proposals:

	POST /election/proposals          - Submit a proposal
	GET  /election/proposals          - List proposals with counts
	GET  /election/proposals/{id}     - One proposal

Votes:

	POST /election/votes              - Cast the caller's vote
	GET  /election/votes/{id}         - Proposal an identity voted for

Workflow (controller):

	GET  /election/phase
	POST /election/phase              - Advance to a named phase
	POST /election/proposals-registration/start
	POST /election/proposals-registration/end
	POST /election/voting-session/start
	POST /election/voting-session/end

Results:

	POST /election/tally              - Tally votes (controller)
	GET  /election/winner
	GET  /election/result
	GET  /election/events?since=N     - Notification log
*/
package router
