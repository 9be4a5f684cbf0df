// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the election API.

# Request Types

Types for parsing incoming JSON:

  - WhitelistRequest: identity, allowed
  - SubmitProposalRequest: description
  - CastVoteRequest: proposal_id
  - AdvancePhaseRequest: phase

Pointer fields (allowed, proposal_id) distinguish "missing" from a zero
value, so a request without proposal_id is rejected instead of voting for
proposal 0.

# Response Types

Types for JSON responses:

  - WhitelistResponse: identity, allowed
  - ParticipantResponse: identity, is_registered, has_voted, voted_proposal_id
  - SubmitProposalResponse: proposal_id
  - ProposalResponse / ProposalListResponse
  - VoteResponse: identity, proposal_id
  - PhaseResponse: phase, next
  - WinnerResponse, ResultResponse
  - EventsResponse: events, last_seq
  - ErrorResponse: error, code, message

The New*Response helpers convert engine values into these types.
*/
package models
