// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package election implements a single-election governance engine.

A controller admits identities to a whitelist, admitted identities register
themselves, participants submit proposals and then cast exactly one vote
each. The controller finally tallies the votes to elect one proposal.

# Phases

The election moves forward one step at a time and never goes back:

	RegisteringVoters → ProposalsRegistrationStarted → ProposalsRegistrationEnded
	→ VotingSessionStarted → VotingSessionEnded → VotesTallied

The controller advances the first four transitions with Advance (or the
named helpers StartProposalsRegistration, EndProposalsRegistration,
StartVotingSession and EndVotingSession). Only Tally reaches VotesTallied.

# Operations

	e := election.New("chair")
	e.SetWhitelisted("chair", "alice", true)
	e.RegisterSelf("alice")
	e.StartProposalsRegistration("chair")
	id, _ := e.SubmitProposal("alice", "Plant more trees")
	e.EndProposalsRegistration("chair")
	e.StartVotingSession("chair")
	e.CastVote("alice", id)
	e.EndVotingSession("chair")
	result, _ := e.Tally("chair")

Every operation is atomic: it either applies all of its changes and events
or returns an *Error and leaves the engine untouched. Errors carry a Kind
(authorization, phase, not found, state conflict, empty election, invalid
argument) and a Code that works with errors.Is:

	if errors.Is(err, election.ErrAlreadyVoted) { ... }

# Tie-break

If several proposals share the highest vote count, the winner is
candidates[random mod len(candidates)] and the result is a Draw. The
random value comes from a RandomSource. The default WeakSource is
predictable; pass WithRandomSource(CryptoSource{}) for an unpredictable
draw, or plug in a verifiable source.

# Concurrency

The engine holds no locks. Callers must present operations one at a time,
which the HTTP host does with a mutex.
*/
package election
