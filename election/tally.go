// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"slices"
	"time"
)

// WinningType tells whether the winner was outright or drawn from a tie.
type WinningType string

const (
	Majority WinningType = "Majority"
	Draw     WinningType = "Draw"
)

// Result is the outcome of the election. It is created once by Tally.
type Result struct {
	WinningProposalID           int         `json:"winning_proposal_id"`
	WinningProposal             Proposal    `json:"winning_proposal"`
	WinningType                 WinningType `json:"winning_type"`
	TotalVotesCast              uint64      `json:"total_votes_cast"`
	TotalRegisteredParticipants int         `json:"total_registered_participants"`
	// Candidates holds the ids that shared the highest vote count, in
	// ascending order. It has one element for a Majority result.
	Candidates []int     `json:"candidates"`
	TalliedAt  time.Time `json:"tallied_at"`
}

func (r Result) clone() Result {
	r.Candidates = slices.Clone(r.Candidates)
	return r
}

// Tally computes the result and moves the election to VotesTallied.
//
// When several proposals share the highest count, one of them is picked
// with index = random mod len(candidates). With the default WeakSource the
// pick is predictable; see WeakSource.
func (e *Engine) Tally(caller Identity) (Result, error) {
	if err := e.requireController(caller); err != nil {
		return Result{}, err
	}
	switch e.state.Phase {
	case VotingSessionEnded:
	case VotesTallied:
		return Result{}, ErrAlreadyTallied
	default:
		return Result{}, wrongPhase(e.state.Phase, VotingSessionEnded)
	}
	if len(e.state.Proposals) == 0 {
		return Result{}, ErrNoProposals
	}

	var totalVotes, maxVoteCount uint64
	byCount := make(map[uint64][]int)
	for id, p := range e.state.Proposals {
		totalVotes += p.VoteCount
		if p.VoteCount > maxVoteCount {
			maxVoteCount = p.VoteCount
		}
		byCount[p.VoteCount] = append(byCount[p.VoteCount], id)
	}
	if totalVotes == 0 {
		return Result{}, ErrNoVotesCast
	}

	candidates := byCount[maxVoteCount]
	winner, winningType := candidates[0], Majority
	if len(candidates) > 1 {
		r, err := e.random.Uint64(drawSeed(len(e.state.Proposals), totalVotes, candidates))
		if err != nil {
			return Result{}, fmt.Errorf("failed to break tie: %w", err)
		}
		winner = candidates[r%uint64(len(candidates))]
		winningType = Draw
	}

	result := Result{
		WinningProposalID:           winner,
		WinningProposal:             e.state.Proposals[winner],
		WinningType:                 winningType,
		TotalVotesCast:              totalVotes,
		TotalRegisteredParticipants: e.state.RegisteredCount,
		Candidates:                  slices.Clone(candidates),
		TalliedAt:                   e.now().UTC(),
	}

	e.state.Result = &result
	e.setPhase(VotesTallied)
	e.emit(Event{
		Kind:       EventProposalElected,
		ProposalID: intPtr(winner),
	})
	return result.clone(), nil
}

// Result returns the stored result once votes are tallied.
func (e *Engine) Result() (Result, error) {
	if e.state.Phase != VotesTallied || e.state.Result == nil {
		return Result{}, wrongPhase(e.state.Phase, VotesTallied)
	}
	return e.state.Result.clone(), nil
}

// Winner returns the winning proposal and its id.
func (e *Engine) Winner() (int, Proposal, error) {
	r, err := e.Result()
	if err != nil {
		return 0, Proposal{}, err
	}
	return r.WinningProposalID, r.WinningProposal, nil
}
