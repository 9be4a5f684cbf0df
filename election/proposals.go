// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"slices"
	"strings"
)

// SubmitProposal appends a proposal and returns its identifier.
func (e *Engine) SubmitProposal(id Identity, description string) (int, error) {
	if _, err := e.requireRegistered(id); err != nil {
		return 0, err
	}
	if e.state.Phase != ProposalsRegistrationStarted {
		return 0, wrongPhase(e.state.Phase, ProposalsRegistrationStarted)
	}
	if strings.TrimSpace(description) == "" {
		return 0, ErrEmptyDescription
	}

	proposalID := len(e.state.Proposals)
	e.state.Proposals = append(e.state.Proposals, Proposal{Description: description})
	e.emit(Event{
		Kind:       EventProposalRegistered,
		Identity:   id,
		ProposalID: intPtr(proposalID),
	})
	return proposalID, nil
}

// Proposal returns the proposal at position proposalID.
func (e *Engine) Proposal(proposalID int) (Proposal, error) {
	if proposalID < 0 || proposalID >= len(e.state.Proposals) {
		return Proposal{}, proposalNotFound(proposalID, len(e.state.Proposals))
	}
	return e.state.Proposals[proposalID], nil
}

// Proposals returns every proposal in submission order.
func (e *Engine) Proposals() []Proposal {
	return slices.Clone(e.state.Proposals)
}

// CastVote records the caller's single vote for proposalID.
func (e *Engine) CastVote(id Identity, proposalID int) error {
	p, err := e.requireRegistered(id)
	if err != nil {
		return err
	}
	if e.state.Phase != VotingSessionStarted {
		return wrongPhase(e.state.Phase, VotingSessionStarted)
	}
	if p.HasVoted {
		return ErrAlreadyVoted
	}
	if proposalID < 0 || proposalID >= len(e.state.Proposals) {
		return proposalNotFound(proposalID, len(e.state.Proposals))
	}

	e.state.Proposals[proposalID].VoteCount++
	p.HasVoted = true
	p.VotedProposalID = intPtr(proposalID)
	e.state.Participants[id] = p
	e.emit(Event{
		Kind:       EventVoteCast,
		Identity:   id,
		ProposalID: intPtr(proposalID),
	})
	return nil
}

// VoteOf returns the proposal id voted for by id. It fails with
// ErrHasNotVoted rather than returning a zero id for someone who never voted.
func (e *Engine) VoteOf(id Identity) (int, error) {
	p, ok := e.state.Participants[id]
	if !ok || !p.HasVoted || p.VotedProposalID == nil {
		return 0, ErrHasNotVoted
	}
	return *p.VotedProposalID, nil
}
