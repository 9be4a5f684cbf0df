// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/quickly-elect/election"
)

// Request types

type WhitelistRequest struct {
	Identity string `json:"identity"`
	Allowed  *bool  `json:"allowed"`
}

type SubmitProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	ProposalID *int `json:"proposal_id"`
}

type AdvancePhaseRequest struct {
	Phase string `json:"phase"`
}

// Response types

type WhitelistResponse struct {
	Identity string `json:"identity"`
	Allowed  bool   `json:"allowed"`
}

type ParticipantResponse struct {
	Identity        string `json:"identity"`
	IsRegistered    bool   `json:"is_registered"`
	HasVoted        bool   `json:"has_voted"`
	VotedProposalID *int   `json:"voted_proposal_id,omitempty"`
}

type SubmitProposalResponse struct {
	ProposalID int `json:"proposal_id"`
}

type ProposalResponse struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

type ProposalListResponse struct {
	Proposals []ProposalResponse `json:"proposals"`
}

type VoteResponse struct {
	Identity   string `json:"identity"`
	ProposalID int    `json:"proposal_id"`
}

type PhaseResponse struct {
	Phase string  `json:"phase"`
	Next  *string `json:"next,omitempty"`
}

type WinnerResponse struct {
	ProposalID  int    `json:"proposal_id"`
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

type ResultResponse struct {
	Winner                      WinnerResponse `json:"winner"`
	WinningType                 string         `json:"winning_type"`
	TotalVotesCast              uint64         `json:"total_votes_cast"`
	TotalRegisteredParticipants int            `json:"total_registered_participants"`
	Candidates                  []int          `json:"candidates"`
	TalliedAt                   time.Time      `json:"tallied_at"`
}

type EventsResponse struct {
	Events  []election.Event `json:"events"`
	LastSeq uint64           `json:"last_seq"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Conversions from engine types

func NewProposalResponse(id int, p election.Proposal) ProposalResponse {
	return ProposalResponse{ID: id, Description: p.Description, VoteCount: p.VoteCount}
}

func NewParticipantResponse(id election.Identity, p election.Participant) ParticipantResponse {
	return ParticipantResponse{
		Identity:        string(id),
		IsRegistered:    p.IsRegistered,
		HasVoted:        p.HasVoted,
		VotedProposalID: p.VotedProposalID,
	}
}

func NewPhaseResponse(p election.Phase) PhaseResponse {
	resp := PhaseResponse{Phase: p.String()}
	if next, ok := p.Next(); ok {
		s := next.String()
		resp.Next = &s
	}
	return resp
}

func NewResultResponse(r election.Result) ResultResponse {
	return ResultResponse{
		Winner: WinnerResponse{
			ProposalID:  r.WinningProposalID,
			Description: r.WinningProposal.Description,
			VoteCount:   r.WinningProposal.VoteCount,
		},
		WinningType:                 string(r.WinningType),
		TotalVotesCast:              r.TotalVotesCast,
		TotalRegisteredParticipants: r.TotalRegisteredParticipants,
		Candidates:                  r.Candidates,
		TalliedAt:                   r.TalliedAt,
	}
}
