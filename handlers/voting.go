// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

// CastVote handles POST /election/votes
func (h *ElectionHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-json", "Invalid JSON")
		return
	}
	if req.ProposalID == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "missing-proposal-id", "proposal_id is required")
		return
	}

	err := h.update(r.Context(), "cast_vote", func(e *election.Engine) error {
		return e.CastVote(caller, *req.ProposalID)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// Ballot contents stay out of the logs
	slog.Info("vote cast", "identity", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Identity:   string(caller),
		ProposalID: *req.ProposalID,
	})
}

// GetVote handles GET /election/votes/{id}
func (h *ElectionHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	id := election.Identity(r.PathValue("id"))

	var proposalID int
	var err error
	h.view(func(e *election.Engine) {
		proposalID, err = e.VoteOf(id)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{
		Identity:   string(id),
		ProposalID: proposalID,
	})
}
