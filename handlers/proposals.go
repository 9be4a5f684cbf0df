// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

// SubmitProposal handles POST /election/proposals
func (h *ElectionHandler) SubmitProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.SubmitProposalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-json", "Invalid JSON")
		return
	}

	var id int
	err := h.update(r.Context(), "submit_proposal", func(e *election.Engine) error {
		var err error
		id, err = e.SubmitProposal(caller, req.Description)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("proposal registered", "proposal_id", id, "by", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitProposalResponse{ProposalID: id})
}

// ListProposals handles GET /election/proposals
func (h *ElectionHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	var proposals []election.Proposal
	h.view(func(e *election.Engine) {
		proposals = e.Proposals()
	})

	resp := models.ProposalListResponse{Proposals: make([]models.ProposalResponse, 0, len(proposals))}
	for id, p := range proposals {
		resp.Proposals = append(resp.Proposals, models.NewProposalResponse(id, p))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetProposal handles GET /election/proposals/{id}
func (h *ElectionHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-proposal-id", "proposal id must be an integer")
		return
	}

	var p election.Proposal
	h.view(func(e *election.Engine) {
		p, err = e.Proposal(id)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewProposalResponse(id, p))
}
