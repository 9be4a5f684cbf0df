// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

// GetPhase handles GET /election/phase
func (h *ElectionHandler) GetPhase(w http.ResponseWriter, r *http.Request) {
	var p election.Phase
	h.view(func(e *election.Engine) {
		p = e.Phase()
	})

	middleware.JSONResponse(w, http.StatusOK, models.NewPhaseResponse(p))
}

// AdvancePhase handles POST /election/phase
func (h *ElectionHandler) AdvancePhase(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.AdvancePhaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-json", "Invalid JSON")
		return
	}
	requested, err := election.ParsePhase(req.Phase)
	if err != nil {
		writeError(w, err)
		return
	}

	h.transition(w, r, caller, "advance_phase", func(e *election.Engine, id election.Identity) error {
		return e.Advance(id, requested)
	})
}

// StartProposalsRegistration handles POST /election/proposals-registration/start
func (h *ElectionHandler) StartProposalsRegistration(w http.ResponseWriter, r *http.Request) {
	h.namedTransition(w, r, "start_proposals_registration", (*election.Engine).StartProposalsRegistration)
}

// EndProposalsRegistration handles POST /election/proposals-registration/end
func (h *ElectionHandler) EndProposalsRegistration(w http.ResponseWriter, r *http.Request) {
	h.namedTransition(w, r, "end_proposals_registration", (*election.Engine).EndProposalsRegistration)
}

// StartVotingSession handles POST /election/voting-session/start
func (h *ElectionHandler) StartVotingSession(w http.ResponseWriter, r *http.Request) {
	h.namedTransition(w, r, "start_voting_session", (*election.Engine).StartVotingSession)
}

// EndVotingSession handles POST /election/voting-session/end
func (h *ElectionHandler) EndVotingSession(w http.ResponseWriter, r *http.Request) {
	h.namedTransition(w, r, "end_voting_session", (*election.Engine).EndVotingSession)
}

func (h *ElectionHandler) namedTransition(w http.ResponseWriter, r *http.Request, op string, fn func(*election.Engine, election.Identity) error) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	h.transition(w, r, caller, op, fn)
}

func (h *ElectionHandler) transition(w http.ResponseWriter, r *http.Request, caller election.Identity, op string, fn func(*election.Engine, election.Identity) error) {
	var previous, current election.Phase
	err := h.update(r.Context(), op, func(e *election.Engine) error {
		previous = e.Phase()
		if err := fn(e, caller); err != nil {
			return err
		}
		current = e.Phase()
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("phase advanced",
		"from", previous,
		"to", current,
		"step", humanize.Ordinal(current.Index()+1)+" of "+humanize.Comma(int64(len(election.Phases))))

	middleware.JSONResponse(w, http.StatusOK, models.NewPhaseResponse(current))
}
