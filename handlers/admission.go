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

// SetWhitelisted handles POST /election/whitelist
func (h *ElectionHandler) SetWhitelisted(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.WhitelistRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-json", "Invalid JSON")
		return
	}
	if req.Allowed == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "missing-allowed", "allowed is required")
		return
	}

	id := election.Identity(req.Identity)
	err := h.update(r.Context(), "set_whitelisted", func(e *election.Engine) error {
		return e.SetWhitelisted(caller, id, *req.Allowed)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("whitelist updated", "identity", id, "allowed", *req.Allowed)

	middleware.JSONResponse(w, http.StatusOK, models.WhitelistResponse{
		Identity: req.Identity,
		Allowed:  *req.Allowed,
	})
}

// RegisterSelf handles POST /election/participants
func (h *ElectionHandler) RegisterSelf(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var p election.Participant
	err := h.update(r.Context(), "register_self", func(e *election.Engine) error {
		if err := e.RegisterSelf(caller); err != nil {
			return err
		}
		p, _ = e.Participant(caller)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("participant registered", "identity", caller)

	middleware.JSONResponse(w, http.StatusCreated, models.NewParticipantResponse(caller, p))
}

// GetParticipant handles GET /election/participants/{id}
func (h *ElectionHandler) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id := election.Identity(r.PathValue("id"))
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "missing-id", "id is required")
		return
	}

	var p election.Participant
	var err error
	h.view(func(e *election.Engine) {
		p, err = e.Participant(id)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewParticipantResponse(id, p))
}
