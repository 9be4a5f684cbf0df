// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/middleware"
	"github.com/danielhkuo/quickly-elect/models"
)

// Tally handles POST /election/tally
// Counts the votes, picks the winner and closes the election.
func (h *ElectionHandler) Tally(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var result election.Result
	err := h.update(r.Context(), "tally", func(e *election.Engine) error {
		var err error
		result, err = e.Tally(caller)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	slog.Info("votes tallied",
		"winner", result.WinningProposalID,
		"winning_type", result.WinningType,
		"votes", humanize.Comma(int64(result.TotalVotesCast)),
		"participants", humanize.Comma(int64(result.TotalRegisteredParticipants)),
		"candidates", len(result.Candidates))

	middleware.JSONResponse(w, http.StatusOK, models.NewResultResponse(result))
}

// GetWinner handles GET /election/winner
func (h *ElectionHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	var id int
	var p election.Proposal
	var err error
	h.view(func(e *election.Engine) {
		id, p, err = e.Winner()
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnerResponse{
		ProposalID:  id,
		Description: p.Description,
		VoteCount:   p.VoteCount,
	})
}

// GetResult handles GET /election/result
func (h *ElectionHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	var result election.Result
	var err error
	h.view(func(e *election.Engine) {
		result, err = e.Result()
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewResultResponse(result))
}

// GetEvents handles GET /election/events?since=N
// Returns events with a sequence number greater than since.
func (h *ElectionHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	var since uint64
	if s := r.URL.Query().Get("since"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid-since", "since must be a non-negative integer")
			return
		}
		since = v
	}

	var resp models.EventsResponse
	h.view(func(e *election.Engine) {
		resp.Events = e.EventsSince(since)
		resp.LastSeq = e.LastSeq()
	})
	if resp.Events == nil {
		resp.Events = []election.Event{}
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
