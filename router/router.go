// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/handlers"
	"github.com/danielhkuo/quickly-elect/metrics"
	"github.com/danielhkuo/quickly-elect/middleware"
)

// NewRouter loads the election from db and registers every endpoint.
func NewRouter(ctx context.Context, conn *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	store := db.NewStore(conn)
	engine, err := handlers.LoadEngine(ctx, store, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	h := handlers.NewElectionHandler(engine, store, cfg, m)

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Admission (whitelist is controller only)
	mux.HandleFunc("POST /election/whitelist", middleware.WithLogging(h.SetWhitelisted))
	mux.HandleFunc("POST /election/participants", middleware.WithLogging(h.RegisterSelf))
	mux.HandleFunc("GET /election/participants/{id}", middleware.WithLogging(h.GetParticipant))

	// Proposals
	mux.HandleFunc("POST /election/proposals", middleware.WithLogging(h.SubmitProposal))
	mux.HandleFunc("GET /election/proposals", middleware.WithLogging(h.ListProposals))
	mux.HandleFunc("GET /election/proposals/{id}", middleware.WithLogging(h.GetProposal))

	// Votes
	mux.HandleFunc("POST /election/votes", middleware.WithLogging(h.CastVote))
	mux.HandleFunc("GET /election/votes/{id}", middleware.WithLogging(h.GetVote))

	// Workflow (controller only)
	mux.HandleFunc("GET /election/phase", middleware.WithLogging(h.GetPhase))
	mux.HandleFunc("POST /election/phase", middleware.WithLogging(h.AdvancePhase))
	mux.HandleFunc("POST /election/proposals-registration/start", middleware.WithLogging(h.StartProposalsRegistration))
	mux.HandleFunc("POST /election/proposals-registration/end", middleware.WithLogging(h.EndProposalsRegistration))
	mux.HandleFunc("POST /election/voting-session/start", middleware.WithLogging(h.StartVotingSession))
	mux.HandleFunc("POST /election/voting-session/end", middleware.WithLogging(h.EndVotingSession))

	// Results
	mux.HandleFunc("POST /election/tally", middleware.WithLogging(h.Tally))
	mux.HandleFunc("GET /election/winner", middleware.WithLogging(h.GetWinner))
	mux.HandleFunc("GET /election/result", middleware.WithLogging(h.GetResult))
	mux.HandleFunc("GET /election/events", middleware.WithLogging(h.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-elect API v1"))
	})

	return mux, nil
}
