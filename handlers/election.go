// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/danielhkuo/quickly-elect/auth"
	"github.com/danielhkuo/quickly-elect/cliparse"
	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/metrics"
	"github.com/danielhkuo/quickly-elect/middleware"
)

var errPersist = errors.New("failed to persist election")

// ElectionHandler serves the election engine over HTTP. It is the only
// owner of the engine and presents operations to it one at a time.
type ElectionHandler struct {
	mu      sync.RWMutex
	engine  *election.Engine
	store   *db.Store
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewElectionHandler(engine *election.Engine, store *db.Store, cfg cliparse.Config, m *metrics.Metrics) *ElectionHandler {
	m.SetPhase(engine.Phase())
	return &ElectionHandler{engine: engine, store: store, cfg: cfg, metrics: m}
}

// LoadEngine restores the stored election, or creates and stores a new one
// for the configured controller.
func LoadEngine(ctx context.Context, store *db.Store, cfg cliparse.Config) (*election.Engine, error) {
	random, err := election.NewRandomSource(cfg.TieBreak)
	if err != nil {
		return nil, err
	}
	controller := election.Identity(cfg.ControllerID)

	st, events, found, err := store.Load(ctx, controller)
	if err != nil {
		return nil, err
	}
	if found {
		e, err := election.Restore(controller, st, events, election.WithRandomSource(random))
		if err != nil {
			return nil, err
		}
		slog.Info("election restored", "phase", e.Phase(), "events", e.LastSeq())
		return e, nil
	}

	e := election.New(controller, election.WithRandomSource(random))
	if err := store.Save(ctx, controller, e.Snapshot(), nil); err != nil {
		return nil, err
	}
	slog.Info("election created", "controller", controller, "tie_break", cfg.TieBreak)
	return e, nil
}

// update runs op against a copy of the engine. The copy replaces the live
// engine only after its state and new events are stored, so a failed write
// leaves nothing behind in memory or in the database.
func (h *ElectionHandler) update(ctx context.Context, op string, fn func(e *election.Engine) error) (err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() { h.metrics.Observe(op, err) }()

	next := h.engine.Clone()
	seq := next.LastSeq()
	if err := fn(next); err != nil {
		return err
	}

	events := next.EventsSince(seq)
	if len(events) == 0 {
		// Nothing changed (e.g. an idempotent whitelist call)
		return nil
	}
	if err := h.store.Save(ctx, next.Controller(), next.Snapshot(), events); err != nil {
		return fmt.Errorf("%w: %v", errPersist, err)
	}

	h.engine = next
	h.metrics.SetPhase(next.Phase())
	h.metrics.AddEvents(len(events))
	return nil
}

// view runs a read-only function against the live engine.
func (h *ElectionHandler) view(fn func(e *election.Engine)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	fn(h.engine)
}

// caller authenticates the request or writes a 401.
func (h *ElectionHandler) caller(w http.ResponseWriter, r *http.Request) (election.Identity, bool) {
	id, err := auth.Authenticate(r.Header.Get(auth.HeaderCallerID), r.Header.Get(auth.HeaderCallerKey), h.cfg.CallerKeySalt)
	if err != nil {
		code := "invalid-caller-key"
		if errors.Is(err, auth.ErrMissingCaller) {
			code = "missing-caller"
		}
		middleware.ErrorResponse(w, http.StatusUnauthorized, code, err.Error())
		return "", false
	}
	return id, true
}

// statusFor maps an engine error kind to an HTTP status.
func statusFor(err error) int {
	switch election.KindOf(err) {
	case election.KindAuthorization:
		return http.StatusForbidden
	case election.KindPhase, election.KindStateConflict:
		return http.StatusConflict
	case election.KindNotFound:
		return http.StatusNotFound
	case election.KindEmptyElection:
		return http.StatusUnprocessableEntity
	case election.KindInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports an engine or persistence error.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("election operation failed", "error", err)
		middleware.ErrorResponse(w, status, "internal", "Failed to apply operation")
		return
	}
	middleware.ErrorResponse(w, status, election.CodeOf(err), err.Error())
}
