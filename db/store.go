// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-elect/election"
)

// ErrControllerMismatch is returned when the stored election belongs to a
// different controller than the one configured.
var ErrControllerMismatch = errors.New("stored election has a different controller")

// Store persists the engine state and its notification log.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load returns the saved state and events. found is false when nothing has
// been saved yet.
func (s *Store) Load(ctx context.Context, controller election.Identity) (st election.State, events []election.Event, found bool, err error) {
	var storedController, payload string
	err = s.db.QueryRowContext(ctx, `
		SELECT controller, payload FROM election_state WHERE id = 1
	`).Scan(&storedController, &payload)

	if err == sql.ErrNoRows {
		return election.State{}, nil, false, nil
	}
	if err != nil {
		return election.State{}, nil, false, fmt.Errorf("failed to query election state: %w", err)
	}
	if election.Identity(storedController) != controller {
		return election.State{}, nil, false, fmt.Errorf("%w: stored %q, configured %q", ErrControllerMismatch, storedController, controller)
	}

	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return election.State{}, nil, false, fmt.Errorf("failed to parse election state: %w", err)
	}

	events, err = s.events(ctx)
	if err != nil {
		return election.State{}, nil, false, err
	}
	return st, events, true, nil
}

func (s *Store) events(ctx context.Context) ([]election.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM election_event ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []election.Event{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		var ev election.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// Save writes the state and appends events in one transaction.
func (s *Store) Save(ctx context.Context, controller election.Identity, st election.State, events []election.Event) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode election state: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO election_state (id, controller, phase, payload, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET phase = excluded.phase, payload = excluded.payload, updated_at = excluded.updated_at
	`, string(controller), string(st.Phase), string(payload), now)
	if err != nil {
		return fmt.Errorf("failed to save election state: %w", err)
	}

	for _, ev := range events {
		evPayload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to encode event %d: %w", ev.Seq, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO election_event (seq, id, kind, payload, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, int64(ev.Seq), ev.ID, string(ev.Kind), string(evPayload), ev.At)
		if err != nil {
			return fmt.Errorf("failed to insert event %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
