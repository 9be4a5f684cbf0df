// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"time"

	"github.com/google/uuid"
)

// EventKind names an accepted state transition.
type EventKind string

const (
	EventVoterWhitelisted      EventKind = "VoterWhitelisted"
	EventVoterRegistered       EventKind = "VoterRegistered"
	EventProposalRegistered    EventKind = "ProposalRegistered"
	EventVoteCast              EventKind = "VoteCast"
	EventWorkflowStatusChanged EventKind = "WorkflowStatusChanged"
	EventProposalElected       EventKind = "ProposalElected"
)

// Event is an append-only record of an accepted operation. Events are
// informational; nothing in the engine reads them back.
type Event struct {
	Seq           uint64    `json:"seq"`
	ID            string    `json:"id"`
	Kind          EventKind `json:"kind"`
	Identity      Identity  `json:"identity,omitempty"`
	ProposalID    *int      `json:"proposal_id,omitempty"`
	Allowed       *bool     `json:"allowed,omitempty"`
	PreviousPhase Phase     `json:"previous_phase,omitempty"`
	NewPhase      Phase     `json:"new_phase,omitempty"`
	At            time.Time `json:"at"`
}

func (e *Engine) emit(ev Event) {
	ev.Seq = uint64(len(e.events)) + 1
	ev.ID = uuid.NewString()
	ev.At = e.now().UTC()
	e.events = append(e.events, ev)
}

// Events returns a copy of the full notification log.
func (e *Engine) Events() []Event {
	return e.EventsSince(0)
}

// EventsSince returns the events with a sequence number greater than seq.
func (e *Engine) EventsSince(seq uint64) []Event {
	if seq >= uint64(len(e.events)) {
		return []Event{}
	}
	out := make([]Event, len(e.events)-int(seq))
	copy(out, e.events[seq:])
	return out
}

// LastSeq returns the sequence number of the newest event, or 0.
func (e *Engine) LastSeq() uint64 {
	return uint64(len(e.events))
}

func intPtr(v int) *int {
	return &v
}
