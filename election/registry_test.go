// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"testing"
)

func TestSetWhitelisted(t *testing.T) {
	e := newTestEngine(t)

	if err := e.SetWhitelisted(controller, "alice", true); err != nil {
		t.Fatalf("SetWhitelisted() error = %v", err)
	}
	if !e.IsWhitelisted("alice") {
		t.Error("Expected alice to be whitelisted")
	}
	seq := e.LastSeq()

	// Same value again is a no-op.
	if err := e.SetWhitelisted(controller, "alice", true); err != nil {
		t.Fatalf("SetWhitelisted() repeat error = %v", err)
	}
	if e.LastSeq() != seq {
		t.Error("Idempotent whitelist call emitted an event")
	}

	if err := e.SetWhitelisted(controller, "alice", false); err != nil {
		t.Fatalf("SetWhitelisted(false) error = %v", err)
	}
	if e.IsWhitelisted("alice") {
		t.Error("Expected alice to be removed from whitelist")
	}
	ev := e.Events()[e.LastSeq()-1]
	if ev.Kind != EventVoterWhitelisted || ev.Allowed == nil || *ev.Allowed {
		t.Errorf("Unexpected whitelist event %+v", ev)
	}

	if err := e.SetWhitelisted(controller, "", true); !errors.Is(err, ErrEmptyIdentity) {
		t.Errorf("Expected ErrEmptyIdentity, got %v", err)
	}
}

func TestSetWhitelistedAnyPhase(t *testing.T) {
	e := newTestEngine(t)
	setupVoting(t, e, 1, "A")

	if err := e.SetWhitelisted(controller, "late", true); err != nil {
		t.Fatalf("SetWhitelisted() during voting error = %v", err)
	}
	if err := e.RegisterSelf("late"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Expected ErrWrongPhase for late registration, got %v", err)
	}
}

func TestRegisterSelf(t *testing.T) {
	e := newTestEngine(t)
	if err := e.SetWhitelisted(controller, "alice", true); err != nil {
		t.Fatalf("SetWhitelisted() error = %v", err)
	}

	if err := e.RegisterSelf("alice"); err != nil {
		t.Fatalf("RegisterSelf() error = %v", err)
	}
	p, err := e.Participant("alice")
	if err != nil {
		t.Fatalf("Participant() error = %v", err)
	}
	if !p.IsRegistered || p.HasVoted || p.VotedProposalID != nil {
		t.Errorf("Unexpected participant record %+v", p)
	}
	if e.RegisteredCount() != 1 {
		t.Errorf("Expected 1 registered participant, got %d", e.RegisteredCount())
	}
	ev := e.Events()[e.LastSeq()-1]
	if ev.Kind != EventVoterRegistered || ev.Identity != "alice" {
		t.Errorf("Unexpected registration event %+v", ev)
	}
}

func TestRegisterSelfErrors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, e *Engine)
		id      Identity
		wantErr error
		wantKnd Kind
	}{
		{
			name:    "not whitelisted",
			setup:   func(t *testing.T, e *Engine) {},
			id:      "mallory",
			wantErr: ErrNotWhitelisted,
			wantKnd: KindAuthorization,
		},
		{
			name:    "empty identity",
			setup:   func(t *testing.T, e *Engine) {},
			id:      "",
			wantErr: ErrNotWhitelisted,
			wantKnd: KindAuthorization,
		},
		{
			name: "already registered",
			setup: func(t *testing.T, e *Engine) {
				setupVoters(t, e, 1)
			},
			id:      "voter0",
			wantErr: ErrAlreadyRegistered,
			wantKnd: KindStateConflict,
		},
		{
			name: "wrong phase",
			setup: func(t *testing.T, e *Engine) {
				e.SetWhitelisted(controller, "bob", true)
				e.StartProposalsRegistration(controller)
			},
			id:      "bob",
			wantErr: ErrWrongPhase,
			wantKnd: KindPhase,
		},
		{
			name: "removed from whitelist",
			setup: func(t *testing.T, e *Engine) {
				e.SetWhitelisted(controller, "carol", true)
				e.SetWhitelisted(controller, "carol", false)
			},
			id:      "carol",
			wantErr: ErrNotWhitelisted,
			wantKnd: KindAuthorization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			tt.setup(t, e)
			count := e.RegisteredCount()
			seq := e.LastSeq()

			err := e.RegisterSelf(tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}
			if KindOf(err) != tt.wantKnd {
				t.Errorf("Expected kind %s, got %s", tt.wantKnd, KindOf(err))
			}
			if e.RegisteredCount() != count || e.LastSeq() != seq {
				t.Error("Rejected registration changed state")
			}
			checkInvariants(t, e)
		})
	}
}

func TestParticipantNotFound(t *testing.T) {
	e := newTestEngine(t)
	e.SetWhitelisted(controller, "alice", true)

	_, err := e.Participant("alice")
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("Expected ErrParticipantNotFound for unregistered identity, got %v", err)
	}
	if KindOf(err) != KindNotFound {
		t.Errorf("Expected not found kind, got %s", KindOf(err))
	}
}
