// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/quickly-elect/db"
	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/testutil"
)

const chair election.Identity = testutil.Controller

func TestCreateSchemaIdempotent(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	// SetupTestDB already ran it once
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema() second run error = %v", err)
	}
}

func TestDriverName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "sqlite", false},
		{"sqlite", "sqlite", false},
		{"postgres", "postgres", false},
		{"mysql", "", true},
	}
	for _, tt := range tests {
		got, err := db.DriverName(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("DriverName(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestLoadEmpty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	_, events, found, err := db.NewStore(conn).Load(context.Background(), chair)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if found {
		t.Error("Expected no stored election")
	}
	if len(events) != 0 {
		t.Errorf("Expected no events, got %d", len(events))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	store := db.NewStore(conn)
	ctx := context.Background()

	e := election.New(chair)
	if err := e.SetWhitelisted(chair, "alice", true); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, chair, e.Snapshot(), e.Events()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Second save appends only the new events
	seq := e.LastSeq()
	if err := e.RegisterSelf("alice"); err != nil {
		t.Fatal(err)
	}
	if err := e.StartProposalsRegistration(chair); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, chair, e.Snapshot(), e.EventsSince(seq)); err != nil {
		t.Fatalf("Save() second call error = %v", err)
	}

	st, events, found, err := store.Load(ctx, chair)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !found {
		t.Fatal("Expected stored election")
	}
	if st.Phase != election.ProposalsRegistrationStarted {
		t.Errorf("Expected phase %s, got %s", election.ProposalsRegistrationStarted, st.Phase)
	}
	if !st.Participants["alice"].IsRegistered || st.RegisteredCount != 1 {
		t.Errorf("Participant not restored: %+v", st.Participants)
	}
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Seq != uint64(i+1) || ev.ID != e.Events()[i].ID {
			t.Errorf("Event %d mismatch: %+v", i, ev)
		}
	}

	restored, err := election.Restore(chair, st, events)
	if err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if restored.Phase() != e.Phase() {
		t.Errorf("Restored phase %s, want %s", restored.Phase(), e.Phase())
	}
}

func TestSaveDuplicateEventRollsBack(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	store := db.NewStore(conn)
	ctx := context.Background()

	e := election.New(chair)
	e.SetWhitelisted(chair, "alice", true)
	if err := store.Save(ctx, chair, e.Snapshot(), e.Events()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Re-sending event 1 violates the primary key; the state update must not stick
	e.RegisterSelf("alice")
	if err := store.Save(ctx, chair, e.Snapshot(), e.Events()); err == nil {
		t.Fatal("Expected duplicate event insert to fail")
	}

	st, events, _, err := store.Load(ctx, chair)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if st.RegisteredCount != 0 {
		t.Errorf("State was updated despite failed transaction: %+v", st)
	}
	if len(events) != 1 {
		t.Errorf("Expected 1 event after rollback, got %d", len(events))
	}
}

func TestLoadControllerMismatch(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()
	store := db.NewStore(conn)
	ctx := context.Background()

	e := election.New(chair)
	if err := store.Save(ctx, chair, e.Snapshot(), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	_, _, _, err := store.Load(ctx, "usurper")
	if !errors.Is(err, db.ErrControllerMismatch) {
		t.Errorf("Expected ErrControllerMismatch, got %v", err)
	}
}
