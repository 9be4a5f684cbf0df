// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-elect/models"
)

// TestConcurrentVotes verifies that simultaneous votes from different
// participants are all counted and persisted exactly once
func TestConcurrentVotes(t *testing.T) {
	env := newTestEnv(t)

	numVoters := 20
	voters := env.openVoting(t, numVoters, "A", "B", "C")
	seq := env.h.engine.LastSeq()

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i, voter := range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			proposalID := i % 3
			w := env.serve(env.h.CastVote, "POST", "/election/votes", models.CastVoteRequest{ProposalID: &proposalID}, voter)
			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var sum uint64
	for _, p := range env.h.engine.Proposals() {
		sum += p.VoteCount
	}
	if sum != uint64(numVoters) {
		t.Errorf("Expected %d votes counted, got %d", numVoters, sum)
	}
	if got := env.h.engine.LastSeq() - seq; got != uint64(numVoters) {
		t.Errorf("Expected %d vote events, got %d", numVoters, got)
	}

	// What was stored matches what is live
	_, events, _, err := env.store.Load(context.Background(), env.h.engine.Controller())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if uint64(len(events)) != env.h.engine.LastSeq() {
		t.Errorf("Stored %d events, live engine has %d", len(events), env.h.engine.LastSeq())
	}
}

// TestConcurrentDoubleVote verifies that a participant racing with itself
// gets exactly one vote in
func TestConcurrentDoubleVote(t *testing.T) {
	env := newTestEnv(t)
	voters := env.openVoting(t, 1, "A", "B")

	numAttempts := 10
	var successCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := range numAttempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			proposalID := i % 2
			w := env.serve(env.h.CastVote, "POST", "/election/votes", models.CastVoteRequest{ProposalID: &proposalID}, voters[0])
			switch w.Code {
			case http.StatusCreated:
				successCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted vote, got %d", successCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}
}
