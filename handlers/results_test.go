// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"slices"
	"testing"

	"github.com/danielhkuo/quickly-elect/election"
	"github.com/danielhkuo/quickly-elect/models"
	"github.com/danielhkuo/quickly-elect/testutil"
)

// closedVoting opens voting, casts votes[i] for voter i and ends the session.
func (env *testEnv) closedVoting(t *testing.T, votes []int, descs ...string) {
	t.Helper()
	voters := env.openVoting(t, max(len(votes), 1), descs...)
	for i, proposalID := range votes {
		env.vote(t, voters[i], proposalID)
	}
	env.advance(t, env.h.EndVotingSession, "/election/voting-session/end")
}

func TestTallyMajority(t *testing.T) {
	env := newTestEnv(t)
	env.closedVoting(t, []int{1, 1, 0, 2, 1}, "A", "B", "C")

	w := env.mustServe(t, http.StatusOK, env.h.Tally, "POST", "/election/tally", nil, testutil.Controller)
	var result models.ResultResponse
	testutil.AssertJSON(t, w, &result)

	if result.Winner.ProposalID != 1 || result.Winner.Description != "B" || result.Winner.VoteCount != 3 {
		t.Errorf("Unexpected winner %+v", result.Winner)
	}
	if result.WinningType != string(election.Majority) {
		t.Errorf("Expected Majority, got %s", result.WinningType)
	}
	if result.TotalVotesCast != 5 || result.TotalRegisteredParticipants != 5 {
		t.Errorf("Expected 5 votes from 5 participants, got %d from %d", result.TotalVotesCast, result.TotalRegisteredParticipants)
	}
	if result.TalliedAt.IsZero() {
		t.Error("Expected tallied_at to be set")
	}

	if got := env.phase(t); got != string(election.VotesTallied) {
		t.Errorf("Expected VotesTallied, got %s", got)
	}

	w = env.mustServe(t, http.StatusOK, env.h.GetWinner, "GET", "/election/winner", nil, "")
	var winner models.WinnerResponse
	testutil.AssertJSON(t, w, &winner)
	if winner != result.Winner {
		t.Errorf("GetWinner() = %+v, want %+v", winner, result.Winner)
	}

	w = env.mustServe(t, http.StatusOK, env.h.GetResult, "GET", "/election/result", nil, "")
	var stored models.ResultResponse
	testutil.AssertJSON(t, w, &stored)
	if stored.Winner != result.Winner || !stored.TalliedAt.Equal(result.TalliedAt) {
		t.Errorf("GetResult() = %+v, want %+v", stored, result)
	}
}

func TestTallyDraw(t *testing.T) {
	env := newTestEnv(t)
	env.closedVoting(t, []int{0, 2, 2, 0, 1}, "A", "B", "C")

	w := env.mustServe(t, http.StatusOK, env.h.Tally, "POST", "/election/tally", nil, testutil.Controller)
	var result models.ResultResponse
	testutil.AssertJSON(t, w, &result)

	if result.WinningType != string(election.Draw) {
		t.Errorf("Expected Draw, got %s", result.WinningType)
	}
	if !slices.Equal(result.Candidates, []int{0, 2}) {
		t.Errorf("Expected candidates [0 2], got %v", result.Candidates)
	}
	if !slices.Contains(result.Candidates, result.Winner.ProposalID) {
		t.Errorf("Winner %d is not a candidate", result.Winner.ProposalID)
	}
	if result.Winner.VoteCount != 2 {
		t.Errorf("Expected winning count 2, got %d", result.Winner.VoteCount)
	}
}

func TestTallyErrors(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T, env *testEnv)
		caller string
		status int
		code   string
	}{
		{
			name:   "voting still open",
			setup:  func(t *testing.T, env *testEnv) { env.openVoting(t, 1, "A") },
			caller: testutil.Controller,
			status: http.StatusConflict,
			code:   "wrong-phase",
		},
		{
			name:   "not controller",
			setup:  func(t *testing.T, env *testEnv) { env.closedVoting(t, []int{0}, "A") },
			caller: "voter0",
			status: http.StatusForbidden,
			code:   "not-controller",
		},
		{
			name:   "no votes",
			setup:  func(t *testing.T, env *testEnv) { env.closedVoting(t, nil, "A", "B") },
			caller: testutil.Controller,
			status: http.StatusUnprocessableEntity,
			code:   "no-votes-cast",
		},
		{
			name:   "no proposals",
			setup:  func(t *testing.T, env *testEnv) { env.closedVoting(t, nil) },
			caller: testutil.Controller,
			status: http.StatusUnprocessableEntity,
			code:   "no-proposals",
		},
		{
			name: "already tallied",
			setup: func(t *testing.T, env *testEnv) {
				env.closedVoting(t, []int{0}, "A")
				env.mustServe(t, http.StatusOK, env.h.Tally, "POST", "/election/tally", nil, testutil.Controller)
			},
			caller: testutil.Controller,
			status: http.StatusConflict,
			code:   "already-tallied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(t, env)
			before := env.phase(t)

			w := env.serve(env.h.Tally, "POST", "/election/tally", nil, tt.caller)
			assertErrorCode(t, w, tt.status, tt.code)

			if got := env.phase(t); got != before {
				t.Errorf("Rejected tally moved phase from %s to %s", before, got)
			}
		})
	}
}

func TestWinnerBeforeTally(t *testing.T) {
	env := newTestEnv(t)

	w := env.serve(env.h.GetWinner, "GET", "/election/winner", nil, "")
	assertErrorCode(t, w, http.StatusConflict, "wrong-phase")
}

func TestGetEvents(t *testing.T) {
	env := newTestEnv(t)
	env.registerVoters(t, 1)
	env.advance(t, env.h.StartProposalsRegistration, "/election/proposals-registration/start")

	w := env.mustServe(t, http.StatusOK, env.h.GetEvents, "GET", "/election/events", nil, "")
	var all models.EventsResponse
	testutil.AssertJSON(t, w, &all)

	wantKinds := []election.EventKind{
		election.EventVoterWhitelisted,
		election.EventVoterRegistered,
		election.EventWorkflowStatusChanged,
	}
	if len(all.Events) != len(wantKinds) || all.LastSeq != uint64(len(wantKinds)) {
		t.Fatalf("Expected %d events, got %d (last seq %d)", len(wantKinds), len(all.Events), all.LastSeq)
	}
	for i, ev := range all.Events {
		if ev.Kind != wantKinds[i] || ev.Seq != uint64(i+1) {
			t.Errorf("Event %d = %s seq %d, want %s seq %d", i, ev.Kind, ev.Seq, wantKinds[i], i+1)
		}
	}
	last := all.Events[2]
	if last.PreviousPhase != election.RegisteringVoters || last.NewPhase != election.ProposalsRegistrationStarted {
		t.Errorf("Unexpected phase change event %+v", last)
	}

	w = env.mustServe(t, http.StatusOK, env.h.GetEvents, "GET", "/election/events?since=2", nil, "")
	var tail models.EventsResponse
	testutil.AssertJSON(t, w, &tail)
	if len(tail.Events) != 1 || tail.Events[0].Seq != 3 {
		t.Errorf("Expected only event 3, got %+v", tail.Events)
	}

	w = env.mustServe(t, http.StatusOK, env.h.GetEvents, "GET", "/election/events?since=99", nil, "")
	var none models.EventsResponse
	testutil.AssertJSON(t, w, &none)
	if none.Events == nil || len(none.Events) != 0 || none.LastSeq != 3 {
		t.Errorf("Expected no events and last seq 3, got %+v", none)
	}

	w = env.serve(env.h.GetEvents, "GET", "/election/events?since=-1", nil, "")
	assertErrorCode(t, w, http.StatusBadRequest, "invalid-since")
}
