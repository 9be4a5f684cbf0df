// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import "fmt"

// Phase is a step of the election lifecycle.
type Phase string

const (
	RegisteringVoters            Phase = "RegisteringVoters"
	ProposalsRegistrationStarted Phase = "ProposalsRegistrationStarted"
	ProposalsRegistrationEnded   Phase = "ProposalsRegistrationEnded"
	VotingSessionStarted         Phase = "VotingSessionStarted"
	VotingSessionEnded           Phase = "VotingSessionEnded"
	VotesTallied                 Phase = "VotesTallied"
)

// Phases lists every phase in lifecycle order.
var Phases = []Phase{
	RegisteringVoters,
	ProposalsRegistrationStarted,
	ProposalsRegistrationEnded,
	VotingSessionStarted,
	VotingSessionEnded,
	VotesTallied,
}

// successor maps each phase to its single legal next phase.
// VotesTallied is terminal and has no entry.
var successor = map[Phase]Phase{
	RegisteringVoters:            ProposalsRegistrationStarted,
	ProposalsRegistrationStarted: ProposalsRegistrationEnded,
	ProposalsRegistrationEnded:   VotingSessionStarted,
	VotingSessionStarted:         VotingSessionEnded,
	VotingSessionEnded:           VotesTallied,
}

func (p Phase) String() string {
	return string(p)
}

// Next returns the phase that follows p. ok is false for the terminal phase
// and for unknown values.
func (p Phase) Next() (next Phase, ok bool) {
	next, ok = successor[p]
	return next, ok
}

// Terminal reports whether no further transition is possible from p.
func (p Phase) Terminal() bool {
	return p == VotesTallied
}

// Index returns the position of p in Phases, or -1 if p is unknown.
func (p Phase) Index() int {
	for i, q := range Phases {
		if q == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is a known phase.
func (p Phase) Valid() bool {
	return p.Index() >= 0
}

// ParsePhase converts a phase name into a Phase.
func ParsePhase(s string) (Phase, error) {
	p := Phase(s)
	if !p.Valid() {
		return "", &Error{
			Kind:   KindInvalidArgument,
			Code:   "unknown-phase",
			Reason: fmt.Sprintf("unknown phase %q", s),
		}
	}
	return p, nil
}

// checkTransition validates moving from current to requested without
// changing anything.
func checkTransition(current, requested Phase) error {
	next, ok := current.Next()
	if !ok {
		if current.Terminal() {
			return ErrAlreadyTallied
		}
		return invalidTransition(current, requested)
	}
	if requested != next {
		return invalidTransition(current, requested)
	}
	return nil
}
