// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
)

// Kind classifies which precondition an operation failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindPhase
	KindNotFound
	KindStateConflict
	KindEmptyElection
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindPhase:
		return "phase"
	case KindNotFound:
		return "not_found"
	case KindStateConflict:
		return "state_conflict"
	case KindEmptyElection:
		return "empty_election"
	case KindInvalidArgument:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// Error is returned by every rejected engine operation. Code identifies the
// failed precondition; two errors with the same Code match under errors.Is.
type Error struct {
	Kind   Kind
	Code   string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrNotController  = &Error{KindAuthorization, "not-controller", "caller is not the election controller"}
	ErrNotWhitelisted = &Error{KindAuthorization, "not-whitelisted", "caller is not whitelisted"}
	ErrNotRegistered  = &Error{KindAuthorization, "not-registered", "caller is not a registered participant"}

	ErrWrongPhase        = &Error{KindPhase, "wrong-phase", "operation not allowed in the current phase"}
	ErrInvalidTransition = &Error{KindPhase, "invalid-transition", "invalid phase transition"}
	ErrAlreadyTallied    = &Error{KindPhase, "already-tallied", "votes have already been tallied"}

	ErrProposalNotFound    = &Error{KindNotFound, "proposal-not-found", "proposal not found"}
	ErrParticipantNotFound = &Error{KindNotFound, "participant-not-found", "participant not found"}
	ErrHasNotVoted         = &Error{KindNotFound, "has-not-voted", "participant has not voted"}

	ErrAlreadyRegistered = &Error{KindStateConflict, "already-registered", "participant is already registered"}
	ErrAlreadyVoted      = &Error{KindStateConflict, "already-voted", "participant has already voted"}

	ErrNoProposals = &Error{KindEmptyElection, "no-proposals", "no proposals were submitted"}
	ErrNoVotesCast = &Error{KindEmptyElection, "no-votes-cast", "no votes were cast"}

	ErrEmptyIdentity    = &Error{KindInvalidArgument, "empty-identity", "identity must not be empty"}
	ErrEmptyDescription = &Error{KindInvalidArgument, "empty-description", "proposal description must not be empty"}
)

// KindOf reports the Kind of err, or KindUnknown if err did not come from
// the engine.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf reports the precondition code of err, or "" if err did not come
// from the engine.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func wrongPhase(current, required Phase) error {
	return &Error{
		Kind:   KindPhase,
		Code:   ErrWrongPhase.Code,
		Reason: fmt.Sprintf("operation requires phase %s, current phase is %s", required, current),
	}
}

func invalidTransition(current, requested Phase) error {
	return &Error{
		Kind:   KindPhase,
		Code:   ErrInvalidTransition.Code,
		Reason: fmt.Sprintf("cannot move from phase %s to %s", current, requested),
	}
}

func proposalNotFound(id, count int) error {
	return &Error{
		Kind:   KindNotFound,
		Code:   ErrProposalNotFound.Code,
		Reason: fmt.Sprintf("proposal %d not found (%d proposals)", id, count),
	}
}
