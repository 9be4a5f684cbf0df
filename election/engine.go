// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"
)

// Identity is an already-authenticated caller identifier.
type Identity string

// Participant is the registration and voting record of one identity.
type Participant struct {
	IsRegistered    bool `json:"is_registered"`
	HasVoted        bool `json:"has_voted"`
	VotedProposalID *int `json:"voted_proposal_id,omitempty"`
}

// Proposal is a submitted option. Its position in the proposal list is its
// permanent identifier.
type Proposal struct {
	Description string `json:"description"`
	VoteCount   uint64 `json:"vote_count"`
}

// State is everything the engine owns. It is only changed through Engine
// methods.
type State struct {
	Phase           Phase                    `json:"phase"`
	Whitelist       map[Identity]bool        `json:"whitelist"`
	Participants    map[Identity]Participant `json:"participants"`
	RegisteredCount int                      `json:"registered_count"`
	Proposals       []Proposal               `json:"proposals"`
	Result          *Result                  `json:"result,omitempty"`
}

// NewState returns the state of an election that has not started.
func NewState() State {
	return State{
		Phase:        RegisteringVoters,
		Whitelist:    make(map[Identity]bool),
		Participants: make(map[Identity]Participant),
		Proposals:    []Proposal{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := State{
		Phase:           s.Phase,
		Whitelist:       maps.Clone(s.Whitelist),
		Participants:    make(map[Identity]Participant, len(s.Participants)),
		RegisteredCount: s.RegisteredCount,
		Proposals:       slices.Clone(s.Proposals),
	}
	if c.Whitelist == nil {
		c.Whitelist = make(map[Identity]bool)
	}
	if c.Proposals == nil {
		c.Proposals = []Proposal{}
	}
	for id, p := range s.Participants {
		if p.VotedProposalID != nil {
			p.VotedProposalID = intPtr(*p.VotedProposalID)
		}
		c.Participants[id] = p
	}
	if s.Result != nil {
		r := s.Result.clone()
		c.Result = &r
	}
	return c
}

// Validate checks the global invariants of s.
func (s State) Validate() error {
	if !s.Phase.Valid() {
		return fmt.Errorf("unknown phase %q", s.Phase)
	}

	registered, voted := 0, 0
	for id, p := range s.Participants {
		if !p.IsRegistered {
			return fmt.Errorf("participant %q is not registered", id)
		}
		registered++
		if p.HasVoted != (p.VotedProposalID != nil) {
			return fmt.Errorf("participant %q has an inconsistent vote record", id)
		}
		if p.HasVoted {
			voted++
			if *p.VotedProposalID < 0 || *p.VotedProposalID >= len(s.Proposals) {
				return fmt.Errorf("participant %q voted for unknown proposal %d", id, *p.VotedProposalID)
			}
		}
	}
	if registered != s.RegisteredCount {
		return fmt.Errorf("registered count %d does not match %d participants", s.RegisteredCount, registered)
	}

	var total uint64
	for _, p := range s.Proposals {
		total += p.VoteCount
	}
	if total != uint64(voted) {
		return fmt.Errorf("%d votes counted but %d participants voted", total, voted)
	}

	if (s.Phase == VotesTallied) != (s.Result != nil) {
		return errors.New("result must exist exactly when votes are tallied")
	}
	return nil
}

// Engine runs one election. It is not safe for concurrent use; the host
// must present operations one at a time.
//
// Every operation either applies all of its effects (state changes and
// events) or returns an error and changes nothing.
type Engine struct {
	controller Identity
	random     RandomSource
	now        func() time.Time

	state  State
	events []Event
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandomSource sets the tie-break source. The default is WeakSource.
func WithRandomSource(r RandomSource) Option {
	return func(e *Engine) {
		e.random = r
	}
}

// WithClock sets the clock used to timestamp events and results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an engine for a fresh election controlled by controller.
func New(controller Identity, opts ...Option) *Engine {
	e := &Engine{
		controller: controller,
		random:     WeakSource{},
		now:        time.Now,
		state:      NewState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore rebuilds an engine from a previously saved state and event log.
func Restore(controller Identity, st State, events []Event, opts ...Option) (*Engine, error) {
	if err := st.Validate(); err != nil {
		return nil, fmt.Errorf("invalid election state: %w", err)
	}
	for i, ev := range events {
		if ev.Seq != uint64(i)+1 {
			return nil, fmt.Errorf("event log gap at position %d (seq %d)", i, ev.Seq)
		}
	}

	e := New(controller, opts...)
	e.state = st.Clone()
	e.events = slices.Clone(events)
	return e, nil
}

// Clone returns an independent copy of e sharing its configuration.
func (e *Engine) Clone() *Engine {
	c := *e
	c.state = e.state.Clone()
	c.events = slices.Clone(e.events)
	return &c
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	return e.state.Clone()
}

// Controller returns the designated controller identity.
func (e *Engine) Controller() Identity {
	return e.controller
}

// IsController reports whether id is the designated controller.
func (e *Engine) IsController(id Identity) bool {
	return id != "" && id == e.controller
}

func (e *Engine) requireController(caller Identity) error {
	if !e.IsController(caller) {
		return ErrNotController
	}
	return nil
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.state.Phase
}

// Advance moves the election to requested, which must be the successor of
// the current phase. VotesTallied can only be reached through Tally.
func (e *Engine) Advance(caller Identity, requested Phase) error {
	if err := e.requireController(caller); err != nil {
		return err
	}
	if err := checkTransition(e.state.Phase, requested); err != nil {
		return err
	}
	if requested == VotesTallied {
		return &Error{
			Kind:   KindPhase,
			Code:   ErrInvalidTransition.Code,
			Reason: "votes are tallied by running the tally, not by advancing the phase",
		}
	}
	e.setPhase(requested)
	return nil
}

func (e *Engine) StartProposalsRegistration(caller Identity) error {
	return e.Advance(caller, ProposalsRegistrationStarted)
}

func (e *Engine) EndProposalsRegistration(caller Identity) error {
	return e.Advance(caller, ProposalsRegistrationEnded)
}

func (e *Engine) StartVotingSession(caller Identity) error {
	return e.Advance(caller, VotingSessionStarted)
}

func (e *Engine) EndVotingSession(caller Identity) error {
	return e.Advance(caller, VotingSessionEnded)
}

// setPhase applies an already validated transition.
func (e *Engine) setPhase(next Phase) {
	prev := e.state.Phase
	e.state.Phase = next
	e.emit(Event{
		Kind:          EventWorkflowStatusChanged,
		PreviousPhase: prev,
		NewPhase:      next,
	})
}
