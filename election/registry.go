// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// SetWhitelisted sets whether id may register. Repeating a call with the
// same value is a no-op and emits nothing.
func (e *Engine) SetWhitelisted(caller, id Identity, allowed bool) error {
	if err := e.requireController(caller); err != nil {
		return err
	}
	if id == "" {
		return ErrEmptyIdentity
	}
	if e.state.Whitelist[id] == allowed {
		return nil
	}

	if allowed {
		e.state.Whitelist[id] = true
	} else {
		delete(e.state.Whitelist, id)
	}
	e.emit(Event{
		Kind:     EventVoterWhitelisted,
		Identity: id,
		Allowed:  &allowed,
	})
	return nil
}

// IsWhitelisted reports whether id has been admitted by the controller.
func (e *Engine) IsWhitelisted(id Identity) bool {
	return e.state.Whitelist[id]
}

// RegisterSelf registers the caller as a participant.
func (e *Engine) RegisterSelf(id Identity) error {
	if id == "" || !e.state.Whitelist[id] {
		return ErrNotWhitelisted
	}
	if e.state.Phase != RegisteringVoters {
		return wrongPhase(e.state.Phase, RegisteringVoters)
	}
	if e.state.Participants[id].IsRegistered {
		return ErrAlreadyRegistered
	}

	e.state.Participants[id] = Participant{IsRegistered: true}
	e.state.RegisteredCount++
	e.emit(Event{
		Kind:     EventVoterRegistered,
		Identity: id,
	})
	return nil
}

// Participant returns the record of a registered participant.
func (e *Engine) Participant(id Identity) (Participant, error) {
	p, ok := e.state.Participants[id]
	if !ok || !p.IsRegistered {
		return Participant{}, ErrParticipantNotFound
	}
	if p.VotedProposalID != nil {
		p.VotedProposalID = intPtr(*p.VotedProposalID)
	}
	return p, nil
}

// RegisteredCount returns the number of registered participants.
func (e *Engine) RegisteredCount() int {
	return e.state.RegisteredCount
}

func (e *Engine) requireRegistered(id Identity) (Participant, error) {
	p, ok := e.state.Participants[id]
	if id == "" || !ok || !p.IsRegistered {
		return Participant{}, ErrNotRegistered
	}
	return p, nil
}
