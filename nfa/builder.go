package nfa

import "fmt"

// BuildError describes a failure while assembling an NFA.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("nfa build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("nfa build error: %s", e.Message)
}

// Builder incrementally assembles an NFA state arena. Forward references are
// created with InvalidState targets and resolved later with Patch.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		states: make([]State, 0, 16),
		start:  InvalidState,
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	s.id = id
	b.states = append(b.states, s)
	return id
}

// AddMatch adds the accepting state.
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddByteRange adds a state consuming one byte in [lo, hi], then moving to
// next. Pass InvalidState for next to patch it later.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	return b.add(State{kind: StateByteRange, lo: lo, hi: hi, next: next})
}

// AddSparse adds a state consuming one byte matching any of the given
// transitions. The transitions slice is retained by the builder.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	return b.add(State{kind: StateSparse, transitions: transitions})
}

// AddSplit adds an epsilon split to left and right.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEpsilon adds an unconditional epsilon transition to next.
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{kind: StateEpsilon, next: next})
}

// AddLook adds a zero-width assertion state moving to next when the
// assertion holds.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	return b.add(State{kind: StateLook, look: look, next: next})
}

// AddFail adds a dead state.
func (b *Builder) AddFail() StateID {
	return b.add(State{kind: StateFail})
}

// Patch resolves the dangling targets of state id to point at to. For Split
// states only InvalidState slots are filled; other kinds have their single
// target overwritten when unset.
func (b *Builder) Patch(id, to StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "patch target out of range", StateID: id}
	}
	s := &b.states[id]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateLook:
		s.next = to
	case StateSplit:
		patched := false
		if s.left == InvalidState {
			s.left = to
			patched = true
		}
		if s.right == InvalidState {
			s.right = to
			patched = true
		}
		if !patched {
			return &BuildError{Message: "split state has no dangling targets", StateID: id}
		}
	case StateSparse:
		for i := range s.transitions {
			if s.transitions[i].Next == InvalidState {
				s.transitions[i].Next = to
			}
		}
	case StateMatch, StateFail:
		return &BuildError{Message: fmt.Sprintf("cannot patch %s state", s.kind), StateID: id}
	}
	return nil
}

// SetStart records the start state.
func (b *Builder) SetStart(id StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "start state out of range", StateID: id}
	}
	b.start = id
	return nil
}

// Build validates the arena and returns the finished NFA. The builder must
// not be reused afterwards.
func (b *Builder) Build() (*NFA, error) {
	if b.start == InvalidState {
		return nil, &BuildError{Message: "no start state set", StateID: InvalidState}
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &NFA{states: b.states, start: b.start}, nil
}

// validate checks that every transition target refers to a real state.
func (b *Builder) validate() error {
	n := StateID(len(b.states))
	check := func(id, target StateID) error {
		if target == InvalidState || target >= n {
			return &BuildError{Message: fmt.Sprintf("dangling transition to %d", target), StateID: id}
		}
		return nil
	}
	for i := range b.states {
		s := &b.states[i]
		switch s.kind {
		case StateByteRange, StateEpsilon, StateLook:
			if err := check(s.id, s.next); err != nil {
				return err
			}
		case StateSplit:
			if err := check(s.id, s.left); err != nil {
				return err
			}
			if err := check(s.id, s.right); err != nil {
				return err
			}
		case StateSparse:
			for _, t := range s.transitions {
				if err := check(s.id, t.Next); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
