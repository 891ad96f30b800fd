package nfa

import "fmt"

// StateID uniquely identifies an NFA state. States live in a flat arena
// indexed by ID; states never hold pointers to each other, which keeps the
// graph free of ownership cycles and makes a built NFA trivially shareable
// read-only across concurrent simulations.
type StateID uint32

// InvalidState represents an invalid or not-yet-patched state ID.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of an NFA state and determines which of its
// transition fields are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state.
	StateMatch StateKind = iota

	// StateByteRange consumes a single byte in [lo, hi].
	StateByteRange

	// StateSparse consumes a single byte matching one of several ranges
	// (character classes).
	StateSparse

	// StateSplit is an epsilon transition to two states (alternation,
	// quantifier entry/exit).
	StateSplit

	// StateEpsilon is an epsilon transition to one state.
	StateEpsilon

	// StateLook is a zero-width assertion: an epsilon transition taken
	// only when the assertion holds at the current position.
	StateLook

	// StateFail is a dead state with no transitions.
	StateFail
)

// String returns a human-readable name for the kind.
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Transition is one byte range and target of a Sparse state.
type Transition struct {
	Lo   byte
	Hi   byte
	Next StateID
}

// State is a single NFA state. The kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// ByteRange: [lo, hi]. next is also the target of Epsilon and Look.
	lo, hi byte
	next   StateID

	// Sparse transitions.
	transitions []Transition

	// Split targets.
	left, right StateID

	// Look assertion.
	look Look
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's kind.
func (s *State) Kind() StateKind { return s.kind }

// IsMatch reports whether this is the accepting state.
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// ByteRange returns the byte range and target for ByteRange states,
// or (0, 0, InvalidState) otherwise.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Split returns the two targets of a Split state, or invalid IDs otherwise.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target of an Epsilon state, or InvalidState otherwise.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// LookAssertion returns the assertion and target of a Look state.
func (s *State) LookAssertion() (look Look, next StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// Transitions returns the transitions of a Sparse state, nil otherwise.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// String returns a human-readable representation of the state.
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, ByteRange 0x%02x -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, ByteRange [0x%02x-0x%02x] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d transitions)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look %s -> %d)", s.id, s.look, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA is a compiled Thompson NFA: a flat arena of states with one start
// state and one accepting state. It is immutable once built and safe for
// concurrent use; every simulation call carries its own PikeVMState.
type NFA struct {
	states []State
	start  StateID
}

// Start returns the start state ID.
func (n *NFA) Start() StateID { return n.start }

// State returns the state with the given ID, or nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch reports whether id refers to the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the number of states in the arena.
func (n *NFA) States() int { return len(n.states) }

// String returns a short description of the NFA.
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d}", len(n.states), n.start)
}
