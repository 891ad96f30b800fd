package nfa

import "github.com/coregx/rematch/internal/sparse"

// PikeVM simulates an NFA by advancing a set of threads in lockstep over the
// input. Every live thread consumes the same input byte on the same step, and
// a sparse set deduplicates threads per position, so the running time is
// bounded by O(len(input) * states) regardless of the pattern. There is no
// backtracking.
//
// A PikeVM holds no mutable state and is safe for concurrent use; callers
// pass a PikeVMState to each simulation.
type PikeVM struct {
	nfa *NFA
}

// NewPikeVM creates a simulator for the given NFA.
func NewPikeVM(n *NFA) *PikeVM {
	return &PikeVM{nfa: n}
}

// thread is one live simulation path. start records where the path began
// matching, which unanchored searches use to pick the leftmost result.
type thread struct {
	state StateID
	start int
}

// PikeVMState is the scratch memory for one simulation: the current and next
// thread queues, the per-position dedup set, and the epsilon closure stack.
// It is reusable across calls but not safe for concurrent use.
type PikeVMState struct {
	queue   []thread
	next    []thread
	visited *sparse.Set
	stack   []StateID
}

// NewPikeVMState creates scratch state sized for the given NFA.
func NewPikeVMState(n *NFA) *PikeVMState {
	return &PikeVMState{
		queue:   make([]thread, 0, 16),
		next:    make([]thread, 0, 16),
		visited: sparse.NewSet(uint32(n.States())),
		stack:   make([]StateID, 0, 16),
	}
}

// reset prepares the state for a fresh simulation of n.
func (s *PikeVMState) reset(n *NFA) {
	if s.visited.Cap() < uint32(n.States()) {
		s.visited = sparse.NewSet(uint32(n.States()))
	}
	s.visited.Clear()
	s.queue = s.queue[:0]
	s.next = s.next[:0]
	s.stack = s.stack[:0]
}

// FullMatch reports whether the NFA matches the entire haystack.
func (v *PikeVM) FullMatch(haystack []byte) bool {
	return v.FullMatchWithState(NewPikeVMState(v.nfa), haystack)
}

// FullMatchWithState is FullMatch with caller-supplied scratch state.
func (v *PikeVM) FullMatchWithState(state *PikeVMState, haystack []byte) bool {
	state.reset(v.nfa)
	queue := v.addThread(state, state.queue, v.nfa.Start(), 0, haystack, 0)

	for pos := 0; pos < len(haystack); pos++ {
		if len(queue) == 0 {
			return false
		}
		b := haystack[pos]
		state.visited.Clear()
		next := state.next[:0]
		for _, t := range queue {
			next = v.step(state, next, t, b, haystack, pos+1)
		}
		state.queue, state.next = next, queue
		queue = next
	}

	for _, t := range queue {
		if v.nfa.IsMatch(t.state) {
			return true
		}
	}
	return false
}

// Search finds the leftmost-longest match in haystack, returning its byte
// offsets. ok is false when there is no match.
func (v *PikeVM) Search(haystack []byte) (start, end int, ok bool) {
	return v.SearchAtWithState(NewPikeVMState(v.nfa), haystack, 0)
}

// SearchAt is Search starting from byte offset at. Zero-width assertions
// still see the full haystack, so ^ only holds at offset 0.
func (v *PikeVM) SearchAt(haystack []byte, at int) (start, end int, ok bool) {
	return v.SearchAtWithState(NewPikeVMState(v.nfa), haystack, at)
}

// SearchAtWithState is SearchAt with caller-supplied scratch state.
//
// A fresh thread is seeded at every position until the first match is found;
// threads seeded earlier start further left, and the dedup set keeps the
// earlier thread when two reach the same state, which yields the leftmost
// start. After a match the surviving threads run on to extend it to the
// longest end at that start.
func (v *PikeVM) SearchAtWithState(state *PikeVMState, haystack []byte, at int) (start, end int, ok bool) {
	state.reset(v.nfa)
	queue := state.queue[:0]
	matched := false
	mStart, mEnd := 0, 0

	for pos := at; ; pos++ {
		if !matched {
			queue = v.addThread(state, queue, v.nfa.Start(), pos, haystack, pos)
		}
		for _, t := range queue {
			if !v.nfa.IsMatch(t.state) {
				continue
			}
			if !matched || t.start < mStart || (t.start == mStart && pos > mEnd) {
				matched, mStart, mEnd = true, t.start, pos
			}
		}
		if pos >= len(haystack) {
			break
		}
		if matched && len(queue) == 0 {
			break
		}

		b := haystack[pos]
		state.visited.Clear()
		next := state.next[:0]
		for _, t := range queue {
			next = v.step(state, next, t, b, haystack, pos+1)
		}
		state.queue, state.next = next, queue
		queue = next
	}

	if !matched {
		return 0, 0, false
	}
	return mStart, mEnd, true
}

// step advances one thread over input byte b, appending its successors at
// position pos to queue.
func (v *PikeVM) step(state *PikeVMState, queue []thread, t thread, b byte, haystack []byte, pos int) []thread {
	s := v.nfa.State(t.state)
	switch s.kind {
	case StateByteRange:
		if b >= s.lo && b <= s.hi {
			queue = v.addThread(state, queue, s.next, t.start, haystack, pos)
		}
	case StateSparse:
		for _, tr := range s.transitions {
			if b >= tr.Lo && b <= tr.Hi {
				queue = v.addThread(state, queue, tr.Next, t.start, haystack, pos)
			}
		}
	}
	return queue
}

// addThread adds id and its epsilon closure to queue, evaluating zero-width
// assertions at position pos. The closure walk is iterative with an explicit
// stack, so deeply nested patterns cannot overflow the goroutine stack.
func (v *PikeVM) addThread(state *PikeVMState, queue []thread, id StateID, threadStart int, haystack []byte, pos int) []thread {
	stack := append(state.stack[:0], id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !state.visited.Insert(uint32(cur)) {
			continue
		}
		s := v.nfa.State(cur)
		switch s.kind {
		case StateSplit:
			// Right pushed first so the left branch is explored first.
			stack = append(stack, s.right, s.left)
		case StateEpsilon:
			stack = append(stack, s.next)
		case StateLook:
			if s.look.Matches(haystack, pos) {
				stack = append(stack, s.next)
			}
		case StateByteRange, StateSparse, StateMatch:
			queue = append(queue, thread{state: cur, start: threadStart})
		case StateFail:
			// dead end
		}
	}
	state.stack = stack[:0]
	return queue
}
