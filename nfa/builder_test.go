package nfa

import (
	"strings"
	"testing"
)

func TestBuilderLinearChain(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	s2 := b.AddByteRange('b', 'b', match)
	s1 := b.AddByteRange('a', 'a', s2)
	if err := b.SetStart(s1); err != nil {
		t.Fatalf("SetStart: %v", err)
	}

	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if n.States() != 3 {
		t.Errorf("States() = %d, want 3", n.States())
	}
	if n.Start() != s1 {
		t.Errorf("Start() = %d, want %d", n.Start(), s1)
	}
	if !n.IsMatch(match) {
		t.Errorf("IsMatch(%d) = false, want true", match)
	}

	lo, hi, next := n.State(s1).ByteRange()
	if lo != 'a' || hi != 'a' || next != s2 {
		t.Errorf("ByteRange() = (%q, %q, %d), want ('a', 'a', %d)", lo, hi, next, s2)
	}
}

func TestBuilderPatch(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	split := b.AddSplit(InvalidState, match)
	body := b.AddByteRange('a', 'a', split)

	if err := b.Patch(split, body); err != nil {
		t.Fatalf("Patch: %v", err)
	}
	if err := b.SetStart(split); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	left, right := n.State(split).Split()
	if left != body || right != match {
		t.Errorf("Split() = (%d, %d), want (%d, %d)", left, right, body, match)
	}
}

func TestBuilderPatchMatchState(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	if err := b.Patch(match, match); err == nil {
		t.Fatal("Patch on match state succeeded, want error")
	}
}

func TestBuilderNoStart(t *testing.T) {
	b := NewBuilder()
	b.AddMatch()
	if _, err := b.Build(); err == nil {
		t.Fatal("Build without start succeeded, want error")
	}
}

func TestBuilderDanglingTransition(t *testing.T) {
	b := NewBuilder()
	s := b.AddByteRange('a', 'a', InvalidState)
	if err := b.SetStart(s); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	_, err := b.Build()
	if err == nil {
		t.Fatal("Build with dangling transition succeeded, want error")
	}
	if !strings.Contains(err.Error(), "dangling") {
		t.Errorf("error = %q, want mention of dangling transition", err)
	}
}

func TestStateString(t *testing.T) {
	b := NewBuilder()
	match := b.AddMatch()
	br := b.AddByteRange('a', 'z', match)
	if err := b.SetStart(br); err != nil {
		t.Fatalf("SetStart: %v", err)
	}
	n, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if got := n.State(match).String(); !strings.Contains(got, "Match") {
		t.Errorf("String() = %q, want mention of Match", got)
	}
	if got := n.State(br).String(); !strings.Contains(got, "ByteRange") {
		t.Errorf("String() = %q, want mention of ByteRange", got)
	}
}
