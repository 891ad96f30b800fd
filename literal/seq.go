// Package literal extracts literal byte sequences from parsed patterns.
//
// A pattern like hello|world is fully described by the literals "hello" and
// "world"; a pattern like hello.* still guarantees the prefix "hello". The
// matching engine uses extracted literals two ways: a pattern made entirely
// of complete literals is matched by multi-substring search with no NFA at
// all, and a guaranteed prefix feeds a prefilter that skips ahead to
// candidate positions before the NFA runs.
package literal

import (
	"bytes"
	"fmt"
	"sort"
)

// Literal is one byte sequence extracted from a pattern. Complete reports
// whether the literal by itself is a full match for its alternative; an
// incomplete literal is only a required prefix (or suffix) of matches.
type Literal struct {
	Bytes    []byte
	Complete bool
}

// NewLiteral creates a literal from b. The slice is retained, not copied.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{Bytes: b, Complete: complete}
}

// Len returns the literal's length in bytes.
func (l Literal) Len() int { return len(l.Bytes) }

// String returns a debug representation.
func (l Literal) String() string {
	return fmt.Sprintf("literal{%q, complete=%v}", l.Bytes, l.Complete)
}

// Seq is a set of alternative literals extracted from one pattern position.
// A nil *Seq behaves as empty.
type Seq struct {
	literals []Literal
}

// NewSeq creates a sequence holding the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
func (s *Seq) Get(i int) Literal { return s.literals[i] }

// IsEmpty reports whether the sequence holds no literals.
func (s *Seq) IsEmpty() bool { return s.Len() == 0 }

// AllComplete reports whether the sequence is non-empty and every literal in
// it is complete. Such a sequence exactly describes the pattern's language.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, l := range s.literals {
		if !l.Complete {
			return false
		}
	}
	return true
}

// Bytes returns the raw byte sequences of every literal, in order. The
// returned slices alias the literals' storage.
func (s *Seq) Bytes() [][]byte {
	out := make([][]byte, s.Len())
	for i := range out {
		out[i] = s.literals[i].Bytes
	}
	return out
}

// MinimizeByPrefix drops every literal that has a shorter member of the
// sequence as a prefix. Any haystack position matching the longer literal
// also matches the shorter one, so for prefilter purposes the longer one is
// dead weight. Dropping a literal discards its completeness information, so
// the surviving literals are marked incomplete.
func (s *Seq) MinimizeByPrefix() {
	if s.Len() < 2 {
		return
	}
	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})
	kept := s.literals[:0]
	dropped := false
	for _, cand := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.HasPrefix(cand.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if redundant {
			dropped = true
			continue
		}
		kept = append(kept, cand)
	}
	if dropped {
		for i := range kept {
			kept[i].Complete = false
		}
	}
	s.literals = kept
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
// The result is empty when the sequence is empty or shares nothing.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return nil
	}
	prefix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(l.Bytes) && prefix[n] == l.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
		if n == 0 {
			return nil
		}
	}
	return prefix
}

// LongestCommonSuffix returns the longest suffix shared by every literal.
func (s *Seq) LongestCommonSuffix() []byte {
	if s.IsEmpty() {
		return nil
	}
	suffix := s.literals[0].Bytes
	for _, l := range s.literals[1:] {
		b := l.Bytes
		n := 0
		for n < len(suffix) && n < len(b) && suffix[len(suffix)-1-n] == b[len(b)-1-n] {
			n++
		}
		suffix = suffix[len(suffix)-n:]
		if n == 0 {
			return nil
		}
	}
	return suffix
}

// String returns a debug representation.
func (s *Seq) String() string {
	var buf bytes.Buffer
	buf.WriteString("seq[")
	for i, l := range s.literals {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(l.String())
	}
	buf.WriteString("]")
	return buf.String()
}
