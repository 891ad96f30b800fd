// Package rematch provides a regex engine with guaranteed linear-time
// matching.
//
// Patterns are parsed with combinators into a syntax tree, compiled to a
// Thompson NFA, and simulated with a Pike-style virtual machine that
// advances every alternative in lockstep. There is no backtracking, so
// matching any pattern against any input runs in O(len(pattern) *
// len(input)) in the worst case.
//
// On top of the NFA, compilation extracts literals from the pattern and
// automatically selects a faster strategy when one applies: patterns that
// are pure literal alternations are served by an Aho-Corasick automaton,
// and patterns with a mandatory prefix get a byte-scan prefilter.
//
// Basic usage:
//
//	re, err := rematch.Compile(`(ab|cd)*ef`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	re.MatchString("ababef")            // true: whole-subject match
//	re.FindString("xx abef yy")         // "abef": leftmost-longest search
//
// Match and MatchString test the entire subject. Use Find and its variants
// to locate matches inside a larger subject.
//
// Supported syntax: literals, '.', alternation '|', grouping '(...)',
// quantifiers '*' '+' '?' '{n}' '{n,}' '{n,m}', character classes with
// ranges and negation, the shorthands \d \D \w \W \s \S, anchors '^' '$'
// \b \B, and control escapes. Capture groups, lookaround, and
// backreferences are not supported.
package rematch

import (
	"strings"

	"github.com/coregx/rematch/engine"
	"github.com/coregx/rematch/syntax"
)

// Regex is a compiled pattern. It is safe for concurrent use.
type Regex struct {
	engine  *engine.Engine
	pattern string
}

// Regexp is an alias for Regex, mirroring the stdlib type name so the
// package can serve as a near drop-in for the operations it supports.
type Regexp = Regex

// Compile parses and compiles a pattern.
//
// On a syntax error the returned error is a *syntax.ParseError carrying the
// byte offset of the failure.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom engine configuration.
func CompileWithConfig(pattern string, config engine.Config) (*Regex, error) {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	eng, err := engine.CompileWithConfig(node, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: eng, pattern: pattern}, nil
}

// MustCompile is Compile but panics on error. Intended for patterns known
// valid at program start.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rematch: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// DefaultConfig returns the default engine configuration, for customizing
// before CompileWithConfig.
func DefaultConfig() engine.Config {
	return engine.DefaultConfig()
}

// QuoteMeta returns a pattern that matches s literally, escaping any
// metacharacters it contains. A hyphen is only special inside a bracket
// expression and passes through unescaped, as in the standard library.
func QuoteMeta(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(`()|*+?.[]{}^$\`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// MatchString reports whether the pattern matches the entire subject,
// compiling it first. For repeated use, compile once instead.
func MatchString(pattern, subject string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(subject), nil
}

// Match reports whether the pattern matches the entire subject.
//
// Note this differs from stdlib regexp, where Match searches for the
// pattern anywhere in the input. Use Find or FindIndex for substring
// search.
func (r *Regex) Match(subject []byte) bool {
	return r.engine.FullMatch(subject)
}

// MatchString is Match for a string subject.
func (r *Regex) MatchString(subject string) bool {
	return r.engine.FullMatch([]byte(subject))
}

// Find returns the leftmost-longest match in subject, or nil if there is
// none. The result aliases subject.
func (r *Regex) Find(subject []byte) []byte {
	start, end, ok := r.engine.Find(subject)
	if !ok {
		return nil
	}
	return subject[start:end]
}

// FindString is Find for a string subject. An empty return means no match
// or an empty match; use FindStringIndex to distinguish.
func (r *Regex) FindString(subject string) string {
	start, end, ok := r.engine.Find([]byte(subject))
	if !ok {
		return ""
	}
	return subject[start:end]
}

// FindIndex returns the byte offsets of the leftmost-longest match as
// [start, end), or nil if there is none.
func (r *Regex) FindIndex(subject []byte) []int {
	start, end, ok := r.engine.Find(subject)
	if !ok {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex is FindIndex for a string subject.
func (r *Regex) FindStringIndex(subject string) []int {
	return r.FindIndex([]byte(subject))
}

// FindAll returns all successive non-overlapping matches. If n > 0 at most
// n matches are returned; if n <= 0, all of them. Returns nil when there
// are no matches.
func (r *Regex) FindAll(subject []byte, n int) [][]byte {
	var out [][]byte
	r.findAll(subject, n, func(start, end int) {
		out = append(out, subject[start:end])
	})
	return out
}

// FindAllString is FindAll for a string subject.
func (r *Regex) FindAllString(subject string, n int) []string {
	var out []string
	r.findAll([]byte(subject), n, func(start, end int) {
		out = append(out, subject[start:end])
	})
	return out
}

// FindAllIndex returns the index pairs of all successive non-overlapping
// matches, following the same n convention as FindAll.
func (r *Regex) FindAllIndex(subject []byte, n int) [][]int {
	var out [][]int
	r.findAll(subject, n, func(start, end int) {
		out = append(out, []int{start, end})
	})
	return out
}

// findAll walks successive matches, advancing past each one. An empty match
// advances a single byte so the walk always terminates.
func (r *Regex) findAll(subject []byte, n int, emit func(start, end int)) {
	if n == 0 {
		return
	}
	count := 0
	pos := 0
	for pos <= len(subject) {
		start, end, ok := r.engine.FindAt(subject, pos)
		if !ok {
			return
		}
		emit(start, end)
		count++
		if n > 0 && count >= n {
			return
		}
		if end > start {
			pos = end
		} else {
			pos = end + 1
		}
	}
}

// Count returns the number of successive non-overlapping matches.
func (r *Regex) Count(subject []byte) int {
	count := 0
	r.findAll(subject, -1, func(int, int) { count++ })
	return count
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Stats returns a snapshot of the engine's execution counters.
func (r *Regex) Stats() engine.Stats {
	return r.engine.Stats()
}
