package engine

import (
	"bytes"
	"sync"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rematch/internal/memchr"
	"github.com/coregx/rematch/literal"
	"github.com/coregx/rematch/nfa"
	"github.com/coregx/rematch/syntax"
)

// Engine executes a compiled pattern. It is immutable after compilation and
// safe for concurrent use.
type Engine struct {
	nfa      *nfa.NFA
	vm       *nfa.PikeVM
	strategy Strategy
	config   Config

	// Literal strategy: the automaton answers searches, the raw literal set
	// answers whole-string matches by equality.
	ahoCorasick *ahocorasick.Automaton
	literals    [][]byte

	// Prefilter strategy: every match begins with this prefix.
	prefix []byte

	canMatchEmpty bool

	states sync.Pool
	stats  stats
}

// Compile builds an engine for the parsed pattern using the default
// configuration.
func Compile(root *syntax.Node) (*Engine, error) {
	return CompileWithConfig(root, DefaultConfig())
}

// CompileWithConfig builds an engine for the parsed pattern. The NFA is
// always compiled, even when a literal strategy is selected, so every
// operation has a correct fallback.
func CompileWithConfig(root *syntax.Node, config Config) (*Engine, error) {
	compiled, err := nfa.Compile(root)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		nfa:           compiled,
		vm:            nfa.NewPikeVM(compiled),
		strategy:      UseNFA,
		config:        config,
		canMatchEmpty: root.MatchesEmpty(),
	}
	e.states.New = func() any { return nfa.NewPikeVMState(compiled) }

	extractor := literal.New(literal.ExtractorConfig{
		MaxLiterals:   config.MaxLiterals,
		MaxLiteralLen: config.MaxLiteralLen,
		MaxClassSize:  config.MaxClassSize,
	})
	prefixes := extractor.ExtractPrefixes(root)

	if config.EnableLiteral && e.tryLiteralStrategy(prefixes) {
		return e, nil
	}
	if config.EnablePrefilter && !e.canMatchEmpty {
		if lcp := prefixes.LongestCommonPrefix(); len(lcp) > 0 {
			e.prefix = append([]byte(nil), lcp...)
			e.strategy = UsePrefilteredNFA
		}
	}
	return e, nil
}

// tryLiteralStrategy switches to the literal strategy when the extracted
// prefixes exactly describe the pattern's language.
func (e *Engine) tryLiteralStrategy(prefixes *literal.Seq) bool {
	if !prefixes.AllComplete() || prefixes.Len() < 2 {
		return false
	}
	lits := prefixes.Bytes()
	for _, l := range lits {
		if len(l) < e.config.MinLiteralLen {
			return false
		}
	}

	builder := ahocorasick.NewBuilder()
	for _, l := range lits {
		builder.AddPattern(l)
	}
	auto, err := builder.Build()
	if err != nil {
		return false
	}

	e.ahoCorasick = auto
	e.literals = lits
	e.strategy = UseLiteral
	return true
}

// Strategy returns the strategy selected at compile time.
func (e *Engine) Strategy() Strategy { return e.strategy }

// NFA returns the compiled NFA.
func (e *Engine) NFA() *nfa.NFA { return e.nfa }

// FullMatch reports whether the pattern matches the entire haystack.
func (e *Engine) FullMatch(haystack []byte) bool {
	switch e.strategy {
	case UseLiteral:
		e.stats.literalSearches.Add(1)
		for _, l := range e.literals {
			if bytes.Equal(haystack, l) {
				return true
			}
		}
		return false

	case UsePrefilteredNFA:
		if !bytes.HasPrefix(haystack, e.prefix) {
			e.stats.prefilterMisses.Add(1)
			return false
		}
	}

	e.stats.nfaSearches.Add(1)
	state := e.states.Get().(*nfa.PikeVMState)
	defer e.states.Put(state)
	return e.vm.FullMatchWithState(state, haystack)
}

// Find returns the leftmost-longest match in haystack as byte offsets.
func (e *Engine) Find(haystack []byte) (start, end int, ok bool) {
	return e.FindAt(haystack, 0)
}

// FindAt returns the leftmost-longest match beginning at or after byte
// offset at.
func (e *Engine) FindAt(haystack []byte, at int) (start, end int, ok bool) {
	if at < 0 || at > len(haystack) {
		return 0, 0, false
	}

	switch e.strategy {
	case UseLiteral:
		e.stats.literalSearches.Add(1)
		m := e.ahoCorasick.Find(haystack, at)
		if m == nil {
			return 0, 0, false
		}
		// The automaton's match start is the leftmost, but when one literal
		// is a proper prefix of another it may report the shorter one.
		// Leftmost-longest wants the longest literal at that start.
		start, end = m.Start, m.End
		for _, l := range e.literals {
			if len(l) > end-start && bytes.HasPrefix(haystack[start:], l) {
				end = start + len(l)
			}
		}
		return start, end, true

	case UsePrefilteredNFA:
		i := memchr.Memchr(haystack[at:], e.prefix[0])
		if i < 0 {
			e.stats.prefilterMisses.Add(1)
			return 0, 0, false
		}
		if i > 0 {
			e.stats.prefilterSkips.Add(1)
			at += i
		}
	}

	e.stats.nfaSearches.Add(1)
	state := e.states.Get().(*nfa.PikeVMState)
	defer e.states.Put(state)
	return e.vm.SearchAtWithState(state, haystack, at)
}

// IsMatch reports whether the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	if e.strategy == UseLiteral {
		e.stats.literalSearches.Add(1)
		return e.ahoCorasick.IsMatch(haystack)
	}
	_, _, ok := e.FindAt(haystack, 0)
	return ok
}
