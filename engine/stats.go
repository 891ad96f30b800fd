package engine

import "sync/atomic"

// stats tracks execution counters. The engine is shared across goroutines,
// so counters are atomic.
type stats struct {
	nfaSearches     atomic.Uint64
	literalSearches atomic.Uint64
	prefilterSkips  atomic.Uint64
	prefilterMisses atomic.Uint64
}

// Stats is a point-in-time snapshot of an engine's execution counters,
// useful for verifying which strategy actually served a workload.
type Stats struct {
	// NFASearches counts PikeVM simulations.
	NFASearches uint64

	// LiteralSearches counts searches answered by the Aho-Corasick
	// automaton.
	LiteralSearches uint64

	// PrefilterSkips counts searches where the prefilter advanced the
	// start position past non-candidate input.
	PrefilterSkips uint64

	// PrefilterMisses counts searches rejected by the prefilter without
	// running the PikeVM at all.
	PrefilterMisses uint64
}

// Stats returns a snapshot of the engine's execution counters.
func (e *Engine) Stats() Stats {
	return Stats{
		NFASearches:     e.stats.nfaSearches.Load(),
		LiteralSearches: e.stats.literalSearches.Load(),
		PrefilterSkips:  e.stats.prefilterSkips.Load(),
		PrefilterMisses: e.stats.prefilterMisses.Load(),
	}
}
