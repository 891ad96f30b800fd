// Package engine orchestrates pattern execution across matching strategies.
//
// Compilation analyzes the parsed pattern, extracts literals, and picks one
// of three strategies: pure literal matching via Aho-Corasick, PikeVM
// simulation behind a leading-byte prefilter, or plain PikeVM simulation.
// The compiled engine is immutable and safe for concurrent use; per-search
// scratch state is drawn from an internal pool.
package engine

// Config controls strategy selection and literal extraction limits.
type Config struct {
	// EnableLiteral allows the pure literal strategy for patterns that are
	// exactly a set of literals. Default: true.
	EnableLiteral bool

	// EnablePrefilter allows the leading-byte prefilter for patterns with a
	// mandatory prefix. Default: true.
	EnablePrefilter bool

	// MinLiteralLen is the minimum literal length for the literal strategy.
	// Single-byte literals match too often for the automaton to pay off.
	// Default: 2.
	MinLiteralLen int

	// MaxLiterals bounds literal extraction. Default: 64.
	MaxLiterals int

	// MaxLiteralLen bounds individual literal length during extraction.
	// Default: 64.
	MaxLiteralLen int

	// MaxClassSize bounds character class expansion during extraction.
	// Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		EnableLiteral:   true,
		EnablePrefilter: true,
		MinLiteralLen:   2,
		MaxLiterals:     64,
		MaxLiteralLen:   64,
		MaxClassSize:    10,
	}
}
