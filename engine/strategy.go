package engine

// Strategy identifies how a compiled pattern is executed.
//
// Selection is automatic, based on what literal structure the pattern
// exposes:
//   - UseLiteral: the pattern is exactly a set of literals, so multi-pattern
//     substring search replaces the NFA entirely.
//   - UsePrefilteredNFA: every match starts with a known byte, so a byte
//     scan skips ahead to candidate positions before the NFA runs.
//   - UseNFA: no exploitable literals, plain PikeVM simulation.
type Strategy int

const (
	// UseNFA runs the PikeVM on every search.
	UseNFA Strategy = iota

	// UsePrefilteredNFA scans for a mandatory leading byte before running
	// the PikeVM.
	UsePrefilteredNFA

	// UseLiteral answers searches from an Aho-Corasick automaton built over
	// the pattern's complete literal set. The NFA is kept only as a
	// fallback for operations the automaton cannot answer.
	UseLiteral
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "NFA"
	case UsePrefilteredNFA:
		return "PrefilteredNFA"
	case UseLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}
