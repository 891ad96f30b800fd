package literal

import (
	"unicode/utf8"

	"github.com/coregx/rematch/syntax"
)

// ExtractorConfig bounds literal extraction. The limits keep pathological
// patterns from exploding during the cross products that concatenation and
// class expansion produce.
type ExtractorConfig struct {
	// MaxLiterals caps the number of alternative literals. Extraction gives
	// up entirely rather than return a truncated set, since a truncated set
	// would no longer cover every possible match.
	MaxLiterals int

	// MaxLiteralLen caps the length of each literal. Longer literals are
	// truncated and marked incomplete.
	MaxLiteralLen int

	// MaxClassSize caps how many runes a character class may expand into.
	// Larger classes contribute no literals.
	MaxClassSize int
}

// DefaultConfig returns the default extraction limits.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor walks a parsed pattern and collects literal sequences.
//
// Three extractions are offered: prefixes (literals every match must start
// with), suffixes (literals every match must end with), and inner literals
// (a sequence that must appear somewhere inside every match). Prefix and
// suffix extraction track completeness: when every returned literal is
// complete, the set is exactly the pattern's language.
type Extractor struct {
	config ExtractorConfig
}

// New creates an extractor with the given limits.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

const maxDepth = 100

// ExtractPrefixes returns literals every match must start with, or an empty
// sequence when no prefix is guaranteed.
func (e *Extractor) ExtractPrefixes(node *syntax.Node) *Seq {
	return e.prefixes(node, 0)
}

func (e *Extractor) prefixes(node *syntax.Node, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	switch node.Op {
	case syntax.OpEmpty:
		return NewSeq(NewLiteral(nil, true))

	case syntax.OpLiteral:
		return NewSeq(NewLiteral(runeBytes(node.Rune), true))

	case syntax.OpGroup:
		return e.prefixes(node.Sub[0], depth+1)

	case syntax.OpConcat:
		subs := node.Sub
		// A leading ^ constrains where a match may start, which the literal
		// bytes cannot express. The literals still prefix every match, but
		// they no longer describe the language exactly, so they must come
		// out incomplete.
		anchored := false
		for len(subs) > 0 && isAnchor(subs[0], syntax.AnchorStartText) {
			subs = subs[1:]
			anchored = true
		}
		sq := e.foldConcat(subs, depth, e.prefixes, appendBytes)
		if anchored {
			return NewSeq(markIncomplete(sq.literals)...)
		}
		return sq

	case syntax.OpAlternate:
		return e.union(node, depth, e.prefixes)

	case syntax.OpCharClass:
		return e.expandClass(node)

	case syntax.OpPlus:
		// a+ guarantees at least one a, so the body's prefixes survive as
		// incomplete literals.
		sq := e.prefixes(node.Sub[0], depth+1)
		return NewSeq(markIncomplete(sq.literals)...)

	case syntax.OpRepeat:
		if node.Min >= 1 {
			sq := e.prefixes(node.Sub[0], depth+1)
			return NewSeq(markIncomplete(sq.literals)...)
		}
		return NewSeq()

	default:
		// Star, quest, dot, and mid-pattern anchors guarantee nothing.
		return NewSeq()
	}
}

// ExtractSuffixes returns literals every match must end with, or an empty
// sequence when no suffix is guaranteed.
func (e *Extractor) ExtractSuffixes(node *syntax.Node) *Seq {
	return e.suffixes(node, 0)
}

func (e *Extractor) suffixes(node *syntax.Node, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	switch node.Op {
	case syntax.OpEmpty:
		return NewSeq(NewLiteral(nil, true))

	case syntax.OpLiteral:
		return NewSeq(NewLiteral(runeBytes(node.Rune), true))

	case syntax.OpGroup:
		return e.suffixes(node.Sub[0], depth+1)

	case syntax.OpConcat:
		subs := node.Sub
		// Same rule as a leading ^ in prefix extraction: a trailing $ is a
		// position constraint the literal bytes cannot carry.
		anchored := false
		for len(subs) > 0 && isAnchor(subs[len(subs)-1], syntax.AnchorEndText) {
			subs = subs[:len(subs)-1]
			anchored = true
		}
		rev := make([]*syntax.Node, len(subs))
		for i, sub := range subs {
			rev[len(subs)-1-i] = sub
		}
		sq := e.foldConcat(rev, depth, e.suffixes, prependBytes)
		if anchored {
			return NewSeq(markIncomplete(sq.literals)...)
		}
		return sq

	case syntax.OpAlternate:
		return e.union(node, depth, e.suffixes)

	case syntax.OpCharClass:
		return e.expandClass(node)

	case syntax.OpPlus:
		sq := e.suffixes(node.Sub[0], depth+1)
		return NewSeq(markIncomplete(sq.literals)...)

	case syntax.OpRepeat:
		if node.Min >= 1 {
			sq := e.suffixes(node.Sub[0], depth+1)
			return NewSeq(markIncomplete(sq.literals)...)
		}
		return NewSeq()

	default:
		return NewSeq()
	}
}

// ExtractInner returns a literal set that must appear somewhere in every
// match, taken from the first unbroken literal run in the pattern. All
// returned literals are incomplete. Useful for patterns like .*error.* where
// neither a prefix nor a suffix is guaranteed.
func (e *Extractor) ExtractInner(node *syntax.Node) *Seq {
	sq := e.inner(node, 0)
	return NewSeq(markIncomplete(sq.literals)...)
}

func (e *Extractor) inner(node *syntax.Node, depth int) *Seq {
	if depth > maxDepth {
		return NewSeq()
	}

	switch node.Op {
	case syntax.OpGroup:
		return e.inner(node.Sub[0], depth+1)

	case syntax.OpConcat:
		acc := []Literal{NewLiteral(nil, true)}
		for _, sub := range node.Sub {
			sq := e.prefixes(sub, depth+1)
			if sq.IsEmpty() || !seqAllComplete(sq) {
				if hasContent(acc) {
					return NewSeq(acc...)
				}
				acc = []Literal{NewLiteral(nil, true)}
				continue
			}
			acc = e.cross(acc, sq, appendBytes)
			if acc == nil {
				return NewSeq()
			}
		}
		if hasContent(acc) {
			return NewSeq(acc...)
		}
		return NewSeq()

	case syntax.OpAlternate:
		return e.union(node, depth, e.inner)

	default:
		sq := e.prefixes(node, depth)
		if hasContent(sq.literals) {
			return sq
		}
		return NewSeq()
	}
}

// foldConcat folds per-element literal sets across concatenation elements,
// given in fold order. An element without literals stops the fold and marks
// what was accumulated incomplete.
func (e *Extractor) foldConcat(subs []*syntax.Node, depth int, extract func(*syntax.Node, int) *Seq, join func(a, b []byte) []byte) *Seq {
	acc := []Literal{NewLiteral(nil, true)}
	for _, sub := range subs {
		sq := extract(sub, depth+1)
		if sq.IsEmpty() {
			return NewSeq(markIncomplete(acc)...)
		}
		acc = e.cross(acc, sq, join)
		if acc == nil {
			return NewSeq()
		}
		if !allComplete(acc) {
			return NewSeq(acc...)
		}
	}
	return NewSeq(acc...)
}

// union collects literals across alternation branches. One branch without
// literals poisons the whole alternation, since the result must cover every
// possible match.
func (e *Extractor) union(node *syntax.Node, depth int, extract func(*syntax.Node, int) *Seq) *Seq {
	var all []Literal
	for _, sub := range node.Sub {
		sq := extract(sub, depth+1)
		if sq.IsEmpty() {
			return NewSeq()
		}
		all = append(all, sq.literals...)
		if len(all) > e.config.MaxLiterals {
			return NewSeq()
		}
	}
	return NewSeq(all...)
}

// cross combines every accumulated literal with every alternative from sq.
// Incomplete accumulated literals cannot be extended and pass through as-is.
// Returns nil when the product would exceed MaxLiterals.
func (e *Extractor) cross(acc []Literal, sq *Seq, join func(a, b []byte) []byte) []Literal {
	if len(acc)*sq.Len() > e.config.MaxLiterals {
		return nil
	}
	out := make([]Literal, 0, len(acc)*sq.Len())
	for _, a := range acc {
		if !a.Complete {
			out = append(out, a)
			continue
		}
		for i := 0; i < sq.Len(); i++ {
			b := sq.Get(i)
			joined := join(a.Bytes, b.Bytes)
			complete := b.Complete
			if len(joined) > e.config.MaxLiteralLen {
				joined = joined[:e.config.MaxLiteralLen]
				complete = false
			}
			out = append(out, NewLiteral(joined, complete))
		}
	}
	return out
}

// expandClass turns a small character class into one literal per rune.
func (e *Extractor) expandClass(node *syntax.Node) *Seq {
	if node.Negate {
		return NewSeq()
	}
	count := 0
	for _, rr := range node.Ranges {
		count += int(rr.Hi-rr.Lo) + 1
		if count > e.config.MaxClassSize {
			return NewSeq()
		}
	}
	lits := make([]Literal, 0, count)
	for _, rr := range node.Ranges {
		for r := rr.Lo; r <= rr.Hi; r++ {
			lits = append(lits, NewLiteral(runeBytes(r), true))
		}
	}
	return NewSeq(lits...)
}

func runeBytes(r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	out := make([]byte, n)
	copy(out, buf[:n])
	return out
}

func isAnchor(node *syntax.Node, kind syntax.AnchorKind) bool {
	return node.Op == syntax.OpAnchor && node.Anchor == kind
}

func appendBytes(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func prependBytes(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, b...)
	return append(out, a...)
}

func markIncomplete(lits []Literal) []Literal {
	out := make([]Literal, len(lits))
	for i, l := range lits {
		out[i] = NewLiteral(l.Bytes, false)
	}
	return out
}

func allComplete(lits []Literal) bool {
	for _, l := range lits {
		if !l.Complete {
			return false
		}
	}
	return true
}

func seqAllComplete(s *Seq) bool {
	return allComplete(s.literals)
}

func hasContent(lits []Literal) bool {
	for _, l := range lits {
		if len(l.Bytes) > 0 {
			return true
		}
	}
	return false
}
