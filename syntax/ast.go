// Package syntax parses regular expression patterns into an abstract syntax
// tree.
//
// The grammar is the classic restricted regex language - literals,
// concatenation, alternation, grouping, postfix quantifiers - extended with
// dot, character classes, anchors and bounded repetition. Operator
// precedence (quantifier > concatenation > alternation) is encoded
// structurally in how the combinators compose rather than through binding
// powers: the alternation parser is built from the concatenation parser,
// which is built from the quantified-atom parser.
//
// A parsed Node tree is immutable. It is built once per pattern and handed
// to the nfa package's compiler, which never mutates it.
package syntax

import (
	"fmt"
	"strings"
)

// Op identifies the kind of a syntax tree node.
type Op uint8

const (
	// OpEmpty matches the empty string. It is the parse of the empty
	// pattern; this is deliberate behavior, not an accident of parsing.
	OpEmpty Op = iota

	// OpLiteral matches a single rune (Node.Rune).
	OpLiteral

	// OpConcat matches the Sub expressions in sequence.
	OpConcat

	// OpAlternate matches any one of the Sub expressions.
	OpAlternate

	// OpStar matches Sub[0] zero or more times.
	OpStar

	// OpPlus matches Sub[0] one or more times.
	OpPlus

	// OpQuest matches Sub[0] zero or one time.
	OpQuest

	// OpGroup is an explicit (...) group around Sub[0]. Groups only affect
	// parse precedence; there are no capture semantics.
	OpGroup

	// OpRepeat matches Sub[0] between Min and Max times (Max < 0 means no
	// upper bound).
	OpRepeat

	// OpAnyChar matches any single character except newline.
	OpAnyChar

	// OpCharClass matches a single rune inside (or, with Negate, outside)
	// Node.Ranges.
	OpCharClass

	// OpAnchor is a zero-width assertion (Node.Anchor).
	OpAnchor
)

// String returns a readable name for the op.
func (op Op) String() string {
	switch op {
	case OpEmpty:
		return "Empty"
	case OpLiteral:
		return "Literal"
	case OpConcat:
		return "Concat"
	case OpAlternate:
		return "Alternate"
	case OpStar:
		return "Star"
	case OpPlus:
		return "Plus"
	case OpQuest:
		return "Quest"
	case OpGroup:
		return "Group"
	case OpRepeat:
		return "Repeat"
	case OpAnyChar:
		return "AnyChar"
	case OpCharClass:
		return "CharClass"
	case OpAnchor:
		return "Anchor"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// AnchorKind identifies a zero-width assertion.
type AnchorKind uint8

const (
	// AnchorStartText asserts position 0 of the subject (^).
	AnchorStartText AnchorKind = iota

	// AnchorEndText asserts the end of the subject ($).
	AnchorEndText

	// AnchorWordBoundary asserts a word/non-word transition (\b).
	AnchorWordBoundary

	// AnchorNotWordBoundary asserts the absence of one (\B).
	AnchorNotWordBoundary
)

// RuneRange is an inclusive range of runes in a character class.
type RuneRange struct {
	Lo, Hi rune
}

// Node is a node of the parsed syntax tree. Which fields are meaningful
// depends on Op. Nodes own their children exclusively: the tree has no
// sharing and no cycles.
type Node struct {
	Op  Op
	Sub []*Node

	Rune rune // OpLiteral

	Ranges []RuneRange // OpCharClass
	Negate bool        // OpCharClass

	Anchor AnchorKind // OpAnchor

	Min, Max int // OpRepeat; Max = -1 means unbounded
}

// String renders the tree as a pattern-like expression. Mostly useful in
// tests and error messages; the rendering is canonical, so equal trees
// render identically.
func (n *Node) String() string {
	var b strings.Builder
	n.render(&b)
	return b.String()
}

func (n *Node) render(b *strings.Builder) {
	switch n.Op {
	case OpEmpty:
		b.WriteString("(?:)")
	case OpLiteral:
		b.WriteRune(n.Rune)
	case OpConcat:
		for _, s := range n.Sub {
			s.render(b)
		}
	case OpAlternate:
		for i, s := range n.Sub {
			if i > 0 {
				b.WriteByte('|')
			}
			s.render(b)
		}
	case OpStar, OpPlus, OpQuest:
		n.Sub[0].render(b)
		b.WriteByte("*+?"[n.Op-OpStar])
	case OpGroup:
		b.WriteByte('(')
		n.Sub[0].render(b)
		b.WriteByte(')')
	case OpRepeat:
		n.Sub[0].render(b)
		if n.Max < 0 {
			fmt.Fprintf(b, "{%d,}", n.Min)
		} else if n.Min == n.Max {
			fmt.Fprintf(b, "{%d}", n.Min)
		} else {
			fmt.Fprintf(b, "{%d,%d}", n.Min, n.Max)
		}
	case OpAnyChar:
		b.WriteByte('.')
	case OpCharClass:
		b.WriteByte('[')
		if n.Negate {
			b.WriteByte('^')
		}
		for _, r := range n.Ranges {
			if r.Lo == r.Hi {
				b.WriteRune(r.Lo)
			} else {
				b.WriteRune(r.Lo)
				b.WriteByte('-')
				b.WriteRune(r.Hi)
			}
		}
		b.WriteByte(']')
	case OpAnchor:
		switch n.Anchor {
		case AnchorStartText:
			b.WriteByte('^')
		case AnchorEndText:
			b.WriteByte('$')
		case AnchorWordBoundary:
			b.WriteString(`\b`)
		case AnchorNotWordBoundary:
			b.WriteString(`\B`)
		}
	}
}

// MatchesEmpty reports whether the expression can match the empty string.
// The compiler uses this to decide whether prefilters are safe.
func (n *Node) MatchesEmpty() bool {
	switch n.Op {
	case OpEmpty, OpStar, OpQuest, OpAnchor:
		return true
	case OpLiteral, OpAnyChar, OpCharClass:
		return false
	case OpPlus, OpGroup:
		return n.Sub[0].MatchesEmpty()
	case OpConcat:
		for _, s := range n.Sub {
			if !s.MatchesEmpty() {
				return false
			}
		}
		return true
	case OpAlternate:
		for _, s := range n.Sub {
			if s.MatchesEmpty() {
				return true
			}
		}
		return false
	case OpRepeat:
		return n.Min == 0 || n.Sub[0].MatchesEmpty()
	default:
		return false
	}
}
