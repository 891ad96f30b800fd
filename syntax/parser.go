package syntax

import (
	"sort"
	"strings"

	comb "github.com/coregx/rematch/combinator"
)

// maxRepeatCount caps {n,m} quantifiers. Bounded repetition compiles by
// expansion, so an unchecked count would let a short pattern demand an
// enormous automaton.
const maxRepeatCount = 1000

// metacharacters must be escaped to match literally.
const metacharacters = `()|*+?.[]{}^$\`

func isMeta(r rune) bool {
	return strings.ContainsRune(metacharacters, r)
}

// Parse parses a pattern into its syntax tree.
//
// The grammar, lowest precedence first:
//
//	alternation   := concatenation ('|' concatenation)*
//	concatenation := element+
//	element       := anchor | quantified
//	quantified    := atom ('*' | '+' | '?' | '{' n (',' m?)? '}')?
//	atom          := literal | escape | '.' | class | '(' alternation ')'
//
// The empty pattern parses to an OpEmpty node, which matches only the empty
// subject; this is specified behavior. A successful parse must consume the
// whole pattern - leftover input is an ErrUnconsumedInput at the leftover
// position.
func Parse(pattern string) (*Node, error) {
	if pattern == "" {
		return &Node{Op: OpEmpty}, nil
	}

	res := patternParser(comb.NewInput(pattern))
	if !res.Ok {
		return nil, errorAt(pattern, res.FurthestErr)
	}
	if !res.Rest.Empty() {
		// The grammar stopped early. If some branch got further than the
		// stopping point, that position explains why; otherwise the
		// leftover itself is the problem.
		if res.FurthestErr > res.Rest.Pos() {
			return nil, errorAt(pattern, res.FurthestErr)
		}
		return nil, &ParseError{Code: ErrUnconsumedInput, Pattern: pattern, Pos: res.Rest.Pos()}
	}
	return res.Value, nil
}

// errorAt classifies a failure position: at the end of the pattern the
// grammar wanted more input, anywhere else it saw a character it could not
// accept.
func errorAt(pattern string, pos int) *ParseError {
	code := ErrUnexpectedCharacter
	if pos >= len(pattern) {
		code = ErrUnexpectedEOF
	}
	return &ParseError{Code: code, Pattern: pattern, Pos: pos}
}

// patternParser is the compiled grammar. Parsers are pure, so a single
// instance serves all Parse calls concurrently.
var patternParser = buildGrammar()

func buildGrammar() comb.Parser[*Node] {
	var alternation comb.Parser[*Node]

	literal := comb.Map(
		comb.Satisfy(func(r rune) bool { return !isMeta(r) }),
		func(r rune) *Node { return &Node{Op: OpLiteral, Rune: r} },
	)

	// A backslash followed by anything unrecognized fails on the escaped
	// character itself, which puts the error position there.
	escape := comb.Map(
		comb.KeepRight(comb.Rune('\\'), comb.Satisfy(isEscapable)),
		escapeNode,
	)

	dot := comb.Map(comb.Rune('.'), func(rune) *Node { return &Node{Op: OpAnyChar} })

	group := comb.Map(
		comb.KeepRight(comb.Rune('('),
			comb.KeepLeft(
				comb.Lazy(func() comb.Parser[*Node] { return alternation }),
				comb.Rune(')'))),
		func(inner *Node) *Node { return &Node{Op: OpGroup, Sub: []*Node{inner}} },
	)

	atom := comb.Alt(group, charClass(), dot, escape, literal)

	quantified := comb.Map(
		comb.Seq(atom, comb.Optional(quantifier())),
		applyQuantifier,
	)

	// Anchors are not quantifiable: they sit beside quantified atoms, not
	// inside them. \b and \B are matched here rather than in escape for
	// the same reason.
	anchor := comb.Alt(
		anchorOf(comb.Map(comb.Rune('^'), discard), AnchorStartText),
		anchorOf(comb.Map(comb.Rune('$'), discard), AnchorEndText),
		anchorOf(comb.Map(comb.String(`\b`), discardString), AnchorWordBoundary),
		anchorOf(comb.Map(comb.String(`\B`), discardString), AnchorNotWordBoundary),
	)

	element := comb.Alt(anchor, quantified)

	concatenation := comb.Map(comb.OneOrMore(element), func(subs []*Node) *Node {
		if len(subs) == 1 {
			return subs[0]
		}
		return &Node{Op: OpConcat, Sub: subs}
	})

	alternation = comb.Map(
		comb.Seq(concatenation, comb.ZeroOrMore(comb.KeepRight(comb.Rune('|'), concatenation))),
		func(p comb.Pair[*Node, []*Node]) *Node {
			if len(p.Second) == 0 {
				return p.First
			}
			subs := append([]*Node{p.First}, p.Second...)
			return &Node{Op: OpAlternate, Sub: subs}
		},
	)

	return alternation
}

func discard(rune) struct{}         { return struct{}{} }
func discardString(string) struct{} { return struct{}{} }

func anchorOf(p comb.Parser[struct{}], kind AnchorKind) comb.Parser[*Node] {
	return comb.Map(p, func(struct{}) *Node { return &Node{Op: OpAnchor, Anchor: kind} })
}

// quant describes a postfix quantifier before it is applied to its atom.
type quant struct {
	op       Op
	min, max int
}

func applyQuantifier(p comb.Pair[*Node, *quant]) *Node {
	if p.Second == nil {
		return p.First
	}
	q := *p.Second
	if q.op == OpRepeat {
		return &Node{Op: OpRepeat, Min: q.min, Max: q.max, Sub: []*Node{p.First}}
	}
	return &Node{Op: q.op, Sub: []*Node{p.First}}
}

// quantifier parses '*', '+', '?' or a bounded repetition '{n}', '{n,}',
// '{n,m}'. Counts above maxRepeatCount and inverted ranges are rejected.
func quantifier() comb.Parser[quant] {
	simple := comb.Map(
		comb.Satisfy(func(r rune) bool { return r == '*' || r == '+' || r == '?' }),
		func(r rune) quant {
			switch r {
			case '*':
				return quant{op: OpStar}
			case '+':
				return quant{op: OpPlus}
			default:
				return quant{op: OpQuest}
			}
		},
	)

	number := comb.Map(
		comb.OneOrMore(comb.Satisfy(func(r rune) bool { return r >= '0' && r <= '9' })),
		func(digits []rune) int {
			n := 0
			for _, d := range digits {
				n = n*10 + int(d-'0')
				if n > maxRepeatCount {
					return maxRepeatCount + 1
				}
			}
			return n
		},
	)

	// {n}     -> bounds == (n, n)
	// {n,}    -> bounds == (n, -1)
	// {n,m}   -> bounds == (n, m)
	bounds := comb.Seq(number, comb.Optional(comb.KeepRight(comb.Rune(','), comb.Optional(number))))

	ranged := comb.Map(
		comb.KeepRight(comb.Rune('{'), comb.KeepLeft(bounds, comb.Rune('}'))),
		func(p comb.Pair[int, **int]) quant {
			q := quant{op: OpRepeat, min: p.First, max: p.First}
			if p.Second != nil {
				if upper := *p.Second; upper != nil {
					q.max = *upper
				} else {
					q.max = -1
				}
			}
			return q
		},
	)
	ranged = comb.Filter(ranged, func(q quant) bool {
		if q.min > maxRepeatCount || q.max > maxRepeatCount {
			return false
		}
		return q.max < 0 || q.min <= q.max
	})

	return comb.Alt(simple, ranged)
}

// charClass parses a bracket expression: '[' '^'? item+ ']', where an item
// is a shorthand class (\d, \w, \s), a range (a-z), or a single character.
// '-' is special inside brackets and must be escaped to match literally, as
// must ']' and '\'.
func charClass() comb.Parser[*Node] {
	plain := comb.Satisfy(func(r rune) bool {
		return r != ']' && r != '\\' && r != '-'
	})
	escaped := comb.Map(
		comb.KeepRight(comb.Rune('\\'), comb.Satisfy(isClassEscapable)),
		resolveControl,
	)
	classChar := comb.Alt(plain, escaped)

	shorthand := comb.KeepRight(comb.Rune('\\'), comb.Map(
		comb.Satisfy(func(r rune) bool { return r == 'd' || r == 'w' || r == 's' }),
		shorthandRanges,
	))

	runeRange := comb.Filter(
		comb.Map(
			comb.Seq(classChar, comb.KeepRight(comb.Rune('-'), classChar)),
			func(p comb.Pair[rune, rune]) []RuneRange {
				return []RuneRange{{Lo: p.First, Hi: p.Second}}
			},
		),
		func(rs []RuneRange) bool { return rs[0].Lo <= rs[0].Hi },
	)

	single := comb.Map(classChar, func(r rune) []RuneRange {
		return []RuneRange{{Lo: r, Hi: r}}
	})

	// Order matters only for efficiency, not correctness: Alt backtracks,
	// so 'a-z' is never half-consumed as a bare 'a'.
	item := comb.Alt(shorthand, runeRange, single)

	return comb.Map(
		comb.KeepRight(comb.Rune('['),
			comb.KeepLeft(
				comb.Seq(comb.Optional(comb.Rune('^')), comb.OneOrMore(item)),
				comb.Rune(']'))),
		func(p comb.Pair[*rune, [][]RuneRange]) *Node {
			var ranges []RuneRange
			for _, rs := range p.Second {
				ranges = append(ranges, rs...)
			}
			return &Node{
				Op:     OpCharClass,
				Ranges: normalizeRanges(ranges),
				Negate: p.First != nil,
			}
		},
	)
}

// isEscapable recognizes the escapes valid outside brackets: the
// metacharacters, '-', the control escapes, and the shorthand classes.
// \b and \B are handled as anchors, not here.
func isEscapable(r rune) bool {
	return isMeta(r) || r == '-' ||
		strings.ContainsRune("tnrvf0", r) ||
		strings.ContainsRune("dDwWsS", r)
}

// isClassEscapable recognizes the escapes valid inside brackets.
func isClassEscapable(r rune) bool {
	return isMeta(r) || r == '-' || strings.ContainsRune("tnrvf0", r)
}

var controlEscapes = map[rune]rune{
	't': '\t',
	'n': '\n',
	'r': '\r',
	'v': '\v',
	'f': '\f',
	'0': 0,
}

func resolveControl(r rune) rune {
	if c, ok := controlEscapes[r]; ok {
		return c
	}
	return r
}

// escapeNode builds the node for an escape outside brackets.
func escapeNode(r rune) *Node {
	switch r {
	case 'd', 'D':
		return &Node{Op: OpCharClass, Ranges: shorthandRanges('d'), Negate: r == 'D'}
	case 'w', 'W':
		return &Node{Op: OpCharClass, Ranges: shorthandRanges('w'), Negate: r == 'W'}
	case 's', 'S':
		return &Node{Op: OpCharClass, Ranges: shorthandRanges('s'), Negate: r == 'S'}
	default:
		return &Node{Op: OpLiteral, Rune: resolveControl(r)}
	}
}

// shorthandRanges returns the ASCII ranges of \d, \w or \s, matching the
// semantics of the classic engines this grammar derives from.
func shorthandRanges(r rune) []RuneRange {
	switch r {
	case 'd':
		return []RuneRange{{'0', '9'}}
	case 'w':
		return []RuneRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	case 's':
		return []RuneRange{{'\t', '\r'}, {' ', ' '}}
	default:
		return nil
	}
}

// normalizeRanges sorts ranges and merges overlaps and adjacencies, so that
// equal classes always produce identical nodes.
func normalizeRanges(ranges []RuneRange) []RuneRange {
	if len(ranges) <= 1 {
		return ranges
	}
	sort.Slice(ranges, func(i, j int) bool {
		if ranges[i].Lo != ranges[j].Lo {
			return ranges[i].Lo < ranges[j].Lo
		}
		return ranges[i].Hi < ranges[j].Hi
	})
	merged := ranges[:1]
	for _, r := range ranges[1:] {
		last := &merged[len(merged)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
