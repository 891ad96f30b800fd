package nfa

import (
	"fmt"
	"unicode/utf8"

	"github.com/coregx/rematch/syntax"
)

// CompileError describes a pattern that parsed but cannot be turned into an
// NFA, such as a character class expanding past the configured limit.
type CompileError struct {
	Message string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return "compile error: " + e.Message
}

// CompilerConfig controls NFA compilation.
type CompilerConfig struct {
	// MaxClassRunes limits how many individual runes a non-ASCII character
	// class may expand into.
	MaxClassRunes int
}

// DefaultCompilerConfig returns the default compiler configuration.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxClassRunes: 256,
	}
}

// Compiler translates a parsed syntax tree into a Thompson NFA. States are
// generated right-to-left so every construct knows its continuation up
// front; only quantifier loops need back-patching.
type Compiler struct {
	builder *Builder
	config  CompilerConfig
}

// NewCompiler creates a compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	return &Compiler{
		builder: NewBuilder(),
		config:  config,
	}
}

// Compile translates root into an NFA using the default configuration.
func Compile(root *syntax.Node) (*NFA, error) {
	return NewCompiler(DefaultCompilerConfig()).Compile(root)
}

// Compile translates root into an NFA. The compiler must not be reused.
func (c *Compiler) Compile(root *syntax.Node) (*NFA, error) {
	match := c.builder.AddMatch()
	start, err := c.compile(root, match)
	if err != nil {
		return nil, err
	}
	if err := c.builder.SetStart(start); err != nil {
		return nil, err
	}
	return c.builder.Build()
}

// compile emits states for node such that a successful match continues at
// next, and returns the entry state of the emitted fragment.
func (c *Compiler) compile(node *syntax.Node, next StateID) (StateID, error) {
	switch node.Op {
	case syntax.OpEmpty:
		return next, nil

	case syntax.OpLiteral:
		return c.compileRune(node.Rune, next), nil

	case syntax.OpConcat:
		cur := next
		for i := len(node.Sub) - 1; i >= 0; i-- {
			var err error
			cur, err = c.compile(node.Sub[i], cur)
			if err != nil {
				return InvalidState, err
			}
		}
		return cur, nil

	case syntax.OpAlternate:
		starts := make([]StateID, 0, len(node.Sub))
		for _, sub := range node.Sub {
			start, err := c.compile(sub, next)
			if err != nil {
				return InvalidState, err
			}
			starts = append(starts, start)
		}
		return c.splitChain(starts), nil

	case syntax.OpStar:
		return c.compileStar(node.Sub[0], next)

	case syntax.OpPlus:
		return c.compilePlus(node.Sub[0], next)

	case syntax.OpQuest:
		body, err := c.compile(node.Sub[0], next)
		if err != nil {
			return InvalidState, err
		}
		return c.builder.AddSplit(body, next), nil

	case syntax.OpRepeat:
		return c.compileRepeat(node, next)

	case syntax.OpGroup:
		return c.compile(node.Sub[0], next)

	case syntax.OpAnyChar:
		return c.compileAnyChar(next), nil

	case syntax.OpCharClass:
		return c.compileClass(node, next)

	case syntax.OpAnchor:
		return c.builder.AddLook(lookFor(node.Anchor), next), nil

	default:
		return InvalidState, &CompileError{Message: fmt.Sprintf("unsupported syntax op %s", node.Op)}
	}
}

// compileStar emits a loop for sub* entered at the split so zero iterations
// fall straight through to next.
func (c *Compiler) compileStar(sub *syntax.Node, next StateID) (StateID, error) {
	split := c.builder.AddSplit(InvalidState, next)
	body, err := c.compile(sub, split)
	if err != nil {
		return InvalidState, err
	}
	if err := c.builder.Patch(split, body); err != nil {
		return InvalidState, err
	}
	return split, nil
}

// compilePlus emits a loop for sub+ entered at the body so at least one
// iteration is consumed before the split can exit to next.
func (c *Compiler) compilePlus(sub *syntax.Node, next StateID) (StateID, error) {
	split := c.builder.AddSplit(InvalidState, next)
	body, err := c.compile(sub, split)
	if err != nil {
		return InvalidState, err
	}
	if err := c.builder.Patch(split, body); err != nil {
		return InvalidState, err
	}
	return body, nil
}

// compileRepeat expands a counted repetition into required copies followed
// by optional copies, or a trailing star when unbounded.
func (c *Compiler) compileRepeat(node *syntax.Node, next StateID) (StateID, error) {
	sub := node.Sub[0]
	cur := next
	var err error

	if node.Max == -1 {
		cur, err = c.compileStar(sub, cur)
		if err != nil {
			return InvalidState, err
		}
	} else {
		for i := node.Min; i < node.Max; i++ {
			body, err := c.compile(sub, cur)
			if err != nil {
				return InvalidState, err
			}
			cur = c.builder.AddSplit(body, cur)
		}
	}

	for i := 0; i < node.Min; i++ {
		cur, err = c.compile(sub, cur)
		if err != nil {
			return InvalidState, err
		}
	}
	return cur, nil
}

// compileRune emits the UTF-8 byte chain for a single rune.
func (c *Compiler) compileRune(r rune, next StateID) StateID {
	if r < utf8.RuneSelf {
		return c.builder.AddByteRange(byte(r), byte(r), next)
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return c.byteChain(buf[:n], next)
}

// byteChain emits a linear chain of single-byte states matching seq.
func (c *Compiler) byteChain(seq []byte, next StateID) StateID {
	cur := next
	for i := len(seq) - 1; i >= 0; i-- {
		cur = c.builder.AddByteRange(seq[i], seq[i], cur)
	}
	return cur
}

// multibyte UTF-8 lead/continuation byte ranges. Lead ranges follow the
// well-formed encoding boundaries so overlong and surrogate encodings are
// rejected structurally.
type byteRange struct{ lo, hi byte }

var utf8Sequences = [][]byteRange{
	{{0xC2, 0xDF}, {0x80, 0xBF}},
	{{0xE0, 0xEF}, {0x80, 0xBF}, {0x80, 0xBF}},
	{{0xF0, 0xF4}, {0x80, 0xBF}, {0x80, 0xBF}, {0x80, 0xBF}},
}

// rangeChain emits a linear chain of byte-range states.
func (c *Compiler) rangeChain(seq []byteRange, next StateID) StateID {
	cur := next
	for i := len(seq) - 1; i >= 0; i-- {
		cur = c.builder.AddByteRange(seq[i].lo, seq[i].hi, cur)
	}
	return cur
}

// compileMultibyte emits a fragment matching any multibyte UTF-8 rune.
func (c *Compiler) compileMultibyte(next StateID) StateID {
	starts := make([]StateID, 0, len(utf8Sequences))
	for _, seq := range utf8Sequences {
		starts = append(starts, c.rangeChain(seq, next))
	}
	return c.splitChain(starts)
}

// compileAnyChar emits a fragment matching any rune except newline.
func (c *Compiler) compileAnyChar(next StateID) StateID {
	ascii := c.builder.AddSparse([]Transition{
		{Lo: 0x00, Hi: 0x09, Next: next},
		{Lo: 0x0B, Hi: 0x7F, Next: next},
	})
	multi := c.compileMultibyte(next)
	return c.builder.AddSplit(ascii, multi)
}

// compileClass emits a fragment for a character class.
func (c *Compiler) compileClass(node *syntax.Node, next StateID) (StateID, error) {
	if node.Negate {
		return c.compileNegatedClass(node, next)
	}

	ascii := make([]Transition, 0, len(node.Ranges))
	var wide []syntax.RuneRange
	for _, rr := range node.Ranges {
		if rr.Hi < utf8.RuneSelf {
			ascii = append(ascii, Transition{Lo: byte(rr.Lo), Hi: byte(rr.Hi), Next: next})
			continue
		}
		if rr.Lo < utf8.RuneSelf {
			ascii = append(ascii, Transition{Lo: byte(rr.Lo), Hi: 0x7F, Next: next})
			rr.Lo = utf8.RuneSelf
		}
		wide = append(wide, rr)
	}

	var starts []StateID
	if len(ascii) > 0 {
		starts = append(starts, c.builder.AddSparse(ascii))
	}
	if len(wide) > 0 {
		runes := 0
		for _, rr := range wide {
			runes += int(rr.Hi-rr.Lo) + 1
			if runes > c.config.MaxClassRunes {
				return InvalidState, &CompileError{
					Message: fmt.Sprintf("character class expands to more than %d non-ASCII runes", c.config.MaxClassRunes),
				}
			}
		}
		for _, rr := range wide {
			for r := rr.Lo; r <= rr.Hi; r++ {
				starts = append(starts, c.compileRune(r, next))
			}
		}
	}
	if len(starts) == 0 {
		return InvalidState, &CompileError{Message: "empty character class"}
	}
	return c.splitChain(starts), nil
}

// compileNegatedClass emits the ASCII complement of the class plus any
// multibyte rune. Negated classes are restricted to ASCII members.
func (c *Compiler) compileNegatedClass(node *syntax.Node, next StateID) (StateID, error) {
	for _, rr := range node.Ranges {
		if rr.Hi >= utf8.RuneSelf {
			return InvalidState, &CompileError{Message: "negated character class with non-ASCII members"}
		}
	}

	// Ranges arrive sorted and merged, so the complement is the gaps.
	var ascii []Transition
	lo := rune(0)
	for _, rr := range node.Ranges {
		if rr.Lo > lo {
			ascii = append(ascii, Transition{Lo: byte(lo), Hi: byte(rr.Lo - 1), Next: next})
		}
		lo = rr.Hi + 1
	}
	if lo < utf8.RuneSelf {
		ascii = append(ascii, Transition{Lo: byte(lo), Hi: 0x7F, Next: next})
	}

	multi := c.compileMultibyte(next)
	if len(ascii) == 0 {
		return multi, nil
	}
	return c.builder.AddSplit(c.builder.AddSparse(ascii), multi), nil
}

// splitChain folds multiple alternative entry points into a binary split
// tree, preserving left-to-right priority.
func (c *Compiler) splitChain(starts []StateID) StateID {
	cur := starts[len(starts)-1]
	for i := len(starts) - 2; i >= 0; i-- {
		cur = c.builder.AddSplit(starts[i], cur)
	}
	return cur
}

func lookFor(kind syntax.AnchorKind) Look {
	switch kind {
	case syntax.AnchorStartText:
		return LookStartText
	case syntax.AnchorEndText:
		return LookEndText
	case syntax.AnchorWordBoundary:
		return LookWordBoundary
	default:
		return LookNoWordBoundary
	}
}
