package combinator

import "unicode/utf8"

// Input is an immutable cursor into a pattern string.
//
// An Input never mutates the underlying string; advancing returns a new
// value with a larger offset. Offsets are byte offsets and always sit on a
// rune boundary, so an Input can be copied and retried freely - which is
// what gives Alt its backtracking behavior for free.
type Input struct {
	src string
	pos int
}

// NewInput creates an Input positioned at the start of src.
func NewInput(src string) Input {
	return Input{src: src}
}

// Pos returns the current byte offset into the source.
func (in Input) Pos() int {
	return in.pos
}

// Empty reports whether the cursor has reached the end of the source.
func (in Input) Empty() bool {
	return in.pos >= len(in.src)
}

// Peek decodes the rune at the cursor without advancing.
// It reports ok=false at end of input.
func (in Input) Peek() (r rune, size int, ok bool) {
	if in.Empty() {
		return 0, 0, false
	}
	r, size = utf8.DecodeRuneInString(in.src[in.pos:])
	return r, size, true
}

// Advance returns a new Input moved forward by n bytes. The caller must
// only pass sizes previously obtained from Peek, keeping the offset on a
// rune boundary.
func (in Input) Advance(n int) Input {
	return Input{src: in.src, pos: in.pos + n}
}
