package syntax

import "fmt"

// ErrorCode distinguishes the ways a pattern can fail to parse.
type ErrorCode string

const (
	// ErrUnexpectedCharacter means a character could not start or continue
	// any grammar production at its position.
	ErrUnexpectedCharacter ErrorCode = "unexpected character"

	// ErrUnconsumedInput means the grammar matched a prefix of the pattern
	// but input remained. A successful top-level parse must consume the
	// entire pattern.
	ErrUnconsumedInput ErrorCode = "unconsumed input"

	// ErrUnexpectedEOF means the pattern ended where the grammar required
	// more input, e.g. an unterminated group or a trailing backslash.
	ErrUnexpectedEOF ErrorCode = "unexpected end of pattern"
)

// ParseError describes a pattern syntax error at a byte offset.
// Compilation is all-or-nothing: a ParseError means nothing was compiled.
type ParseError struct {
	Code    ErrorCode
	Pattern string
	Pos     int
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing pattern %q at position %d: %s", e.Pattern, e.Pos, e.Code)
}
