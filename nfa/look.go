package nfa

// Look is a zero-width assertion tested against the current position in the
// input without consuming any bytes.
type Look uint8

const (
	// LookStartText asserts the position is at the beginning of the input.
	LookStartText Look = iota

	// LookEndText asserts the position is at the end of the input.
	LookEndText

	// LookWordBoundary asserts a word boundary: exactly one side of the
	// position is a word byte.
	LookWordBoundary

	// LookNoWordBoundary asserts the absence of a word boundary.
	LookNoWordBoundary
)

// String returns a human-readable name for the assertion.
func (l Look) String() string {
	switch l {
	case LookStartText:
		return "StartText"
	case LookEndText:
		return "EndText"
	case LookWordBoundary:
		return "WordBoundary"
	case LookNoWordBoundary:
		return "NoWordBoundary"
	default:
		return "Unknown"
	}
}

// Matches reports whether the assertion holds at position pos in haystack.
// pos ranges over [0, len(haystack)].
func (l Look) Matches(haystack []byte, pos int) bool {
	switch l {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	case LookWordBoundary:
		return isWordByteAt(haystack, pos-1) != isWordByteAt(haystack, pos)
	case LookNoWordBoundary:
		return isWordByteAt(haystack, pos-1) == isWordByteAt(haystack, pos)
	default:
		return false
	}
}

// isWordByteAt reports whether the byte at index i is a word byte.
// Out-of-range indices count as non-word.
func isWordByteAt(haystack []byte, i int) bool {
	if i < 0 || i >= len(haystack) {
		return false
	}
	return isWordByte(haystack[i])
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= '0' && b <= '9') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= 'a' && b <= 'z')
}
