package syntax

import (
	"testing"
)

func mustParse(t *testing.T, pattern string) *Node {
	t.Helper()
	node, err := Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return node
}

func TestParseCanonicalForm(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"", "(?:)"},
		{"a", "a"},
		{"abc", "abc"},
		{"a|b|c", "a|b|c"},
		{"ab|cd", "ab|cd"},
		{"(ab)*", "(ab)*"},
		{"a+b?", "a+b?"},
		{"a{3}", "a{3}"},
		{"a{2,}", "a{2,}"},
		{"a{2,4}", "a{2,4}"},
		{".", "."},
		{"^a$", "^a$"},
		{`\ba\B`, `\ba\B`},
		{"héllo", "héllo"},

		// Classes render normalized: sorted, merged ranges.
		{"[a-z0-9]", "[0-9a-z]"},
		{"[cab]", "[a-c]"},
		{"[^abc]", "[^a-c]"},
		{"[a-cb-f]", "[a-f]"},
		{`\d`, "[0-9]"},
		{`\w`, "[0-9A-Z_a-z]"},
		{`[\dx]`, "[0-9x]"},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := mustParse(t, tt.pattern).String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseStructure(t *testing.T) {
	t.Run("alternation is the outermost op", func(t *testing.T) {
		n := mustParse(t, "ab|cd")
		if n.Op != OpAlternate || len(n.Sub) != 2 {
			t.Fatalf("Parse(ab|cd) = %s op, want alternation of 2", n.Op)
		}
		if n.Sub[0].Op != OpConcat || n.Sub[1].Op != OpConcat {
			t.Errorf("branches = (%s, %s), want concatenations", n.Sub[0].Op, n.Sub[1].Op)
		}
	})

	t.Run("quantifier binds to one atom", func(t *testing.T) {
		n := mustParse(t, "ab*")
		if n.Op != OpConcat || len(n.Sub) != 2 {
			t.Fatalf("Parse(ab*) = %s, want concat of 2", n.Op)
		}
		if n.Sub[0].Op != OpLiteral || n.Sub[1].Op != OpStar {
			t.Errorf("subs = (%s, %s), want (Literal, Star)", n.Sub[0].Op, n.Sub[1].Op)
		}
		if n.Sub[1].Sub[0].Rune != 'b' {
			t.Errorf("star binds %q, want 'b'", n.Sub[1].Sub[0].Rune)
		}
	})

	t.Run("group overrides quantifier binding", func(t *testing.T) {
		n := mustParse(t, "(ab)*")
		if n.Op != OpStar || n.Sub[0].Op != OpGroup {
			t.Fatalf("Parse((ab)*) = %s over %s, want Star over Group", n.Op, n.Sub[0].Op)
		}
	})

	t.Run("escaped metacharacter is a literal", func(t *testing.T) {
		n := mustParse(t, `\.`)
		if n.Op != OpLiteral || n.Rune != '.' {
			t.Errorf("Parse(\\.) = %s %q, want literal '.'", n.Op, n.Rune)
		}
	})

	t.Run("control escape resolves", func(t *testing.T) {
		n := mustParse(t, `\n`)
		if n.Op != OpLiteral || n.Rune != '\n' {
			t.Errorf("Parse(\\n) = %s %q, want literal newline", n.Op, n.Rune)
		}
	})

	t.Run("negated shorthand", func(t *testing.T) {
		n := mustParse(t, `\D`)
		if n.Op != OpCharClass || !n.Negate {
			t.Fatalf("Parse(\\D) = %s negate=%v, want negated class", n.Op, n.Negate)
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
		code    ErrorCode
	}{
		{"(", 1, ErrUnexpectedEOF},
		{"a(", 2, ErrUnexpectedEOF},
		{")", 0, ErrUnexpectedCharacter},
		{"ab)", 2, ErrUnconsumedInput},
		{"|a", 0, ErrUnexpectedCharacter},
		{"a|", 2, ErrUnexpectedEOF},
		{"?", 0, ErrUnexpectedCharacter},
		{"()", 1, ErrUnexpectedCharacter},
		{`\`, 1, ErrUnexpectedEOF},
		{`\q`, 1, ErrUnexpectedCharacter},
		{"[", 1, ErrUnexpectedEOF},
		{"[^]", 2, ErrUnexpectedCharacter},
		{"a{0,1001}", 1, ErrUnconsumedInput},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.pattern)
			}
			perr, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Pos != tt.pos || perr.Code != tt.code {
				t.Errorf("error = %q at %d, want %q at %d", perr.Code, perr.Pos, tt.code, tt.pos)
			}
			if perr.Pattern != tt.pattern {
				t.Errorf("error pattern = %q, want %q", perr.Pattern, tt.pattern)
			}
		})
	}
}

func TestMatchesEmpty(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"", true},
		{"a", false},
		{"a*", true},
		{"a+", false},
		{"a?", true},
		{"a|b*", true},
		{"a|b", false},
		{"(a*)(b*)", true},
		{"a*b", false},
		{"^$", true},
		{"a{0,3}", true},
		{"a{1,3}", false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			if got := mustParse(t, tt.pattern).MatchesEmpty(); got != tt.want {
				t.Errorf("MatchesEmpty(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	pattern := `(a|ab)*[x-z]{2,3}\d$`
	first := mustParse(t, pattern).String()
	for i := 0; i < 10; i++ {
		if got := mustParse(t, pattern).String(); got != first {
			t.Fatalf("parse %d produced %q, first produced %q", i, got, first)
		}
	}
}
