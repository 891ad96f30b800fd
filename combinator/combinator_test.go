package combinator

import (
	"testing"
	"unicode"
)

func TestRune(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    rune
		ok      bool
		restPos int
	}{
		{"match", "abc", 'a', true, 1},
		{"mismatch", "xbc", 'a', false, 0},
		{"empty input", "", 'a', false, 0},
		{"multibyte", "日本", '日', true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Rune(tt.want)(NewInput(tt.input))
			if res.Ok != tt.ok {
				t.Fatalf("Rune(%q)(%q).Ok = %v, want %v", tt.want, tt.input, res.Ok, tt.ok)
			}
			if !res.Ok {
				return
			}
			if res.Value != tt.want {
				t.Errorf("value = %q, want %q", res.Value, tt.want)
			}
			if res.Rest.Pos() != tt.restPos {
				t.Errorf("rest pos = %d, want %d", res.Rest.Pos(), tt.restPos)
			}
		})
	}
}

func TestMapPropagatesFailure(t *testing.T) {
	p := Map(Rune('a'), func(r rune) string { return string(r) + "!" })

	res := p(NewInput("a"))
	if !res.Ok || res.Value != "a!" {
		t.Errorf("map success = (%q, %v), want (%q, true)", res.Value, res.Ok, "a!")
	}

	res = p(NewInput("b"))
	if res.Ok {
		t.Error("map on failed parse reported success")
	}
	if res.Pos != 0 {
		t.Errorf("failure pos = %d, want 0", res.Pos)
	}
}

func TestSeqNoPartialConsumption(t *testing.T) {
	p := Seq(Rune('a'), Rune('b'))

	res := p(NewInput("ab"))
	if !res.Ok {
		t.Fatal("Seq failed on matching input")
	}
	if res.Value.First != 'a' || res.Value.Second != 'b' {
		t.Errorf("values = (%q, %q), want (a, b)", res.Value.First, res.Value.Second)
	}

	// First succeeds, second fails: the failure position is where the
	// second parser gave up, and the caller's original cursor is intact.
	in := NewInput("ax")
	res = p(in)
	if res.Ok {
		t.Fatal("Seq succeeded on 'ax'")
	}
	if res.Pos != 1 {
		t.Errorf("failure pos = %d, want 1", res.Pos)
	}
	if in.Pos() != 0 {
		t.Error("caller's input was mutated")
	}
}

func TestAltBacktracksFromOriginalInput(t *testing.T) {
	// "ab" | "ac": the first alternative consumes 'a' before failing on
	// 'c'. The second must still see the full input from the start.
	ab := Map(Seq(Rune('a'), Rune('b')), func(Pair[rune, rune]) string { return "ab" })
	ac := Map(Seq(Rune('a'), Rune('c')), func(Pair[rune, rune]) string { return "ac" })
	p := Alt(ab, ac)

	res := p(NewInput("ac"))
	if !res.Ok {
		t.Fatal("Alt failed; first alternative leaked partial consumption")
	}
	if res.Value != "ac" {
		t.Errorf("value = %q, want %q", res.Value, "ac")
	}
	if res.Rest.Pos() != 2 {
		t.Errorf("rest pos = %d, want 2", res.Rest.Pos())
	}
}

func TestAltReportsFurthestFailure(t *testing.T) {
	ab := Seq(Rune('a'), Rune('b'))
	p := Alt(Map(ab, func(Pair[rune, rune]) rune { return 'x' }), Rune('z'))

	res := p(NewInput("ac"))
	if res.Ok {
		t.Fatal("Alt succeeded on 'ac'")
	}
	// First alternative reached offset 1 before failing; second failed at
	// 0. The furthest position wins.
	if res.Pos != 1 {
		t.Errorf("failure pos = %d, want 1", res.Pos)
	}
}

func TestZeroOrMore(t *testing.T) {
	p := ZeroOrMore(Rune('a'))

	res := p(NewInput("aaab"))
	if !res.Ok || len(res.Value) != 3 {
		t.Errorf("got %d values, want 3", len(res.Value))
	}
	if res.Rest.Pos() != 3 {
		t.Errorf("rest pos = %d, want 3", res.Rest.Pos())
	}

	res = p(NewInput("bbb"))
	if !res.Ok || len(res.Value) != 0 {
		t.Error("ZeroOrMore must succeed with zero matches")
	}
}

func TestOneOrMore(t *testing.T) {
	p := OneOrMore(Satisfy(unicode.IsDigit))

	res := p(NewInput("123x"))
	if !res.Ok || len(res.Value) != 3 {
		t.Errorf("got ok=%v len=%d, want ok=true len=3", res.Ok, len(res.Value))
	}

	res = p(NewInput("x123"))
	if res.Ok {
		t.Error("OneOrMore succeeded with zero matches")
	}
	if res.Pos != 0 {
		t.Errorf("failure pos = %d, want 0", res.Pos)
	}
}

func TestFilterRejectionPosition(t *testing.T) {
	digits := OneOrMore(Satisfy(unicode.IsDigit))
	p := Filter(digits, func(ds []rune) bool { return len(ds) <= 2 })

	res := p(NewInput("12x"))
	if !res.Ok {
		t.Fatal("Filter rejected an accepted value")
	}

	// The parse itself succeeds through offset 3; the rejection is about
	// the value as a whole, so both positions point at the start.
	res = p(NewInput("123x"))
	if res.Ok {
		t.Fatal("Filter accepted a rejected value")
	}
	if res.Pos != 0 {
		t.Errorf("failure pos = %d, want 0", res.Pos)
	}
	if res.FurthestErr != 0 {
		t.Errorf("furthest error = %d, want 0", res.FurthestErr)
	}
}

func TestOptional(t *testing.T) {
	p := Optional(Rune('a'))

	res := p(NewInput("ab"))
	if !res.Ok || res.Value == nil || *res.Value != 'a' {
		t.Error("Optional did not capture present value")
	}

	res = p(NewInput("b"))
	if !res.Ok || res.Value != nil {
		t.Error("Optional must succeed with nil on absent value")
	}
	if res.Rest.Pos() != 0 {
		t.Error("Optional consumed input on absent value")
	}
}

func TestLazyRecursion(t *testing.T) {
	// nested := 'a' | '(' nested ')'
	var nested func() Parser[int]
	nested = func() Parser[int] {
		return Alt(
			Map(Rune('a'), func(rune) int { return 0 }),
			Map(
				Seq(Rune('('), Seq(Lazy(nested), Rune(')'))),
				func(p Pair[rune, Pair[int, rune]]) int { return p.Second.First + 1 },
			),
		)
	}

	res := nested()(NewInput("(((a)))"))
	if !res.Ok {
		t.Fatal("recursive parser failed")
	}
	if res.Value != 3 {
		t.Errorf("nesting depth = %d, want 3", res.Value)
	}
}

func TestDeterminism(t *testing.T) {
	p := ZeroOrMore(Alt(Rune('a'), Rune('b')))
	in := NewInput("abbaabz")

	first := p(in)
	second := p(in)

	if first.Ok != second.Ok || len(first.Value) != len(second.Value) ||
		first.Rest.Pos() != second.Rest.Pos() || first.FurthestErr != second.FurthestErr {
		t.Error("identical input produced different results")
	}
}
