package literal

import (
	"sort"
	"testing"

	"github.com/coregx/rematch/syntax"
)

func extract(t *testing.T, pattern string, f func(*Extractor, *syntax.Node) *Seq) *Seq {
	t.Helper()
	node, err := syntax.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return f(New(DefaultConfig()), node)
}

func literalStrings(s *Seq) []string {
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, string(s.Get(i).Bytes))
	}
	sort.Strings(out)
	return out
}

func TestExtractPrefixes(t *testing.T) {
	tests := []struct {
		pattern  string
		want     []string
		complete bool
	}{
		{"hello", []string{"hello"}, true},
		{"foo|bar", []string{"bar", "foo"}, true},
		{"(foo|bar)", []string{"bar", "foo"}, true},
		{"hello.*", []string{"hello"}, false},
		{"[abc]x", []string{"ax", "bx", "cx"}, true},
		{"(ab|cd)ef", []string{"abef", "cdef"}, true},
		// Anchored branches still prefix every match, but the anchor is a
		// position constraint the bytes cannot carry, so they are never
		// complete.
		{"^get", []string{"get"}, false},
		{"^ab|^cd", []string{"ab", "cd"}, false},
		{"a+b", []string{"a"}, false},
		{"", []string{""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, tt.pattern, (*Extractor).ExtractPrefixes)
			got := literalStrings(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractPrefixes(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ExtractPrefixes(%q) = %q, want %q", tt.pattern, got, tt.want)
				}
			}
			if seq.AllComplete() != tt.complete {
				t.Errorf("AllComplete() = %v, want %v", seq.AllComplete(), tt.complete)
			}
		})
	}
}

func TestExtractPrefixesNone(t *testing.T) {
	patterns := []string{".*foo", "a*b", "[a-z]x", "(a*|b)c", "."}
	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			seq := extract(t, pattern, (*Extractor).ExtractPrefixes)
			if seq.AllComplete() {
				t.Errorf("ExtractPrefixes(%q) claims a complete literal set: %v", pattern, seq)
			}
			for i := 0; i < seq.Len(); i++ {
				if l := seq.Get(i); len(l.Bytes) > 0 && l.Complete {
					t.Errorf("unexpected complete literal %v", l)
				}
			}
		})
	}
}

func TestExtractSuffixes(t *testing.T) {
	tests := []struct {
		pattern  string
		want     []string
		complete bool
	}{
		{"world", []string{"world"}, true},
		{".*world", []string{"world"}, false},
		{"foo|bar", []string{"bar", "foo"}, true},
		{"x[yz]", []string{"xy", "xz"}, true},
		{"end$", []string{"end"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, tt.pattern, (*Extractor).ExtractSuffixes)
			got := literalStrings(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractSuffixes(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ExtractSuffixes(%q) = %q, want %q", tt.pattern, got, tt.want)
				}
			}
			if seq.AllComplete() != tt.complete {
				t.Errorf("AllComplete() = %v, want %v", seq.AllComplete(), tt.complete)
			}
		})
	}
}

func TestExtractInner(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{".*error.*", []string{"error"}},
		{"a*token[0-9]*", []string{"token"}},
		{"abc", []string{"abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			seq := extract(t, tt.pattern, (*Extractor).ExtractInner)
			got := literalStrings(seq)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractInner(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ExtractInner(%q) = %q, want %q", tt.pattern, got, tt.want)
				}
			}
			for i := 0; i < seq.Len(); i++ {
				if seq.Get(i).Complete {
					t.Error("inner literals must never be complete")
				}
			}
		})
	}
}

func TestExtractorLimits(t *testing.T) {
	t.Run("class too large", func(t *testing.T) {
		seq := extract(t, "[a-z]", (*Extractor).ExtractPrefixes)
		if !seq.IsEmpty() {
			t.Errorf("[a-z] expanded to %v despite MaxClassSize", seq)
		}
	})

	t.Run("product too large", func(t *testing.T) {
		// 10 * 10 alternatives exceed MaxLiterals (64).
		seq := extract(t, "[0-9][0-9]", (*Extractor).ExtractPrefixes)
		if !seq.IsEmpty() {
			t.Errorf("product blew the limit but still returned %v", seq)
		}
	})

	t.Run("literal truncation", func(t *testing.T) {
		node, err := syntax.Parse("aaaaaaaaaab")
		if err != nil {
			t.Fatal(err)
		}
		cfg := DefaultConfig()
		cfg.MaxLiteralLen = 4
		seq := New(cfg).ExtractPrefixes(node)
		if seq.Len() != 1 {
			t.Fatalf("Len() = %d, want 1", seq.Len())
		}
		l := seq.Get(0)
		if string(l.Bytes) != "aaaa" || l.Complete {
			t.Errorf("truncated literal = %v, want incomplete \"aaaa\"", l)
		}
	})
}
