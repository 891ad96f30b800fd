// Package combinator provides generic parser combinators.
//
// A Parser[T] is a pure function from an Input cursor to a Result[T]: either
// a parsed value plus the remaining input, or a failure position. Parsers
// have no side effects and are deterministic, so combinators may re-run an
// alternative from the same cursor to backtrack. The syntax package composes
// these primitives into the regex grammar.
//
// Every Result also carries the furthest position at which any attempted
// branch failed, successes included. Error reporting needs this: when a
// repetition stops early the interesting position is where its last
// iteration gave up, not where the repetition happily returned.
package combinator

// Result is the outcome of running a parser.
//
// On success Ok is true, Value holds the parsed value and Rest the remaining
// input. On failure Pos is the byte offset at which this parser could not
// proceed. FurthestErr is maintained in both cases (see package comment);
// for a plain failure it is at least Pos.
type Result[T any] struct {
	Value       T
	Rest        Input
	Ok          bool
	Pos         int
	FurthestErr int
}

// Parser is a pure parsing function over values of type T.
type Parser[T any] func(Input) Result[T]

// Succeed builds a successful Result.
func Succeed[T any](value T, rest Input) Result[T] {
	return Result[T]{Value: value, Rest: rest, Ok: true}
}

// Fail builds a failed Result at the given position.
func Fail[T any](pos int) Result[T] {
	var zero T
	return Result[T]{Value: zero, Pos: pos, FurthestErr: pos}
}

func maxPos(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Satisfy succeeds consuming one rune for which pred returns true.
// It fails at the current position otherwise, including at end of input.
func Satisfy(pred func(rune) bool) Parser[rune] {
	return func(in Input) Result[rune] {
		r, size, ok := in.Peek()
		if !ok || !pred(r) {
			return Fail[rune](in.Pos())
		}
		return Succeed(r, in.Advance(size))
	}
}

// Rune succeeds consuming exactly the rune want.
func Rune(want rune) Parser[rune] {
	return Satisfy(func(r rune) bool { return r == want })
}

// AnyRune succeeds consuming any single rune; it fails only at end of input.
func AnyRune() Parser[rune] {
	return Satisfy(func(rune) bool { return true })
}

// String succeeds consuming exactly the string want.
func String(want string) Parser[string] {
	return func(in Input) Result[string] {
		rest := in
		for _, r := range want {
			got, size, ok := rest.Peek()
			if !ok || got != r {
				return Fail[string](rest.Pos())
			}
			rest = rest.Advance(size)
		}
		return Succeed(want, rest)
	}
}

// Map transforms the value of a successful parse through f.
// Failures propagate unchanged.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) Result[U] {
		res := p(in)
		if !res.Ok {
			return Result[U]{Pos: res.Pos, FurthestErr: res.FurthestErr}
		}
		return Result[U]{Value: f(res.Value), Rest: res.Rest, Ok: true, FurthestErr: res.FurthestErr}
	}
}

// Filter fails a parse whose value does not satisfy pred. The failure is
// reported at the position where p started, since the value as a whole was
// rejected. The inner parse's furthest-error position is discarded: the
// input was syntactically fine, so positions inside it would misattribute
// the rejection.
func Filter[T any](p Parser[T], pred func(T) bool) Parser[T] {
	return func(in Input) Result[T] {
		res := p(in)
		if res.Ok && !pred(res.Value) {
			return Fail[T](in.Pos())
		}
		return res
	}
}

// Pair holds the two values produced by Seq.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Seq runs pa then pb, succeeding with both values only if both succeed.
// On failure no partial consumption leaks out: the caller still holds its
// original Input and may retry another parser from it.
func Seq[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(in Input) Result[Pair[A, B]] {
		ra := pa(in)
		if !ra.Ok {
			return Result[Pair[A, B]]{Pos: ra.Pos, FurthestErr: ra.FurthestErr}
		}
		rb := pb(ra.Rest)
		furthest := maxPos(ra.FurthestErr, rb.FurthestErr)
		if !rb.Ok {
			return Result[Pair[A, B]]{Pos: rb.Pos, FurthestErr: furthest}
		}
		return Result[Pair[A, B]]{
			Value:       Pair[A, B]{First: ra.Value, Second: rb.Value},
			Rest:        rb.Rest,
			Ok:          true,
			FurthestErr: furthest,
		}
	}
}

// KeepLeft runs pa then pb and keeps only pa's value.
func KeepLeft[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Map(Seq(pa, pb), func(p Pair[A, B]) A { return p.First })
}

// KeepRight runs pa then pb and keeps only pb's value.
func KeepRight[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Map(Seq(pa, pb), func(p Pair[A, B]) B { return p.Second })
}

// Alt tries each parser in order from the same original input. The first
// success wins. A failed attempt never leaks consumed input into the next
// attempt - each one starts from the cursor Alt itself was given. If all
// fail, the failure is reported at the furthest position any attempt
// reached, which is the most useful position to show a user.
func Alt[T any](parsers ...Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		furthest := in.Pos()
		for _, p := range parsers {
			res := p(in)
			if res.Ok {
				res.FurthestErr = maxPos(res.FurthestErr, furthest)
				return res
			}
			furthest = maxPos(furthest, res.FurthestErr)
		}
		f := Fail[T](furthest)
		return f
	}
}

// ZeroOrMore applies p repeatedly until it fails, collecting the values in
// order. It always succeeds, possibly with an empty slice. The furthest-
// error position records where the final, failing iteration gave up.
func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) Result[[]T] {
		var values []T
		rest := in
		furthest := in.Pos()
		for {
			res := p(rest)
			furthest = maxPos(furthest, res.FurthestErr)
			if !res.Ok {
				return Result[[]T]{Value: values, Rest: rest, Ok: true, FurthestErr: furthest}
			}
			// A parser that consumes nothing would loop forever here.
			if res.Rest.Pos() == rest.Pos() {
				return Result[[]T]{Value: values, Rest: rest, Ok: true, FurthestErr: furthest}
			}
			values = append(values, res.Value)
			rest = res.Rest
		}
	}
}

// OneOrMore is ZeroOrMore requiring at least one success.
func OneOrMore[T any](p Parser[T]) Parser[[]T] {
	many := ZeroOrMore(p)
	return func(in Input) Result[[]T] {
		res := many(in)
		if len(res.Value) == 0 {
			f := Fail[[]T](in.Pos())
			f.FurthestErr = maxPos(f.FurthestErr, res.FurthestErr)
			return f
		}
		return res
	}
}

// Optional applies p zero or one time. It always succeeds; the value is nil
// when p did not match.
func Optional[T any](p Parser[T]) Parser[*T] {
	return func(in Input) Result[*T] {
		res := p(in)
		if !res.Ok {
			return Result[*T]{Rest: in, Ok: true, FurthestErr: res.FurthestErr}
		}
		v := res.Value
		return Result[*T]{Value: &v, Rest: res.Rest, Ok: true, FurthestErr: res.FurthestErr}
	}
}

// Lazy defers construction of a parser until it runs. It breaks the
// definition cycle in recursive grammars, such as a group containing the
// alternation that contains the group.
func Lazy[T any](build func() Parser[T]) Parser[T] {
	return func(in Input) Result[T] {
		return build()(in)
	}
}
