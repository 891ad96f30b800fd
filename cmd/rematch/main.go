// Command rematch compiles a pattern and tests subjects against it.
//
// With subject arguments it prints one verdict per subject and exits with
// status 0 if every subject matched:
//
//	rematch '(ab|cd)+' abcd abab xyz
//
// Without subjects it drops into an interactive loop reading one subject
// per line; quit with ctrl-D.
//
// The -find flag switches from whole-subject matching to leftmost-longest
// search, printing the matched substring and its offsets.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/coregx/rematch"
	"github.com/coregx/rematch/syntax"
)

func main() {
	find := flag.Bool("find", false, "search for the pattern inside each subject instead of matching the whole subject")
	stats := flag.Bool("stats", false, "print engine statistics on exit")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: rematch [-find] [-stats] PATTERN [SUBJECT...]")
		os.Exit(2)
	}
	initDisplay()

	pattern := flag.Arg(0)
	re, err := rematch.Compile(pattern)
	if err != nil {
		reportParseError(pattern, err)
		os.Exit(2)
	}

	allMatched := true
	subjects := flag.Args()[1:]
	if len(subjects) > 0 {
		for _, subject := range subjects {
			if !check(re, subject, *find) {
				allMatched = false
			}
		}
	} else {
		repl(re, *find)
	}

	if *stats {
		printStats(re)
	}
	if !allMatched {
		os.Exit(1)
	}
}

// check tests one subject and prints the verdict. It reports whether the
// subject matched.
func check(re *rematch.Regexp, subject string, find bool) bool {
	if find {
		loc := re.FindStringIndex(subject)
		if loc == nil {
			pterm.Error.Printf("no match in %q\n", subject)
			return false
		}
		pterm.Success.Printf("%q matches at [%d:%d] in %q\n", subject[loc[0]:loc[1]], loc[0], loc[1], subject)
		return true
	}
	if re.MatchString(subject) {
		pterm.Success.Printf("%q\n", subject)
		return true
	}
	pterm.Error.Printf("%q\n", subject)
	return false
}

// repl reads subjects interactively until EOF.
func repl(re *rematch.Regexp, find bool) {
	rl, err := readline.New("rematch> ")
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(3)
	}
	defer rl.Close()

	pterm.Info.Printf("pattern %s, one subject per line, quit with ctrl-D\n", re.String())
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimRight(line, "\r\n"); line == "" {
			continue
		}
		check(re, line, find)
	}
}

func printStats(re *rematch.Regexp) {
	s := re.Stats()
	pterm.Info.Printf("nfa=%d literal=%d prefilter_skips=%d prefilter_misses=%d\n",
		s.NFASearches, s.LiteralSearches, s.PrefilterSkips, s.PrefilterMisses)
}

// reportParseError points at the offending position when the error carries
// one.
func reportParseError(pattern string, err error) {
	pterm.Error.Println(err.Error())
	if perr, ok := err.(*syntax.ParseError); ok {
		fmt.Fprintf(os.Stderr, "  %s\n  %s^\n", pattern, strings.Repeat(" ", perr.Pos))
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  no",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Success.Prefix = pterm.Prefix{
		Text:  "  ok",
		Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
	}
}
