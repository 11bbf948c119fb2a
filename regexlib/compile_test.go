package regexlib

import (
	"regexp"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

var languagePatterns = []string{
	"a",
	"ab",
	"a|b",
	"a*",
	"a+b?",
	"(a|b)*abb",
	"(ab|a)*c",
	"a(b|c)*d",
	"((a|b)c)+",
	"a?b?c?",
	"(a*b*)*",
	"d|(a|b)+c?",
}

func TestLanguagePreservation(t *testing.T) {
	inputs := words("abcd", 5)
	for _, pattern := range languagePatterns {
		res, err := Compile(pattern)
		if err != nil {
			t.Fatalf("Compile(%q): %v", pattern, err)
		}
		oracle := regexp.MustCompile("^(?:" + pattern + ")$")
		for _, in := range inputs {
			want := oracle.MatchString(in)
			if got := accepts(res.NFA, in); got != want {
				t.Fatalf("NFA for %q on %q = %v, want %v", pattern, in, got, want)
			}
			if got := accepts(res.DFA, in); got != want {
				t.Fatalf("DFA for %q on %q = %v, want %v", pattern, in, got, want)
			}
			if got := accepts(res.MinDFA, in); got != want {
				t.Fatalf("minimal DFA for %q on %q = %v, want %v", pattern, in, got, want)
			}
		}
		if res.MinDFA.NumStates() > res.DFA.NumStates() {
			t.Errorf("%q: minimal DFA has %d states, DFA has %d", pattern, res.MinDFA.NumStates(), res.DFA.NumStates())
		}
	}
}

func TestCompileResult(t *testing.T) {
	res := MustCompile("(a|b)*abb")
	if res.Pattern != "(a|b)*abb" || res.Postfix.String() != "ab|*a.b.b." {
		t.Fatalf("pattern %q postfix %q", res.Pattern, res.Postfix)
	}
	if len(res.Subsets) != res.DFA.NumStates() {
		t.Fatalf("%d subsets for %d DFA states", len(res.Subsets), res.DFA.NumStates())
	}
	// the subset construction yields the textbook 5 states; two of them are
	// equivalent, so the minimal DFA has 4
	if res.DFA.NumStates() != 5 {
		t.Fatalf("DFA has %d states, want 5", res.DFA.NumStates())
	}
	if res.MinDFA.NumStates() != 4 {
		t.Fatalf("minimal DFA has %d states, want 4", res.MinDFA.NumStates())
	}
	accepting := res.MinDFA.Accepting()
	if len(accepting) != 1 {
		t.Fatalf("minimal DFA accepting states = %v, want exactly one", accepting)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, pattern := range []string{"", "*", "a|", "()"} {
		res, err := Compile(pattern)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Compile(%q) err = %v, want ParseError", pattern, err)
		}
		if res != nil {
			t.Errorf("Compile(%q) returned a result alongside the error", pattern)
		}
	}
	if _, err := CompileWith("(a", ParseOptions{StrictParens: true}); err == nil {
		t.Error("strict compile accepted an unmatched '('")
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("MustCompile(\"*\") did not panic")
		}
	}()
	MustCompile("*")
}

func TestConcurrentCompiles(t *testing.T) {
	want := MustCompile("(a|b)*abb")
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Compile("(a|b)*abb")
			if err != nil {
				errs <- err.Error()
				return
			}
			if !isomorphic(got.MinDFA, want.MinDFA) || got.NFA.NumStates() != want.NFA.NumStates() {
				errs <- "concurrent compile diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}
