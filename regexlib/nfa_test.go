package regexlib

import (
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"regexdfa/automaton"
)

func TestNFASingleSymbol(t *testing.T) {
	nfa, err := CompileToNFA("a")
	if err != nil {
		t.Fatal(err)
	}
	if nfa.NumStates() != 2 {
		t.Fatalf("want 2 states got %d", nfa.NumStates())
	}
	want := []automaton.Edge{{From: 0, To: 1, Symbol: 'a'}}
	if got := nfa.Edges(); !reflect.DeepEqual(got, want) {
		t.Fatalf("edges = %v", got)
	}
	if nfa.Initial() != 0 || !reflect.DeepEqual(nfa.Accepting(), []automaton.State{1}) {
		t.Fatalf("initial %d accepting %v", nfa.Initial(), nfa.Accepting())
	}
}

func TestNFAStateCounts(t *testing.T) {
	tests := []struct {
		pattern string
		states  int
	}{
		{"a", 2},
		{"ab", 4},
		{"a|b", 6},
		{"a*", 4},
		{"a+", 4},
		{"a?", 4},
		{"(a|b)*abb", 14},
	}
	for _, tt := range tests {
		nfa, err := CompileToNFA(tt.pattern)
		if err != nil {
			t.Errorf("CompileToNFA(%q): %v", tt.pattern, err)
			continue
		}
		if nfa.NumStates() != tt.states {
			t.Errorf("CompileToNFA(%q) has %d states, want %d", tt.pattern, nfa.NumStates(), tt.states)
		}
		for i, s := range nfa.States() {
			if s != automaton.State(i) {
				t.Errorf("CompileToNFA(%q) states not dense: %v", tt.pattern, nfa.States())
				break
			}
		}
		if len(nfa.Accepting()) != 1 {
			t.Errorf("CompileToNFA(%q) accepting = %v, want one state", tt.pattern, nfa.Accepting())
		}
	}
}

func TestNFAUnionBranchesOnEpsilon(t *testing.T) {
	nfa, err := CompileToNFA("a|b")
	if err != nil {
		t.Fatal(err)
	}
	if got := nfa.Next(nfa.Initial(), automaton.Epsilon); len(got) != 2 {
		t.Fatalf("initial epsilon targets = %v, want 2", got)
	}
	for _, sym := range []automaton.Symbol{'a', 'b'} {
		if got := nfa.Next(nfa.Initial(), sym); len(got) != 0 {
			t.Fatalf("initial state reads %q directly", sym)
		}
	}
}

func TestNFAConcatDoesNotAcceptPrefix(t *testing.T) {
	nfa, err := CompileToNFA("ab")
	if err != nil {
		t.Fatal(err)
	}
	if accepts(nfa, "a") {
		t.Fatal(`"ab" accepts "a"`)
	}
	if !accepts(nfa, "ab") {
		t.Fatal(`"ab" rejects "ab"`)
	}
}

func TestNFAQuantifiers(t *testing.T) {
	tests := []struct {
		pattern string
		in      string
		want    bool
	}{
		{"a*", "", true},
		{"a*", "aaa", true},
		{"a+", "", false},
		{"a+", "aa", true},
		{"a?", "", true},
		{"a?", "a", true},
		{"a?", "aa", false},
		{`a\*`, "a*", true},
		{`a\*`, "aa", false},
	}
	for _, tt := range tests {
		nfa, err := CompileToNFA(tt.pattern)
		if err != nil {
			t.Fatalf("CompileToNFA(%q): %v", tt.pattern, err)
		}
		if got := accepts(nfa, tt.in); got != tt.want {
			t.Errorf("%q on %q = %v, want %v", tt.pattern, tt.in, got, tt.want)
		}
	}
}

func TestNFAParseErrors(t *testing.T) {
	for _, pattern := range []string{"", "*", "a|", "|a", "()", "(a|)", "a()", "a|*"} {
		nfa, err := CompileToNFA(pattern)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("CompileToNFA(%q) err = %v, want ParseError", pattern, err)
		}
		if nfa != nil {
			t.Errorf("CompileToNFA(%q) returned an automaton alongside the error", pattern)
		}
	}
}

func TestNFAUnderflowPosition(t *testing.T) {
	_, err := CompileToNFA("(a|)")
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Pos != 2 {
		t.Fatalf("err = %v, want ParseError at 2", err)
	}
}

func TestNFALeftoverFragmentsIsFault(t *testing.T) {
	postfix := Postfix{pattern: "ab", tokens: []token{
		{typ: tOperand, sym: 'a', pos: 0},
		{typ: tOperand, sym: 'b', pos: 1},
	}}
	var b NFABuilder
	_, err := b.BuildPostfix(postfix)
	if errors.Cause(err) != ErrConstructionFault {
		t.Fatalf("err = %v, want ErrConstructionFault", err)
	}
}

func TestNFABuilderResetsCounter(t *testing.T) {
	var b NFABuilder
	first, err := b.Build("(a|b)*c")
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build("(a|b)*c")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Edges(), second.Edges()) {
		t.Fatal("rebuilding with the same builder changed numbering")
	}
}
