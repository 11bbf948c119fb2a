// Package regexlib compiles a regular expression into automata in three
// stages: Thompson NFA, subset-construction DFA, minimal DFA.
//
// Supported syntax: literal characters, '|' (union), postfix '*', '+', '?',
// '(' ')' for grouping, and '\' to take the next character literally.
// Concatenation is implicit.
package regexlib

import (
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"regexdfa/automaton"
)

// Result holds every stage of one compilation.
type Result struct {
	Pattern string
	Postfix Postfix
	NFA     *automaton.Automaton
	DFA     *automaton.Automaton
	MinDFA  *automaton.Automaton

	// Subsets[i] lists the NFA states behind DFA state i.
	Subsets [][]automaton.State
}

// CompileToNFA builds the Thompson NFA for pattern.
func CompileToNFA(pattern string) (*automaton.Automaton, error) {
	var b NFABuilder
	return b.Build(pattern)
}

// BuildDFA determinizes nfa over its non-epsilon alphabet.
func BuildDFA(nfa *automaton.Automaton) (*automaton.Automaton, error) {
	var b DFABuilder
	return b.Build(nfa)
}

func Compile(pattern string) (*Result, error) {
	return CompileWith(pattern, ParseOptions{})
}

// CompileWith runs all stages with fresh builders. A failing stage yields no
// Result.
func CompileWith(pattern string, opts ParseOptions) (*Result, error) {
	if pattern == "" {
		return nil, parseErrorf(pattern, -1, "empty pattern")
	}
	postfix, err := ToPostfixWith(pattern, opts)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("pattern %q -> postfix %q", pattern, postfix)

	nb := NFABuilder{Options: opts}
	nfa, err := nb.BuildPostfix(postfix)
	if err != nil {
		return nil, err
	}

	var db DFABuilder
	dfa, err := db.Build(nfa)
	if err != nil {
		return nil, errors.Wrapf(err, "determinize %q", pattern)
	}

	minDFA, err := MinimizeDFA(dfa)
	if err != nil {
		return nil, errors.Wrapf(err, "minimize %q", pattern)
	}
	klog.V(2).Infof("pattern %q: nfa %d states, dfa %d states, minimal %d states",
		pattern, nfa.NumStates(), dfa.NumStates(), minDFA.NumStates())

	return &Result{
		Pattern: pattern,
		Postfix: postfix,
		NFA:     nfa,
		DFA:     dfa,
		MinDFA:  minDFA,
		Subsets: db.Subsets(),
	}, nil
}

func MustCompile(pattern string) *Result {
	r, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return r
}
