// Package automaton holds the explicit state-transition graph shared by NFAs and DFAs.
package automaton

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// State identifies a state inside one Automaton.
type State int

// NoState is returned by Initial before an initial state is set.
const NoState State = -1

// Symbol labels a transition. Epsilon is never part of a matching alphabet.
type Symbol rune

const Epsilon Symbol = -1

func (s Symbol) String() string {
	if s == Epsilon {
		return "ε"
	}
	return string(rune(s))
}

type Edge struct {
	From   State
	To     State
	Symbol Symbol
}

func (e Edge) String() string {
	return fmt.Sprintf("%d -%s-> %d", e.From, e.Symbol, e.To)
}

// Automaton is a mutable transition graph. Querying a missing state or symbol
// yields an empty result.
type Automaton struct {
	states      *treeset.Set
	alphabet    *treeset.Set
	accepting   *treeset.Set
	initial     State
	edges       []Edge
	transitions map[State]map[Symbol]*treeset.Set
}

func stateComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(State)), int(b.(State)))
}

func symbolComparator(a, b interface{}) int {
	return utils.Int32Comparator(int32(a.(Symbol)), int32(b.(Symbol)))
}

func New() *Automaton {
	return &Automaton{
		states:      treeset.NewWith(stateComparator),
		alphabet:    treeset.NewWith(symbolComparator),
		accepting:   treeset.NewWith(stateComparator),
		initial:     NoState,
		transitions: make(map[State]map[Symbol]*treeset.Set),
	}
}

func (a *Automaton) AddState(s State) {
	a.states.Add(s)
}

// AddEdge records the transition from -sym-> to, registering both endpoints
// and the symbol. Adding an existing edge again has no effect.
func (a *Automaton) AddEdge(from, to State, sym Symbol) {
	a.states.Add(from, to)
	a.alphabet.Add(sym)
	bySym, ok := a.transitions[from]
	if !ok {
		bySym = make(map[Symbol]*treeset.Set)
		a.transitions[from] = bySym
	}
	targets, ok := bySym[sym]
	if !ok {
		targets = treeset.NewWith(stateComparator)
		bySym[sym] = targets
	}
	if targets.Contains(to) {
		return
	}
	targets.Add(to)
	a.edges = append(a.edges, Edge{From: from, To: to, Symbol: sym})
}

func (a *Automaton) SetInitial(s State) {
	a.initial = s
	a.states.Add(s)
}

func (a *Automaton) AddAccepting(s State) {
	a.accepting.Add(s)
	a.states.Add(s)
}

// Next returns the targets of s under sym in ascending order.
func (a *Automaton) Next(s State, sym Symbol) []State {
	targets, ok := a.transitions[s][sym]
	if !ok {
		return nil
	}
	return toStates(targets.Values())
}

// NextFromSet returns the union of Next over every state in set.
func (a *Automaton) NextFromSet(set []State, sym Symbol) []State {
	union := treeset.NewWith(stateComparator)
	for _, s := range set {
		if targets, ok := a.transitions[s][sym]; ok {
			union.Add(targets.Values()...)
		}
	}
	return toStates(union.Values())
}

func (a *Automaton) States() []State { return toStates(a.states.Values()) }

func (a *Automaton) NumStates() int { return a.states.Size() }

func (a *Automaton) HasState(s State) bool { return a.states.Contains(s) }

// Alphabet returns every symbol labelling an edge, Epsilon included, ascending
// (so Epsilon comes first when present).
func (a *Automaton) Alphabet() []Symbol {
	values := a.alphabet.Values()
	out := make([]Symbol, len(values))
	for i, v := range values {
		out[i] = v.(Symbol)
	}
	return out
}

// Symbols is Alphabet without Epsilon.
func (a *Automaton) Symbols() []Symbol {
	all := a.Alphabet()
	out := all[:0:0]
	for _, sym := range all {
		if sym != Epsilon {
			out = append(out, sym)
		}
	}
	return out
}

func (a *Automaton) Accepting() []State { return toStates(a.accepting.Values()) }

func (a *Automaton) IsAccepting(s State) bool { return a.accepting.Contains(s) }

// Initial returns the initial state, or NoState when none was set.
func (a *Automaton) Initial() State { return a.initial }

// Edges returns the edge list in insertion order.
func (a *Automaton) Edges() []Edge {
	out := make([]Edge, len(a.edges))
	copy(out, a.edges)
	return out
}

// IsDeterministic reports whether the automaton has no epsilon edges and at
// most one target per state and symbol.
func (a *Automaton) IsDeterministic() bool {
	for _, bySym := range a.transitions {
		for sym, targets := range bySym {
			if sym == Epsilon || targets.Size() > 1 {
				return false
			}
		}
	}
	return true
}

func (a *Automaton) String() string {
	return fmt.Sprintf("automaton{states: %d, edges: %d, initial: %d, accepting: %v}",
		a.NumStates(), len(a.edges), a.initial, a.Accepting())
}

func toStates(values []interface{}) []State {
	out := make([]State, len(values))
	for i, v := range values {
		out[i] = v.(State)
	}
	return out
}
