package regexlib

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/pkg/errors"

	"regexdfa/automaton"
)

// DFABuilder runs the subset construction. Identifiers and the state-set
// index are reset by every Build call.
type DFABuilder struct {
	stateID automaton.State
	index   map[string]automaton.State
	subsets [][]automaton.State
}

// Build determinizes nfa over its own alphabet, epsilon excluded.
func (b *DFABuilder) Build(nfa *automaton.Automaton) (*automaton.Automaton, error) {
	if nfa == nil {
		return nil, errors.Wrap(ErrConstructionFault, "subset construction on nil NFA")
	}
	return b.BuildOver(nfa, nfa.Symbols())
}

// BuildOver determinizes nfa over alphabet. Symbols with no successor from a
// state set produce no edge, so the result may be partial.
func (b *DFABuilder) BuildOver(nfa *automaton.Automaton, alphabet []automaton.Symbol) (*automaton.Automaton, error) {
	if nfa == nil {
		return nil, errors.Wrap(ErrConstructionFault, "subset construction on nil NFA")
	}
	if nfa.Initial() == automaton.NoState {
		return nil, errors.Wrap(ErrConstructionFault, "NFA has no initial state")
	}
	b.stateID = 0
	b.index = make(map[string]automaton.State)
	b.subsets = nil
	defer func() { b.index = nil }()

	dfa := automaton.New()
	start := bitset.New(universe(nfa))
	start.Set(uint(nfa.Initial()))
	start = epsilonClosure(nfa, start)

	startID, _ := b.stateFor(start)
	dfa.SetInitial(startID)
	if containsAccepting(nfa, start) {
		dfa.AddAccepting(startID)
	}

	queue := linkedlistqueue.New()
	queue.Enqueue(start)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		cur := v.(*bitset.BitSet)
		curID := b.index[setKey(cur)]
		for _, sym := range alphabet {
			if sym == automaton.Epsilon {
				continue
			}
			next := move(nfa, cur, sym)
			if next.None() {
				continue
			}
			next = epsilonClosure(nfa, next)
			id, fresh := b.stateFor(next)
			if fresh {
				dfa.AddState(id)
				if containsAccepting(nfa, next) {
					dfa.AddAccepting(id)
				}
				queue.Enqueue(next)
			}
			dfa.AddEdge(curID, id, sym)
		}
	}
	return dfa, nil
}

// Subsets returns, for the last Build, the NFA states behind each DFA state,
// indexed by DFA state.
func (b *DFABuilder) Subsets() [][]automaton.State { return b.subsets }

// stateFor returns the DFA state for set, allocating one the first time the
// set is seen. Sets are compared by members, not identity.
func (b *DFABuilder) stateFor(set *bitset.BitSet) (automaton.State, bool) {
	k := setKey(set)
	if id, ok := b.index[k]; ok {
		return id, false
	}
	id := b.stateID
	b.stateID++
	b.index[k] = id
	b.subsets = append(b.subsets, members(set))
	return id, true
}

func universe(nfa *automaton.Automaton) uint {
	states := nfa.States()
	if len(states) == 0 {
		return 1
	}
	return uint(states[len(states)-1]) + 1
}

func setKey(set *bitset.BitSet) string {
	buf := make([]byte, 0, 2*set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		buf = binary.AppendUvarint(buf, uint64(i))
	}
	return string(buf)
}

func members(set *bitset.BitSet) []automaton.State {
	out := make([]automaton.State, 0, set.Count())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		out = append(out, automaton.State(i))
	}
	return out
}

func containsAccepting(nfa *automaton.Automaton, set *bitset.BitSet) bool {
	for _, acc := range nfa.Accepting() {
		if set.Test(uint(acc)) {
			return true
		}
	}
	return false
}

func epsilonClosure(nfa *automaton.Automaton, set *bitset.BitSet) *bitset.BitSet {
	closure := set.Clone()
	work := members(set)
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, t := range nfa.Next(s, automaton.Epsilon) {
			if !closure.Test(uint(t)) {
				closure.Set(uint(t))
				work = append(work, t)
			}
		}
	}
	return closure
}

func move(nfa *automaton.Automaton, set *bitset.BitSet, sym automaton.Symbol) *bitset.BitSet {
	out := bitset.New(set.Len())
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		for _, t := range nfa.Next(automaton.State(i), sym) {
			out.Set(uint(t))
		}
	}
	return out
}

// EpsilonClosure returns every state reachable from states through epsilon
// edges alone, states included, in ascending order.
func EpsilonClosure(nfa *automaton.Automaton, states []automaton.State) []automaton.State {
	set := bitset.New(universe(nfa))
	for _, s := range states {
		set.Set(uint(s))
	}
	return members(epsilonClosure(nfa, set))
}
