package regexlib

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"

	"regexdfa/automaton"
)

// MinimizeDFA returns the minimal DFA for the language of dfa by partition
// refinement. Unreachable states are dropped first. A missing transition
// counts as a move into an implicit dead state; states equivalent to it are
// dropped as well, so the result stays partial.
func MinimizeDFA(dfa *automaton.Automaton) (*automaton.Automaton, error) {
	if dfa == nil {
		return nil, errors.Wrap(ErrConstructionFault, "minimize nil DFA")
	}
	if dfa.Initial() == automaton.NoState {
		return nil, errors.Wrap(ErrConstructionFault, "DFA has no initial state")
	}
	if !dfa.IsDeterministic() {
		return nil, errors.Wrap(ErrConstructionFault, "minimize nondeterministic automaton")
	}

	alphabet := dfa.Symbols()
	states := reachable(dfa)
	index := make(map[automaton.State]int, len(states))
	for i, s := range states {
		index[s] = i
	}

	// Row sink is the implicit dead state; every missing transition goes there.
	sink := len(states)
	delta := make([][]int, len(states)+1)
	for i, s := range states {
		row := make([]int, len(alphabet))
		for k, sym := range alphabet {
			if t := dfa.Next(s, sym); len(t) > 0 {
				row[k] = index[t[0]]
			} else {
				row[k] = sink
			}
		}
		delta[i] = row
	}
	delta[sink] = make([]int, len(alphabet))
	for k := range delta[sink] {
		delta[sink][k] = sink
	}

	var acc, non []int
	for i, s := range states {
		if dfa.IsAccepting(s) {
			acc = append(acc, i)
		} else {
			non = append(non, i)
		}
	}
	non = append(non, sink)
	partition := make([][]int, 0, 2)
	if len(acc) != 0 {
		partition = append(partition, acc)
	}
	partition = append(partition, non)

	partition = refine(partition, delta, len(alphabet))

	// Number surviving classes by their smallest member.
	for _, group := range partition {
		sort.Ints(group)
	}
	sort.Slice(partition, func(i, j int) bool { return partition[i][0] < partition[j][0] })

	groupOf := make([]int, len(delta))
	for g, group := range partition {
		for _, s := range group {
			groupOf[s] = g
		}
	}
	dead := groupOf[sink]

	newID := make([]automaton.State, len(partition))
	next := automaton.State(0)
	for g := range partition {
		if g == dead {
			continue
		}
		newID[g] = next
		next++
	}

	result := automaton.New()
	startGroup := groupOf[index[dfa.Initial()]]
	if startGroup == dead {
		// empty language
		result.SetInitial(0)
		return result, nil
	}
	for g, group := range partition {
		if g == dead {
			continue
		}
		result.AddState(newID[g])
		for _, s := range group {
			if s != sink && dfa.IsAccepting(states[s]) {
				result.AddAccepting(newID[g])
				break
			}
		}
		rep := group[0]
		for k, sym := range alphabet {
			if t := groupOf[delta[rep][k]]; t != dead {
				result.AddEdge(newID[g], newID[t], sym)
			}
		}
	}
	result.SetInitial(newID[startGroup])
	return result, nil
}

// refine splits groups until a whole pass changes nothing. In each pass a
// group is split at most once, on the first splitter and symbol its members
// disagree on.
func refine(partition [][]int, delta [][]int, nsym int) [][]int {
	groupOf := make([]int, len(delta))
	for {
		for g, group := range partition {
			for _, s := range group {
				groupOf[s] = g
			}
		}
		changed := false
		next := make([][]int, 0, len(partition)+1)
		for _, group := range partition {
			in, out, ok := splitGroup(group, len(partition), groupOf, delta, nsym)
			if ok {
				next = append(next, in, out)
				changed = true
			} else {
				next = append(next, group)
			}
		}
		partition = next
		if !changed {
			return partition
		}
	}
}

func splitGroup(group []int, ngroups int, groupOf []int, delta [][]int, nsym int) (in, out []int, ok bool) {
	if len(group) < 2 {
		return nil, nil, false
	}
	for splitter := 0; splitter < ngroups; splitter++ {
		for k := 0; k < nsym; k++ {
			in, out = nil, nil
			for _, s := range group {
				if groupOf[delta[s][k]] == splitter {
					in = append(in, s)
				} else {
					out = append(out, s)
				}
			}
			if len(in) > 0 && len(out) > 0 {
				return in, out, true
			}
		}
	}
	return nil, nil, false
}

// reachable lists the states reachable from the initial state, ascending.
func reachable(a *automaton.Automaton) []automaton.State {
	symbols := a.Symbols()
	seen := bitset.New(universe(a))
	seen.Set(uint(a.Initial()))
	work := []automaton.State{a.Initial()}
	for len(work) > 0 {
		s := work[0]
		work = work[1:]
		for _, sym := range symbols {
			for _, t := range a.Next(s, sym) {
				if !seen.Test(uint(t)) {
					seen.Set(uint(t))
					work = append(work, t)
				}
			}
		}
	}
	return members(seen)
}
