package regexlib

import (
	"sort"

	"regexdfa/automaton"
)

// accepts simulates a on input. Works for NFAs and DFAs alike.
func accepts(a *automaton.Automaton, input string) bool {
	cur := EpsilonClosure(a, []automaton.State{a.Initial()})
	for _, r := range input {
		next := a.NextFromSet(cur, automaton.Symbol(r))
		if len(next) == 0 {
			return false
		}
		cur = EpsilonClosure(a, next)
	}
	for _, s := range cur {
		if a.IsAccepting(s) {
			return true
		}
	}
	return false
}

// words lists every string over alphabet up to maxLen runes, "" included.
func words(alphabet string, maxLen int) []string {
	out := []string{""}
	level := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, w := range level {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		level = next
	}
	return out
}

// isomorphic walks both DFAs from their initial states in lockstep.
func isomorphic(a, b *automaton.Automaton) bool {
	if a.NumStates() != b.NumStates() {
		return false
	}
	symA, symB := a.Symbols(), b.Symbols()
	if len(symA) != len(symB) {
		return false
	}
	for i := range symA {
		if symA[i] != symB[i] {
			return false
		}
	}
	pair := map[automaton.State]automaton.State{a.Initial(): b.Initial()}
	work := []automaton.State{a.Initial()}
	for len(work) > 0 {
		s := work[0]
		work = work[1:]
		t := pair[s]
		if a.IsAccepting(s) != b.IsAccepting(t) {
			return false
		}
		for _, sym := range symA {
			na, nb := a.Next(s, sym), b.Next(t, sym)
			if len(na) != len(nb) {
				return false
			}
			if len(na) == 0 {
				continue
			}
			if prev, seen := pair[na[0]]; seen {
				if prev != nb[0] {
					return false
				}
				continue
			}
			pair[na[0]] = nb[0]
			work = append(work, na[0])
		}
	}
	return true
}

func sortedEdges(a *automaton.Automaton) []automaton.Edge {
	edges := a.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		if edges[i].Symbol != edges[j].Symbol {
			return edges[i].Symbol < edges[j].Symbol
		}
		return edges[i].To < edges[j].To
	})
	return edges
}
