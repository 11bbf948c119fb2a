// Package render prints automata as transition tables and Graphviz graphs.
package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"regexdfa/automaton"
	"regexdfa/regexlib"
)

// DisplayAlphabet is the automaton's alphabet plus every literal of pattern.
// A DFA can lose a symbol that never produced a transition; the pattern keeps
// it visible. Epsilon is kept only when withEpsilon is set and comes first.
func DisplayAlphabet(a *automaton.Automaton, pattern string, withEpsilon bool) []automaton.Symbol {
	seen := make(map[automaton.Symbol]bool)
	for _, sym := range a.Alphabet() {
		seen[sym] = true
	}
	if operands, err := regexlib.Operands(pattern); err == nil {
		for _, sym := range operands {
			seen[sym] = true
		}
	}
	out := make([]automaton.Symbol, 0, len(seen))
	for sym := range seen {
		if sym == automaton.Epsilon && !withEpsilon {
			continue
		}
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TableOptions controls Table output.
type TableOptions struct {
	Title    string
	Alphabet []automaton.Symbol
	// Labels, when set, adds a column naming what each state stands for,
	// such as the NFA states behind a DFA state.
	Labels map[automaton.State]string
}

// Table writes one row per state: targets per symbol, then accept and
// initial status.
func Table(w io.Writer, a *automaton.Automaton, opts TableOptions) error {
	var buf bytes.Buffer
	if opts.Title != "" {
		fmt.Fprintf(&buf, "%s:\n", opts.Title)
	}

	header := []string{"State"}
	if opts.Labels != nil {
		header = append(header, "Set")
	}
	for _, sym := range opts.Alphabet {
		header = append(header, sym.String())
	}
	header = append(header, "Accept?")

	table := tablewriter.NewWriter(&buf)
	// the header goes in as a plain row so symbol columns keep their case
	if err := table.Append(header); err != nil {
		return errors.Wrap(err, "table header")
	}
	for _, s := range a.States() {
		row := []string{strconv.Itoa(int(s))}
		if opts.Labels != nil {
			row = append(row, opts.Labels[s])
		}
		for _, sym := range opts.Alphabet {
			row = append(row, joinStates(a.Next(s, sym)))
		}
		status := "No"
		if a.IsAccepting(s) {
			status = "Yes"
		}
		if s == a.Initial() {
			status += " (Initial)"
		}
		row = append(row, status)
		if err := table.Append(row); err != nil {
			return errors.Wrapf(err, "table row for state %d", s)
		}
	}
	if err := table.Render(); err != nil {
		return errors.Wrap(err, "render table")
	}
	buf.WriteByte('\n')

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(err, "write table")
	}
	return nil
}

// SubsetLabels formats subsets, indexed by DFA state, as "{0,1,2}".
func SubsetLabels(subsets [][]automaton.State) map[automaton.State]string {
	labels := make(map[automaton.State]string, len(subsets))
	for i, set := range subsets {
		if len(set) == 0 {
			labels[automaton.State(i)] = "{}"
			continue
		}
		labels[automaton.State(i)] = "{" + joinStates(set) + "}"
	}
	return labels
}

func joinStates(states []automaton.State) string {
	if len(states) == 0 {
		return "-"
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = strconv.Itoa(int(s))
	}
	return strings.Join(parts, ",")
}
