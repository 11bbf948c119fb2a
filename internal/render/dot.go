package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"regexdfa/automaton"
)

// DOT prints a Graphviz digraph of a. Parallel edges between the same pair of
// states are merged into one edge with a comma-separated label.
func DOT(w io.Writer, name string, a *automaton.Automaton) error {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", name)
	fmt.Fprintln(&b, "    rankdir=LR;")

	for _, s := range a.States() {
		shape := "circle"
		if a.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    q%d [shape=%s];\n", s, shape)
	}

	type pair struct{ from, to automaton.State }
	labels := map[pair][]string{}
	var order []pair
	for _, e := range a.Edges() {
		p := pair{e.From, e.To}
		if _, ok := labels[p]; !ok {
			order = append(order, p)
		}
		labels[p] = append(labels[p], escapeLabel(e.Symbol.String()))
	}
	for _, p := range order {
		fmt.Fprintf(&b, "    q%d -> q%d [label=\"%s\"];\n", p.from, p.to, strings.Join(labels[p], ","))
	}

	if a.Initial() != automaton.NoState {
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> q%d;\n", a.Initial())
	}
	fmt.Fprintln(&b, "}")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrapf(err, "write graph %s", name)
	}
	return nil
}

func escapeLabel(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
