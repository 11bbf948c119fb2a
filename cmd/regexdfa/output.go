package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"regexdfa/automaton"
	"regexdfa/internal/render"
	"regexdfa/regexlib"
)

type stage int

const (
	stageNFA stage = 1 << iota
	stageDFA
	stageMin

	stageAll = stageNFA | stageDFA | stageMin
)

// output decides which automata of a compile result get printed and how.
type output struct {
	stages stage
	dot    bool
	sets   bool
}

func newOutput(stageName, format string, sets bool) (*output, error) {
	o := &output{sets: sets}
	switch stageName {
	case "nfa":
		o.stages = stageNFA
	case "dfa":
		o.stages = stageDFA
	case "min":
		o.stages = stageMin
	case "all", "":
		o.stages = stageAll
	default:
		return nil, errors.Errorf("unknown stage %q (want nfa, dfa, min or all)", stageName)
	}
	switch format {
	case "table", "":
	case "dot":
		o.dot = true
	default:
		return nil, errors.Errorf("unknown format %q (want table or dot)", format)
	}
	return o, nil
}

func (o *output) print(w io.Writer, res *regexlib.Result) error {
	if o.stages&stageNFA != 0 && !o.dot {
		if _, err := fmt.Fprintf(w, "Postfix: %s\n\n", res.Postfix); err != nil {
			return errors.Wrap(err, "write postfix")
		}
	}
	if o.stages&stageNFA != 0 {
		if err := o.emit(w, "nfa", res.NFA, render.TableOptions{
			Title:    "NFA",
			Alphabet: render.DisplayAlphabet(res.NFA, res.Pattern, true),
		}); err != nil {
			return err
		}
	}
	if o.stages&stageDFA != 0 {
		opts := render.TableOptions{
			Title:    "DFA",
			Alphabet: render.DisplayAlphabet(res.DFA, res.Pattern, false),
		}
		if o.sets {
			opts.Labels = render.SubsetLabels(res.Subsets)
		}
		if err := o.emit(w, "dfa", res.DFA, opts); err != nil {
			return err
		}
	}
	if o.stages&stageMin != 0 {
		return o.emit(w, "min", res.MinDFA, render.TableOptions{
			Title:    "Minimized DFA",
			Alphabet: render.DisplayAlphabet(res.MinDFA, res.Pattern, false),
		})
	}
	return nil
}

func (o *output) emit(w io.Writer, name string, a *automaton.Automaton, opts render.TableOptions) error {
	if o.dot {
		return render.DOT(w, name, a)
	}
	return render.Table(w, a, opts)
}
