package regexlib

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/pkg/errors"

	"regexdfa/automaton"
)

// NFABuilder runs Thompson's construction. The state counter lives on the
// builder and is reset by every Build call; use one builder per goroutine.
type NFABuilder struct {
	Options ParseOptions

	stateID automaton.State
}

func (b *NFABuilder) newState() automaton.State {
	b.stateID++
	return b.stateID - 1
}

// Build parses pattern and returns its NFA with states numbered 0..n-1.
func (b *NFABuilder) Build(pattern string) (*automaton.Automaton, error) {
	if pattern == "" {
		return nil, parseErrorf(pattern, -1, "empty pattern")
	}
	postfix, err := ToPostfixWith(pattern, b.Options)
	if err != nil {
		return nil, err
	}
	return b.BuildPostfix(postfix)
}

// BuildPostfix combines fragments for an already converted pattern.
func (b *NFABuilder) BuildPostfix(postfix Postfix) (*automaton.Automaton, error) {
	b.stateID = 0
	pattern := postfix.pattern
	if postfix.Len() == 0 {
		return nil, parseErrorf(pattern, -1, "pattern has no operands")
	}

	stack := arraystack.New()
	pop := func(t token) (*automaton.Automaton, error) {
		v, ok := stack.Pop()
		if !ok {
			return nil, parseErrorf(pattern, t.pos, "operator %q is missing an operand", opName(t.typ))
		}
		return v.(*automaton.Automaton), nil
	}

	for _, t := range postfix.tokens {
		switch t.typ {
		case tOperand:
			stack.Push(b.basic(t.sym))
		case tUnion, tConcat:
			right, err := pop(t)
			if err != nil {
				return nil, err
			}
			left, err := pop(t)
			if err != nil {
				return nil, err
			}
			if t.typ == tUnion {
				stack.Push(b.union(left, right))
			} else {
				stack.Push(b.concat(left, right))
			}
		case tStar, tPlus, tQMark:
			operand, err := pop(t)
			if err != nil {
				return nil, err
			}
			stack.Push(b.repeat(t.typ, operand))
		default:
			return nil, errors.Wrapf(ErrConstructionFault, "unexpected token type %d in postfix %q", t.typ, postfix)
		}
	}

	if stack.Size() != 1 {
		return nil, errors.Wrapf(ErrConstructionFault, "%d fragments left after postfix %q", stack.Size(), postfix)
	}
	v, _ := stack.Pop()
	return compact(v.(*automaton.Automaton)), nil
}

func opName(t tokenType) string {
	switch t {
	case tUnion:
		return "|"
	case tConcat:
		return "concatenation"
	case tStar:
		return "*"
	case tPlus:
		return "+"
	case tQMark:
		return "?"
	}
	return "?"
}

// basic: start -sym-> end
func (b *NFABuilder) basic(sym automaton.Symbol) *automaton.Automaton {
	nfa := automaton.New()
	start, end := b.newState(), b.newState()
	nfa.SetInitial(start)
	nfa.AddAccepting(end)
	nfa.AddEdge(start, end, sym)
	return nfa
}

// absorb copies frag's states and edges into dst under fresh identifiers and
// returns the renumbering. Accepting markers are not copied; frag must not be
// used afterwards.
func (b *NFABuilder) absorb(dst, frag *automaton.Automaton) map[automaton.State]automaton.State {
	remap := make(map[automaton.State]automaton.State, frag.NumStates())
	for _, s := range frag.States() {
		n := b.newState()
		remap[s] = n
		dst.AddState(n)
	}
	for _, e := range frag.Edges() {
		dst.AddEdge(remap[e.From], remap[e.To], e.Symbol)
	}
	return remap
}

func (b *NFABuilder) union(left, right *automaton.Automaton) *automaton.Automaton {
	nfa := automaton.New()
	start, end := b.newState(), b.newState()
	nfa.SetInitial(start)
	nfa.AddAccepting(end)

	for _, frag := range []*automaton.Automaton{left, right} {
		remap := b.absorb(nfa, frag)
		nfa.AddEdge(start, remap[frag.Initial()], automaton.Epsilon)
		for _, acc := range frag.Accepting() {
			nfa.AddEdge(remap[acc], end, automaton.Epsilon)
		}
	}
	return nfa
}

func (b *NFABuilder) concat(left, right *automaton.Automaton) *automaton.Automaton {
	nfa := automaton.New()
	lmap := b.absorb(nfa, left)
	rmap := b.absorb(nfa, right)

	nfa.SetInitial(lmap[left.Initial()])
	for _, acc := range left.Accepting() {
		nfa.AddEdge(lmap[acc], rmap[right.Initial()], automaton.Epsilon)
	}
	for _, acc := range right.Accepting() {
		nfa.AddAccepting(rmap[acc])
	}
	return nfa
}

// repeat builds star, plus and optional. All three get a fresh start/end
// pair; star and optional may bypass the operand, star and plus loop back.
func (b *NFABuilder) repeat(typ tokenType, frag *automaton.Automaton) *automaton.Automaton {
	nfa := automaton.New()
	start, end := b.newState(), b.newState()
	nfa.SetInitial(start)
	nfa.AddAccepting(end)

	remap := b.absorb(nfa, frag)
	inner := remap[frag.Initial()]

	if typ != tPlus {
		nfa.AddEdge(start, end, automaton.Epsilon)
	}
	nfa.AddEdge(start, inner, automaton.Epsilon)
	for _, acc := range frag.Accepting() {
		nfa.AddEdge(remap[acc], end, automaton.Epsilon)
		if typ != tQMark {
			nfa.AddEdge(remap[acc], inner, automaton.Epsilon)
		}
	}
	return nfa
}

// compact renumbers states to 0..n-1 in ascending order of their old ids.
func compact(nfa *automaton.Automaton) *automaton.Automaton {
	out := automaton.New()
	remap := make(map[automaton.State]automaton.State, nfa.NumStates())
	for i, s := range nfa.States() {
		remap[s] = automaton.State(i)
		out.AddState(automaton.State(i))
	}
	for _, e := range nfa.Edges() {
		out.AddEdge(remap[e.From], remap[e.To], e.Symbol)
	}
	out.SetInitial(remap[nfa.Initial()])
	for _, acc := range nfa.Accepting() {
		out.AddAccepting(remap[acc])
	}
	return out
}
