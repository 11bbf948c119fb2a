package regexlib

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// ParseOptions tunes pattern parsing.
type ParseOptions struct {
	// StrictParens turns unmatched parentheses into a ParseError. By default a
	// stray ')' is ignored and a stray '(' is dropped at the end of input.
	StrictParens bool
}

// Postfix is a pattern rewritten in postfix order with explicit concatenation.
type Postfix struct {
	pattern string
	tokens  []token
}

func (p Postfix) Pattern() string { return p.pattern }

func (p Postfix) Len() int { return len(p.tokens) }

// String renders concatenation as '.' and escapes operand characters that
// would otherwise read as operators.
func (p Postfix) String() string {
	var b strings.Builder
	for _, t := range p.tokens {
		switch t.typ {
		case tOperand:
			if strings.ContainsRune(`|*+?()\.`, rune(t.sym)) {
				b.WriteByte('\\')
			}
			b.WriteRune(rune(t.sym))
		case tConcat:
			b.WriteByte('.')
		case tUnion:
			b.WriteByte('|')
		case tStar:
			b.WriteByte('*')
		case tPlus:
			b.WriteByte('+')
		case tQMark:
			b.WriteByte('?')
		}
	}
	return b.String()
}

func precedence(t tokenType) int {
	switch t {
	case tStar, tPlus, tQMark:
		return 3
	case tConcat:
		return 2
	case tUnion:
		return 1
	default:
		return 0
	}
}

// ToPostfix converts an infix pattern to postfix with default options.
func ToPostfix(pattern string) (Postfix, error) {
	return ToPostfixWith(pattern, ParseOptions{})
}

// ToPostfixWith is a Shunting-Yard pass: one left-to-right scan with an
// operator stack, inserting a concatenation wherever an operand or '(' follows
// an operand, ')' or quantifier.
func ToPostfixWith(pattern string, opts ParseOptions) (Postfix, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return Postfix{}, err
	}

	out := make([]token, 0, 2*len(toks))
	ops := arraystack.New()
	lastWasOperand := false

	// popWhile moves operators of at least prec from the stack to the output,
	// stopping at '('.
	popWhile := func(prec int) {
		for {
			top, ok := ops.Peek()
			if !ok {
				return
			}
			t := top.(token)
			if t.typ == tLParen || precedence(t.typ) < prec {
				return
			}
			ops.Pop()
			out = append(out, t)
		}
	}
	pushConcat := func(pos int) {
		popWhile(precedence(tConcat))
		ops.Push(token{typ: tConcat, pos: pos})
	}

	for _, tok := range toks {
		switch tok.typ {
		case tOperand:
			if lastWasOperand {
				pushConcat(tok.pos)
			}
			out = append(out, tok)
			lastWasOperand = true
		case tLParen:
			if lastWasOperand {
				pushConcat(tok.pos)
			}
			ops.Push(tok)
			lastWasOperand = false
		case tRParen:
			matched := false
			for !ops.Empty() {
				top, _ := ops.Pop()
				t := top.(token)
				if t.typ == tLParen {
					matched = true
					break
				}
				out = append(out, t)
			}
			if matched {
				lastWasOperand = true
			} else if opts.StrictParens {
				return Postfix{}, parseErrorf(pattern, tok.pos, "unmatched ')'")
			}
		case tStar, tPlus, tQMark:
			if !lastWasOperand {
				return Postfix{}, parseErrorf(pattern, tok.pos, "quantifier %q has nothing to repeat",
					pattern[tok.pos:tok.pos+1])
			}
			// postfix and tightest-binding: its operand is already complete
			out = append(out, tok)
		case tUnion:
			popWhile(precedence(tUnion))
			ops.Push(tok)
			lastWasOperand = false
		}
	}

	for !ops.Empty() {
		top, _ := ops.Pop()
		t := top.(token)
		if t.typ == tLParen {
			if opts.StrictParens {
				return Postfix{}, parseErrorf(pattern, t.pos, "unmatched '('")
			}
			continue
		}
		out = append(out, t)
	}
	return Postfix{pattern: pattern, tokens: out}, nil
}
