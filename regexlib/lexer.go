package regexlib

import (
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"regexdfa/automaton"
)

type tokenType int

const (
	tOperand tokenType = iota // literal symbol
	tUnion                    // |
	tConcat                   // implicit, inserted by the parser
	tStar                     // *
	tPlus                     // +
	tQMark                    // ?
	tLParen                   // (
	tRParen                   // )
)

var operatorTypes = map[string]tokenType{
	"|": tUnion,
	"*": tStar,
	"+": tPlus,
	"?": tQMark,
	"(": tLParen,
	")": tRParen,
}

type token struct {
	typ tokenType
	sym automaton.Symbol // for tOperand
	pos int              // byte offset in the pattern
}

// Rules are tried in order. A backslash at the very end of the pattern does
// not match Escaped and falls through to Char as a literal.
var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Escaped", Pattern: `\\(?s:.)`},
	{Name: "Operator", Pattern: `[|*+?()]`},
	{Name: "Char", Pattern: `(?s:.)`},
})

var (
	escapedType  = patternLexer.Symbols()["Escaped"]
	operatorType = patternLexer.Symbols()["Operator"]
)

// tokenize splits pattern into operand and operator tokens. Escaped
// characters are always operands.
func tokenize(pattern string) ([]token, error) {
	lex, err := patternLexer.LexString("", pattern)
	if err != nil {
		return nil, errors.Wrap(err, "tokenize")
	}
	var out []token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, parseErrorf(pattern, -1, "%v", err)
		}
		if tok.EOF() {
			return out, nil
		}
		switch tok.Type {
		case escapedType:
			r, _ := utf8.DecodeRuneInString(tok.Value[1:])
			out = append(out, token{typ: tOperand, sym: automaton.Symbol(r), pos: tok.Pos.Offset})
		case operatorType:
			out = append(out, token{typ: operatorTypes[tok.Value], pos: tok.Pos.Offset})
		default:
			r, _ := utf8.DecodeRuneInString(tok.Value)
			out = append(out, token{typ: tOperand, sym: automaton.Symbol(r), pos: tok.Pos.Offset})
		}
	}
}

// Operands returns the literal symbols of pattern in order of appearance,
// escaped operators included.
func Operands(pattern string) ([]automaton.Symbol, error) {
	toks, err := tokenize(pattern)
	if err != nil {
		return nil, err
	}
	var out []automaton.Symbol
	for _, t := range toks {
		if t.typ == tOperand {
			out = append(out, t.sym)
		}
	}
	return out, nil
}
