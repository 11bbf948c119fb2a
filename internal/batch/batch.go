// Package batch reads pattern list files.
//
// One entry per pattern, optionally named, '#' starts a comment:
//
//	# classic example
//	abb = "(a|b)*abb"
//	`a\*`
//
// Double-quoted patterns use Go escapes; backquoted patterns are raw.
package batch

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

type File struct {
	Entries []*Entry `parser:"@@*"`
}

type Entry struct {
	Pos lexer.Position

	Name    string `parser:"(@Ident '=')?"`
	Pattern string `parser:"@(String | RawString)"`
}

// Label names the entry in diagnostics: its name, or its line number.
func (e *Entry) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("line %d", e.Pos.Line)
}

var batchLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\\n])*"`},
	{Name: "RawString", Pattern: "`[^`]*`"},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_\-]*`},
	{Name: "Punct", Pattern: `=`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// stripBackquotes keeps the body of a raw pattern byte for byte. Unquote
// would reject a backslash inside backquotes.
func stripBackquotes(t lexer.Token) (lexer.Token, error) {
	t.Value = t.Value[1 : len(t.Value)-1]
	return t, nil
}

var parser = participle.MustBuild[File](
	participle.Lexer(batchLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.Map(stripBackquotes, "RawString"),
)

// Parse reads a pattern list from src; filename only appears in errors.
func Parse(filename, src string) (*File, error) {
	f, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, errors.Wrap(err, "parse pattern list")
	}
	return f, nil
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return Parse(path, string(data))
}
