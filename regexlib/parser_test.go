package regexlib

import (
	"testing"

	"github.com/pkg/errors"
)

func TestToPostfix(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
	}{
		{"a", "a"},
		{"ab", "ab."},
		{"a|b", "ab|"},
		{"a|b|c", "ab|c|"},
		{"ab|cd", "ab.cd.|"},
		{"a*b", "a*b."},
		{"ab*", "ab*."},
		{"a+?", "a+?"},
		{"a(b|c)", "abc|."},
		{"(a|b)*abb", "ab|*a.b.b."},
		{"(a)(b)", "ab."},
		{`a\*`, `a\*.`},
		{`\(`, `\(`},
		{"a.b", `a\..b.`},
		{`a\`, `a\\.`},
		{"ж|я", "жя|"},
		// unmatched parentheses are tolerated by default
		{"a)b", "ab."},
		{"(ab", "ab."},
		{")a", "a"},
	}
	for _, tt := range tests {
		got, err := ToPostfix(tt.pattern)
		if err != nil {
			t.Errorf("ToPostfix(%q): %v", tt.pattern, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ToPostfix(%q) = %q, want %q", tt.pattern, got.String(), tt.want)
		}
	}
}

func TestToPostfixEmpty(t *testing.T) {
	got, err := ToPostfix("")
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 0 {
		t.Fatalf("empty pattern gave %q", got)
	}
}

func TestToPostfixQuantifierErrors(t *testing.T) {
	tests := []struct {
		pattern string
		pos     int
	}{
		{"*", 0},
		{"a|*", 2},
		{"(*a)", 1},
		{"+a", 0},
	}
	for _, tt := range tests {
		_, err := ToPostfix(tt.pattern)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ToPostfix(%q) err = %v, want ParseError", tt.pattern, err)
			continue
		}
		if pe.Pos != tt.pos {
			t.Errorf("ToPostfix(%q) error at %d, want %d", tt.pattern, pe.Pos, tt.pos)
		}
	}
}

func TestToPostfixStrictParens(t *testing.T) {
	strict := ParseOptions{StrictParens: true}
	tests := []struct {
		pattern string
		pos     int
	}{
		{"a)", 1},
		{"(a", 0},
		{"(a))", 3},
	}
	for _, tt := range tests {
		_, err := ToPostfixWith(tt.pattern, strict)
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Pos != tt.pos {
			t.Errorf("strict ToPostfix(%q) = %v, want ParseError at %d", tt.pattern, err, tt.pos)
		}
	}
	if _, err := ToPostfixWith("(a|b)*", strict); err != nil {
		t.Fatalf("balanced pattern rejected: %v", err)
	}
}
