package regexlib

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrConstructionFault marks a broken internal invariant. It signals a defect,
// not bad input.
var ErrConstructionFault = errors.New("automaton construction fault")

// ParseError reports a malformed pattern. Pos is a byte offset into Pattern,
// or -1 when the error is not tied to one position.
type ParseError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("parse %q: %s", e.Pattern, e.Msg)
	}
	return fmt.Sprintf("parse %q at offset %d: %s", e.Pattern, e.Pos, e.Msg)
}

func parseErrorf(pattern string, pos int, format string, args ...interface{}) error {
	return &ParseError{Pattern: pattern, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
