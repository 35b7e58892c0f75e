package filter

import (
	"fmt"
	"strings"

	plop "github.com/rmera/plopmetrics"
)

// Error is the error type for expressions that can't be compiled or evaluated.
// It fulfills plop.Error, and unwraps to plop.ErrUnsupportedOperator or
// plop.ErrExpressionSyntax.
type Error struct {
	message string
	expr    string
	pos     int //byte offset in expr, or -1 if it doesn't apply
	deco    []string
	kind    error
}

func newSyntaxError(expr string, pos int, format string, v ...any) *Error {
	return &Error{message: fmt.Sprintf(format, v...), expr: expr, pos: pos, kind: plop.ErrExpressionSyntax}
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.Error())
	if len(err.deco) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(err.deco, " < "))
	}
	fmt.Fprintf(&b, ": %s", err.message)
	if err.pos >= 0 {
		fmt.Fprintf(&b, " at offset %d in: %s", err.pos, err.expr)
	} else if err.expr != "" {
		fmt.Fprintf(&b, " in: %s", err.expr)
	}
	return b.String()
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Pos returns the offset in the expression where the error was found, or -1.
func (err *Error) Pos() int { return err.pos }

func (err *Error) Unwrap() error { return err.kind }

func errDecorate(err error, caller string) error {
	if e, ok := err.(plop.Error); ok {
		e.Decorate(caller)
	}
	return err
}
