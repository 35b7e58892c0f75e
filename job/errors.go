package job

import (
	"errors"
	"fmt"
	"strings"

	plop "github.com/rmera/plopmetrics"
)

// ErrInvalidJob: a job file, a PLOP_* variable or the job itself is not valid.
var ErrInvalidJob = errors.New("invalid job")

// Error is the error type of this package. It fulfills plop.FileError, and
// unwraps to its kind (ErrInvalidJob or plop.ErrFileAccess) and to the
// underlying error, if any.
type Error struct {
	message  string
	filename string //the job or .env file with problems, if any
	deco     []string
	kind     error
	err      error
}

func newError(kind error, filename string, cause error, caller, format string, v ...any) *Error {
	e := &Error{message: fmt.Sprintf(format, v...), filename: filename, kind: kind, err: cause}
	e.Decorate(caller)
	return e
}

func (err *Error) Error() string {
	var b strings.Builder
	b.WriteString(err.kind.Error())
	if err.filename != "" {
		fmt.Fprintf(&b, " in %s", err.filename)
	}
	if len(err.deco) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(err.deco, " < "))
	}
	b.WriteString(": ")
	b.WriteString(err.message)
	if err.err != nil {
		b.WriteString(": ")
		b.WriteString(err.err.Error())
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

// FileName returns the file to which the error is associated, if any.
func (err *Error) FileName() string { return err.filename }

// Critical is always true, a job with errors can't be run.
func (err *Error) Critical() bool { return true }

func (err *Error) Unwrap() []error {
	if err.err == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.err}
}

func errDecorate(err error, caller string) error {
	if e, ok := err.(plop.Error); ok {
		e.Decorate(caller)
	}
	return err
}
