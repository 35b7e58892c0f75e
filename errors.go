/*
 * errors.go, part of plopmetrics.
 *
 * Copyright 2026 The plopmetrics authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package plop

import (
	"fmt"
	"strings"
)

// PlopError is the general structure for errors in this package. It fulfills Error and FileError,
// and unwraps to its kind (one of the Err* variables) and, if present, to the underlying error.
type PlopError struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
	kind     error
	err      error
}

// NewError returns an error of the given kind (ErrFileAccess, ErrFieldNotFound...).
// filename can be empty. cause can be nil.
func NewError(kind error, message, filename string, cause error, caller ...string) *PlopError {
	e := &PlopError{message: message, filename: filename, kind: kind, err: cause, critical: true}
	e.deco = append(e.deco, caller...)
	return e
}

func (err *PlopError) Error() string {
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
func (err *PlopError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file to which the error is associated, if any.
func (err *PlopError) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err *PlopError) Critical() bool { return err.critical }

// Unwrap returns the kind of the error and the underlying error, if any.
func (err *PlopError) Unwrap() []error {
	if err.err == nil {
		return []error{err.kind}
	}
	return []error{err.kind, err.err}
}

// errDecorate decorates err with the caller's name if err implements Error,
// and returns it. Other errors are returned unchanged. Nil stays nil.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		e.Decorate(caller)
	}
	return err
}

// fileAccessError is a shortcut for the most common error of this package.
func fileAccessError(filename, message string, cause error, caller string) *PlopError {
	return NewError(ErrFileAccess, message, filename, cause, caller)
}
