/*
 * interfaces.go, part of plopmetrics.
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

import "errors"

// Looker is anything that can give the numeric value of a normalized
// metadata key. *Fields and *Record implement it.
type Looker interface {
	//Lookup returns the value for key, or an error wrapping
	//ErrFieldNotFound if the key is absent.
	Lookup(key string) (float64, error)
}

//Errors

// Error is the interface for errors that all packages in this module implement. The Decorate method allows to add and retrieve info from the
// error, without changing its type or wrapping it around something else.
type Error interface {
	Error() string
	//Decorate adds the name of a caller (or "FunctionName: extra info") to the error and returns the
	//whole decoration slice. An empty string just returns the current slice.
	Decorate(string) []string
}

// FileError is an Error associated to a file.
type FileError interface {
	Error
	Critical() bool
	FileName() string
}

// Error kinds. Every error returned by this module wraps one of these, so
// they can be checked with errors.Is.
var (
	// ErrFileAccess: a directory or file could not be opened, read or written.
	ErrFileAccess = errors.New("file access error")

	// ErrUnsupportedOperator: a filter expression uses '>=' or '<='.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrExpressionSyntax: a filter expression is malformed, or can't be evaluated.
	ErrExpressionSyntax = errors.New("expression syntax error")

	// ErrFieldNotFound: a filter expression references a field absent from a record.
	ErrFieldNotFound = errors.New("field not found")
)
