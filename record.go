/*
 * record.go, part of plopmetrics.
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

// LineRange is an inclusive, 0-based range of lines in a file.
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines in the range.
func (L LineRange) Len() int {
	return L.End - L.Start + 1
}

func (L LineRange) String() string {
	return fmt.Sprintf("[%d, %d]", L.Start, L.End)
}

// Fields is an ordered map from normalized metadata keys to their values.
// Keys keep the position of their first appearance. The zero value is
// ready to use.
type Fields struct {
	keys []string
	vals map[string]float64
}

// NewFields returns an empty Fields.
func NewFields() *Fields {
	return &Fields{vals: make(map[string]float64)}
}

// Set sets the value for key. If key is already present its value is
// replaced but it keeps its position.
func (F *Fields) Set(key string, v float64) {
	if F.vals == nil {
		F.vals = make(map[string]float64)
	}
	if _, ok := F.vals[key]; !ok {
		F.keys = append(F.keys, key)
	}
	F.vals[key] = v
}

// Get returns the value for key and whether it was present.
func (F *Fields) Get(key string) (float64, bool) {
	if F == nil {
		return 0, false
	}
	v, ok := F.vals[key]
	return v, ok
}

// Lookup returns the value for key, or an error wrapping ErrFieldNotFound.
func (F *Fields) Lookup(key string) (float64, error) {
	v, ok := F.Get(key)
	if !ok {
		return 0, NewError(ErrFieldNotFound, fmt.Sprintf("no field '%s'", key), "", nil, "Lookup")
	}
	return v, nil
}

// Keys returns a copy of the keys, in order.
func (F *Fields) Keys() []string {
	if F == nil {
		return nil
	}
	ret := make([]string, len(F.keys))
	copy(ret, F.keys)
	return ret
}

// Len returns the number of fields.
func (F *Fields) Len() int {
	if F == nil {
		return 0
	}
	return len(F.keys)
}

func (F *Fields) String() string {
	t := make([]string, 0, F.Len())
	for _, k := range F.Keys() {
		t = append(t, fmt.Sprintf("%s:%s", k, formatValue(F.vals[k])))
	}
	return "{" + strings.Join(t, " ") + "}"
}

// Record is the metadata of one model in a trajectory, plus the
// range of lines that hold the model itself in the trajectory file.
type Record struct {
	File   string
	Body   LineRange
	Fields *Fields
}

// newRecord returns a record for file with no fields. The body is
// invalid (Start > End) until the first body line is added.
func newRecord(file string) *Record {
	return &Record{File: file, Body: LineRange{Start: 0, End: -1}, Fields: NewFields()}
}

// addBody extends the body range with line i. Only the first and last
// lines are kept.
func (R *Record) addBody(i int) {
	if R.Body.End < R.Body.Start {
		R.Body.Start = i
	}
	R.Body.End = i
}

// hasBody returns true if at least one body line was added to the record.
func (R *Record) hasBody() bool {
	return R.Body.End >= R.Body.Start
}

// Lookup returns the value of the given field of the record.
func (R *Record) Lookup(key string) (float64, error) {
	v, err := R.Fields.Lookup(key)
	if err != nil {
		err.(*PlopError).filename = R.File
	}
	return v, err
}

func (R *Record) String() string {
	return fmt.Sprintf("%s %s %s", R.File, R.Body, R.Fields)
}

// Selection is an ordered subset of records. It shares the records
// with the slice it was obtained from.
type Selection []*Record

// Len returns the number of records in the selection.
func (S Selection) Len() int {
	return len(S)
}
