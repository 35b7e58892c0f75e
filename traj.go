/*
 * traj.go, part of plopmetrics.
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
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TrajFileWrite writes a single trajectory file, name, with the models in sel. See TrajWrite.
// If name ends in ".zst" or ".gz" the file is compressed.
func TrajFileWrite(name string, sel Selection, opts *Options) error {
	out, err := createFile(name)
	if err != nil {
		return fileAccessError(name, "unable to create file", err, "TrajFileWrite")
	}
	err = TrajWrite(out, sel, opts)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = fileAccessError(name, "unable to close file", err2, "TrajFileWrite")
	}
	return errDecorate(err, "TrajFileWrite")
}

// TrajWrite writes to out, for each record in sel and in that order, one metadata line
// per field ("REMARK key value", with the marker in opts), followed by the lines of the
// model, copied from the record's source file. The original metadata lines are not
// reproduced: keys are normalized and values are written in their shortest form.
func TrajWrite(out io.Writer, sel Selection, opts *Options) error {
	marker := opts.marker()
	w := bufio.NewWriter(out)
	src := new(lineSource)
	defer src.close()
	for _, r := range sel {
		for _, k := range r.Fields.Keys() {
			v, _ := r.Fields.Get(k)
			if _, err := fmt.Fprintln(w, FormatRemark(marker, k, v)); err != nil {
				return fileAccessError("", "unable to write", err, "TrajWrite")
			}
		}
		if err := src.copyRange(w, r.File, r.Body); err != nil {
			return errDecorate(err, "TrajWrite")
		}
	}
	if err := w.Flush(); err != nil {
		return fileAccessError("", "unable to write", err, "TrajWrite")
	}
	return nil
}

// lineSource copies line ranges from trajectory files. It keeps the last file open,
// so consecutive records from the same file are copied in one pass.
type lineSource struct {
	name string
	rc   io.ReadCloser
	buf  *bufio.Reader
	next int //the index of the next line buf will return
}

func (s *lineSource) close() {
	if s.rc != nil {
		s.rc.Close()
	}
	s.rc = nil
	s.buf = nil
	s.name = ""
}

func (s *lineSource) open(name string) error {
	s.close()
	rc, err := openFile(name)
	if err != nil {
		return fileAccessError(name, "unable to open file", err, "copyRange")
	}
	s.rc = rc
	s.buf = bufio.NewReader(rc)
	s.name = name
	s.next = 0
	return nil
}

// copyRange copies the lines in r from the file name to out, verbatim. A newline
// is added after the last line if it lacks one.
func (s *lineSource) copyRange(out io.Writer, name string, r LineRange) error {
	if r.End < r.Start || r.Start < 0 {
		return NewError(ErrFileAccess, fmt.Sprintf("invalid line range %s", r), name, nil, "copyRange")
	}
	if s.rc == nil || s.name != name || s.next > r.Start {
		if err := s.open(name); err != nil {
			return err
		}
	}
	for ; s.next <= r.End; s.next++ {
		line, err := s.buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return fileAccessError(name, "unable to read line", err, "copyRange")
		}
		if line == "" {
			return NewError(ErrFileAccess, fmt.Sprintf("file ended at line %d, range %s", s.next, r), name, nil, "copyRange")
		}
		if s.next < r.Start {
			continue
		}
		if s.next == r.End && !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		if _, err := io.WriteString(out, line); err != nil {
			return fileAccessError("", "unable to write", err, "copyRange")
		}
	}
	return nil
}
