/*
 * files.go, part of plopmetrics.
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
	"io"
	"log"
	"strings"
)

// Options controls how trajectories are read. A nil *Options is
// valid and gives the defaults.
type Options struct {
	//Marker is the token that starts metadata lines. Default: DefaultMarker.
	Marker string

	//FlushLast, if true, keeps the last record of each file. PLOP-style
	//readers drop it, since a record is only stored when the next metadata
	//block starts, so the default is false.
	FlushLast bool

	//Workers is the number of files ProcessDir reads at the same time.
	//0 or 1 means one file after the other.
	Workers int

	//Logger gets progress messages and notices about skipped lines.
	//If nil, nothing is logged.
	Logger *log.Logger
}

func (O *Options) marker() string {
	if O == nil || O.Marker == "" {
		return DefaultMarker
	}
	return O.Marker
}

func (O *Options) flushLast() bool {
	return O != nil && O.FlushLast
}

func (O *Options) workers() int {
	if O == nil || O.Workers < 1 {
		return 1
	}
	return O.Workers
}

func (O *Options) logf(format string, v ...any) {
	if O == nil || O.Logger == nil {
		return
	}
	O.Logger.Printf(format, v...)
}

// ProcessFile reads the trajectory file name and appends to records one Record
// per metadata block found. Returns the extended slice. Files ending in ".zst" or ".gz"
// are decompressed on the fly.
func ProcessFile(name string, records []*Record, opts *Options) ([]*Record, error) {
	f, err := openFile(name)
	if err != nil {
		return records, fileAccessError(name, "unable to open file", err, "ProcessFile")
	}
	defer f.Close()
	records, err = ProcessReader(f, name, records, opts)
	return records, errDecorate(err, "ProcessFile")
}

// ProcessReader is like ProcessFile, but reads the trajectory from r. name is stored
// as the source file of each record, so it should be something that ProcessFile
// (and TrajFileWrite) can later open.
//
// A record is created for each run of consecutive metadata lines, and it gets the
// lines following the run as its body. A record is stored when the next run of
// metadata lines begins, so the last record in the file is lost unless opts.FlushLast
// is set. Body lines before the first metadata line don't belong to any record and
// are skipped.
func ProcessReader(r io.Reader, name string, records []*Record, opts *Options) ([]*Record, error) {
	marker := opts.marker()
	buf := bufio.NewReader(r)
	var record *Record
	lastWasRemark := false
	skipped := 0
	for i := 0; ; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return records, fileAccessError(name, "unable to read line", err, "ProcessReader")
		}
		if line == "" && err == io.EOF {
			break
		}
		if strings.HasPrefix(line, marker) {
			if !lastWasRemark {
				if record != nil {
					records = append(records, record)
				}
				record = newRecord(name)
			}
			key, value := ParseRemark(line)
			if key == "" {
				opts.logf("%s:%d: metadata line without a key, skipped: %q", name, i+1, strings.TrimSpace(line))
			} else {
				record.Fields.Set(key, value)
			}
			lastWasRemark = true
		} else {
			if record != nil {
				record.addBody(i)
			} else {
				skipped++
			}
			lastWasRemark = false
		}
		if err == io.EOF {
			break
		}
	}
	if skipped > 0 {
		opts.logf("%s: %d lines before the first metadata block skipped", name, skipped)
	}
	if record != nil && opts.flushLast() {
		if record.hasBody() {
			records = append(records, record)
		} else {
			opts.logf("%s: last metadata block has no model, skipped", name)
		}
	}
	return records, nil
}
