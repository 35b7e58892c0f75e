/*
 * dir.go, part of plopmetrics.
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
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DirFiles returns the paths of the regular files in dir whose name contains
// common, sorted by name. An empty common matches all the files.
// Sub-directories are not included.
func DirFiles(dir, common string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fileAccessError(dir, "unable to list directory", err, "DirFiles")
	}
	ret := make([]string, 0, len(entries))
	for _, v := range entries {
		if v.IsDir() || !strings.Contains(v.Name(), common) {
			continue
		}
		if !v.Type().IsRegular() {
			//symlinks and such are only kept if they point to a regular file.
			info, err := os.Stat(filepath.Join(dir, v.Name()))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		ret = append(ret, filepath.Join(dir, v.Name()))
	}
	return ret, nil
}

// ProcessDir returns the records for all the trajectory files in dir where common is
// part of the file name (so "traj" matches traj.01.pdb, but also mytraj.pdb). An empty
// common reads all the files in the directory.
//
// Files are read in name order, and the records keep that order even if
// opts.Workers > 1. Any error reading a file aborts the whole operation.
func ProcessDir(dir, common string, opts *Options) ([]*Record, error) {
	names, err := DirFiles(dir, common)
	if err != nil {
		return nil, errDecorate(err, "ProcessDir")
	}
	if opts.workers() > 1 {
		records, err := processFilesConc(names, opts)
		return records, errDecorate(err, "ProcessDir")
	}
	var records []*Record
	for i, name := range names {
		opts.logf("Processing %s ( %d of %d )", filepath.Base(name), i+1, len(names))
		records, err = ProcessFile(name, records, opts)
		if err != nil {
			return nil, errDecorate(err, "ProcessDir")
		}
	}
	return records, nil
}

// processFilesConc reads each file in its own goroutine, at most opts.Workers at
// the time, and then puts the records together in the order of names.
func processFilesConc(names []string, opts *Options) ([]*Record, error) {
	perfile := make([][]*Record, len(names))
	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, name := range names {
		i, name := i, name // per-iteration copies; the module targets go 1.21
		g.Go(func() error {
			opts.logf("Processing %s ( %d of %d )", filepath.Base(name), i+1, len(names))
			recs, err := ProcessFile(name, nil, opts)
			if err != nil {
				return err
			}
			perfile[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	total := 0
	for _, v := range perfile {
		total += len(v)
	}
	records := make([]*Record, 0, total)
	for _, v := range perfile {
		records = append(records, v...)
	}
	return records, nil
}
