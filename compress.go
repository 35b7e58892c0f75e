/*
 * compress.go, part of plopmetrics.
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
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Trajectories can be stored compressed. The compression is given by the
// file extension: ".zst" for zstd, ".gz" for gzip. Anything else is plain text.
const (
	zstdExt = ".zst"
	gzipExt = ".gz"
)

// fileReader closes both the decompressor (if any) and the file.
type fileReader struct {
	io.Reader
	closeDec func() error
	f        *os.File
}

func (r *fileReader) Close() error {
	var err error
	if r.closeDec != nil {
		err = r.closeDec()
	}
	if err2 := r.f.Close(); err == nil {
		err = err2
	}
	return err
}

// openFile opens name for reading, decompressing it if needed.
func openFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	r := &fileReader{Reader: f, f: f}
	switch {
	case strings.HasSuffix(tl(name), zstdExt):
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r.Reader = d
		//why couldn't *zstd.Decoder implement io.ReadCloser? :-(
		r.closeDec = func() error { d.Close(); return nil }
	case strings.HasSuffix(tl(name), gzipExt):
		g, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		r.Reader = g
		r.closeDec = g.Close
	}
	return r, nil
}

// fileWriter closes the compressor (if any), which flushes it, and then the file.
type fileWriter struct {
	io.Writer
	enc io.WriteCloser
	f   *os.File
}

func (w *fileWriter) Close() error {
	var err error
	if w.enc != nil {
		err = w.enc.Close()
	}
	if err2 := w.f.Close(); err == nil {
		err = err2
	}
	return err
}

// createFile creates (or truncates) name for writing, compressing
// the output if the name asks for it.
func createFile(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w := &fileWriter{Writer: f, f: f}
	switch {
	case strings.HasSuffix(tl(name), zstdExt):
		e, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, err
		}
		w.Writer = e
		w.enc = e
	case strings.HasSuffix(tl(name), gzipExt):
		g, err := gzip.NewWriterLevel(f, gzip.BestCompression)
		if err != nil {
			f.Close()
			return nil, err
		}
		w.Writer = g
		w.enc = g
	}
	return w, nil
}
