/*
 * metrics.go, part of plopmetrics.
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
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// MetricValue returns the value of the metric name (normalized here) in r,
// or 0 if r doesn't have it. Unlike the filters, a missing metric is not an error.
func MetricValue(r *Record, name string) float64 {
	v, _ := r.Fields.Get(Normalize(name))
	return v
}

// MetricColumn returns the values of one metric for each record in sel. Missing values are 0.
func MetricColumn(sel Selection, name string) []float64 {
	ret := make([]float64, len(sel))
	key := Normalize(name)
	for i, r := range sel {
		ret[i], _ = r.Fields.Get(key)
	}
	return ret
}

// Metrics returns a matrix with one row per record in sel and one column per metric in names,
// in the given orders. Missing metrics are set to 0. If either sel or names is empty,
// it returns nil.
func Metrics(names []string, sel Selection) *mat.Dense {
	if len(sel) == 0 || len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, v := range names {
		keys[i] = Normalize(v)
	}
	ret := mat.NewDense(len(sel), len(keys), nil)
	for i, r := range sel {
		for j, k := range keys {
			v, _ := r.Fields.Get(k)
			ret.Set(i, j, v)
		}
	}
	return ret
}

// MetricsFileWrite writes the file name with the metrics in names, in columns,
// for the records in sel. See MetricsWrite.
func MetricsFileWrite(name string, names []string, sel Selection) error {
	out, err := createFile(name)
	if err != nil {
		return fileAccessError(name, "unable to create file", err, "MetricsFileWrite")
	}
	err = MetricsWrite(out, names, sel)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = fileAccessError(name, "unable to close file", err2, "MetricsFileWrite")
	}
	return errDecorate(err, "MetricsFileWrite")
}

// MetricsWrite writes the metrics table (see Metrics) as text, one row per line,
// values separated by one space, in the same format numpy.savetxt uses by default.
// Nothing is written for an empty table.
func MetricsWrite(out io.Writer, names []string, sel Selection) error {
	m := Metrics(names, sel)
	if m == nil {
		return nil
	}
	w := bufio.NewWriter(out)
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%.18e", m.At(i, j))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fileAccessError("", "unable to write", err, "MetricsWrite")
	}
	return nil
}

// MetricsCSVFileWrite writes the metrics table to the file name as CSV. See MetricsCSVWrite.
func MetricsCSVFileWrite(name string, names []string, sel Selection) error {
	out, err := createFile(name)
	if err != nil {
		return fileAccessError(name, "unable to create file", err, "MetricsCSVFileWrite")
	}
	err = MetricsCSVWrite(out, names, sel)
	if err2 := out.Close(); err == nil && err2 != nil {
		err = fileAccessError(name, "unable to close file", err2, "MetricsCSVFileWrite")
	}
	return errDecorate(err, "MetricsCSVFileWrite")
}

// MetricsCSVWrite writes the metrics table as CSV, with a header row
// containing the normalized metric names.
func MetricsCSVWrite(out io.Writer, names []string, sel Selection) error {
	w := csv.NewWriter(out)
	row := make([]string, len(names))
	for i, v := range names {
		row[i] = Normalize(v)
	}
	w.Write(row)
	m := Metrics(names, sel)
	if m != nil {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				row[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
			}
			w.Write(row)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fileAccessError("", "unable to write", err, "MetricsCSVWrite")
	}
	return nil
}

// MetricStat summarizes the values of one metric over a selection.
type MetricStat struct {
	Name   string
	N      int
	Mean   float64
	StdDev float64 //unbiased; NaN for less than 2 values
	Min    float64
	Max    float64
}

func (M MetricStat) String() string {
	return fmt.Sprintf("%s: n=%d mean=%g sd=%g min=%g max=%g", M.Name, M.N, M.Mean, M.StdDev, M.Min, M.Max)
}

// MetricStats returns a summary of each metric in names over sel. Missing values count as 0,
// as in Metrics. For an empty selection, all the statistics are NaN.
func MetricStats(names []string, sel Selection) []MetricStat {
	ret := make([]MetricStat, 0, len(names))
	for _, name := range names {
		s := MetricStat{Name: Normalize(name), N: len(sel)}
		if len(sel) == 0 {
			s.Mean, s.StdDev, s.Min, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
			ret = append(ret, s)
			continue
		}
		col := MetricColumn(sel, name)
		s.Mean, s.StdDev = stat.MeanStdDev(col, nil)
		s.Min = floats.Min(col)
		s.Max = floats.Max(col)
		ret = append(ret, s)
	}
	return ret
}
