/*
 * plot.go, part of plopmetrics
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

// Package metplot draws the metrics of a selection of plop records.
// The format of the output (png, svg, pdf, eps...) is given by the extension of the file name.
// As in the plop metric tables, records that lack a metric are plotted with a 0.
package metplot

import (
	"fmt"
	"image/color"

	plop "github.com/rmera/plopmetrics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the side of the (square) plots.
var Size = 5 * vg.Inch

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, name string) error {
	if err := p.Save(Size, Size, name); err != nil {
		return plop.NewError(plop.ErrFileAccess, "unable to save plot", name, err, "metplot")
	}
	return nil
}

// Histogram plots the distribution of the metric in sel, with the given number
// of bins (if bins < 1, 20 is used), to the file plotname.
func Histogram(sel plop.Selection, metric string, bins int, title, plotname string) error {
	if len(sel) == 0 {
		return fmt.Errorf("metplot.Histogram: empty selection")
	}
	if bins < 1 {
		bins = 20
	}
	p := basicPlot(title, plop.Normalize(metric), "Count")
	h, err := plotter.NewHist(plotter.Values(plop.MetricColumn(sel, metric)), bins)
	if err != nil {
		return fmt.Errorf("metplot.Histogram: %w", err)
	}
	h.FillColor = color.RGBA{R: 70, G: 110, B: 200, A: 255}
	p.Add(h)
	return save(p, plotname)
}

// Scatter plots the metric ymetric against xmetric, one point per record in sel, to the file plotname.
func Scatter(sel plop.Selection, xmetric, ymetric, title, plotname string) error {
	if len(sel) == 0 {
		return fmt.Errorf("metplot.Scatter: empty selection")
	}
	xs := plop.MetricColumn(sel, xmetric)
	ys := plop.MetricColumn(sel, ymetric)
	pts := make(plotter.XYs, len(sel))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	p := basicPlot(title, plop.Normalize(xmetric), plop.Normalize(ymetric))
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("metplot.Scatter: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	p.Add(s)
	return save(p, plotname)
}

// Series plots the metric against the position of each record in sel, as a line, to the file plotname.
// With sel in trajectory order, this shows the evolution of the metric along the simulation.
func Series(sel plop.Selection, metric, title, plotname string) error {
	if len(sel) == 0 {
		return fmt.Errorf("metplot.Series: empty selection")
	}
	ys := plop.MetricColumn(sel, metric)
	pts := make(plotter.XYs, len(ys))
	for i, v := range ys {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	p := basicPlot(title, "Model", plop.Normalize(metric))
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("metplot.Series: %w", err)
	}
	l.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(l)
	return save(p, plotname)
}
