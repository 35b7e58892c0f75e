package job

import (
	"fmt"
	"io"
	"log"

	plop "github.com/rmera/plopmetrics"
	"github.com/rmera/plopmetrics/filter"
	"github.com/rmera/plopmetrics/metplot"
)

// Summary is what a job did.
type Summary struct {
	Records  int //records read
	Selected int
	Written  []string //output files, in the order they were written
	Stats    []plop.MetricStat
}

// Run runs the job j. Progress goes to logger, which can be nil.
// Progress for each file is only logged if j.Verbose is on.
func Run(j Job, logger *log.Logger) (*Summary, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := j.Validate(); err != nil {
		return nil, errDecorate(err, "Run")
	}
	opts := &plop.Options{Marker: j.Marker, FlushLast: On(j.FlushLast), Workers: j.Workers}
	if On(j.Verbose) {
		opts.Logger = logger
	}
	records, err := plop.ProcessDir(j.Dir, j.Pattern, opts)
	if err != nil {
		return nil, errDecorate(err, "Run")
	}
	sum := &Summary{Records: len(records)}
	sel := plop.Selection(records)
	if j.Filter != "" {
		sel, err = filter.Select(j.Filter, records)
		if err != nil {
			return sum, errDecorate(err, "Run")
		}
	}
	sum.Selected = len(sel)
	logger.Printf("%d records read from %s, %d selected", sum.Records, j.Dir, sum.Selected)

	write := func(name string, f func() error) error {
		if name == "" {
			return nil
		}
		if err := f(); err != nil {
			return errDecorate(err, "Run")
		}
		sum.Written = append(sum.Written, name)
		logger.Printf("wrote %s", name)
		return nil
	}
	if err := write(j.Traj, func() error { return plop.TrajFileWrite(j.Traj, sel, opts) }); err != nil {
		return sum, err
	}
	if err := write(j.MetricsFile, func() error { return plop.MetricsFileWrite(j.MetricsFile, j.Metrics, sel) }); err != nil {
		return sum, err
	}
	if err := write(j.CSV, func() error { return plop.MetricsCSVFileWrite(j.CSV, j.Metrics, sel) }); err != nil {
		return sum, err
	}
	if err := write(j.Plot, func() error { return plot(j, sel) }); err != nil {
		return sum, err
	}
	if On(j.Stats) {
		sum.Stats = plop.MetricStats(j.Metrics, sel)
		for _, v := range sum.Stats {
			logger.Print(v)
		}
	}
	return sum, nil
}

// plot draws a histogram of the first metric, or, if there are at least two,
// the second metric against the first.
func plot(j Job, sel plop.Selection) error {
	if len(sel) == 0 {
		return newError(ErrInvalidJob, "", nil, "plot", "nothing to plot, no records selected")
	}
	if len(j.Metrics) == 1 {
		return metplot.Histogram(sel, j.Metrics[0], 0, j.Metrics[0], j.Plot)
	}
	title := fmt.Sprintf("%s vs %s", j.Metrics[1], j.Metrics[0])
	return metplot.Scatter(sel, j.Metrics[0], j.Metrics[1], title, j.Plot)
}
