// plopmetrics reads the PLOP trajectories in a directory, selects models by their
// metrics, and writes a trajectory and/or tables with the selected ones.
//
//	plopmetrics -dir run -pattern traj -filter "'Proc' == 1 and 'Energy' < -26759" \
//		-traj file.pdb -metrics Proc,Energy -metrics-file metrics.dat
//
// Options can also come from a YAML job file (-config) and from PLOP_* environment
// variables, which are also read from the -env files. Flags win over the job file,
// which wins over the environment.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rmera/plopmetrics/job"
)

// cliArgs are the parsed command line.
type cliArgs struct {
	config  string
	envfile string
	over    job.Job //only the options given in the command line are set
}

func parseArgs(name string, args []string) (*cliArgs, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	a := new(cliArgs)
	over := &a.over
	fs.StringVar(&a.config, "config", "", "YAML job file")
	fs.StringVar(&a.envfile, "env", ".env", "file with PLOP_* variables, ignored if it doesn't exist")
	fs.StringVar(&over.Dir, "dir", "", "directory with the trajectory files")
	fs.StringVar(&over.Pattern, "pattern", "", "read only files with this string in their names")
	fs.StringVar(&over.Marker, "marker", "", "token that starts metadata lines (default REMARK)")
	flushLast := fs.Bool("flush-last", false, "keep the last model of each file")
	fs.IntVar(&over.Workers, "workers", 0, "number of files read at the same time")
	fs.StringVar(&over.Filter, "filter", "", "selection expression, e.g. \"'Proc' == 1 and 'Energy' < -100\"")
	fs.StringVar(&over.Traj, "traj", "", "write the selected models to this trajectory")
	metrics := fs.String("metrics", "", "comma-separated list of metrics")
	fs.StringVar(&over.MetricsFile, "metrics-file", "", "write the selected metrics to this file")
	fs.StringVar(&over.CSV, "csv", "", "write the selected metrics to this CSV file")
	fs.StringVar(&over.Plot, "plot", "", "plot the selected metrics to this file (png, svg, pdf)")
	stats := fs.Bool("stats", false, "print a summary of each metric")
	verbose := fs.Bool("v", false, "report each file read")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options]\n", name)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	over.Metrics = job.SplitList(*metrics)
	//switches only override the job file and the environment if given,
	//so -flush-last=false can turn off a flush_last: true.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "flush-last":
			over.FlushLast = job.Bool(*flushLast)
		case "stats":
			over.Stats = job.Bool(*stats)
		case "v":
			over.Verbose = job.Bool(*verbose)
		}
	})
	return a, nil
}

// buildJob puts together the environment, the job file and the command line,
// in increasing order of priority.
func buildJob(a *cliArgs) (job.Job, error) {
	j, err := job.FromEnv(a.envfile)
	if err != nil {
		return j, err
	}
	if a.config != "" {
		fromfile, err := job.Load(a.config)
		if err != nil {
			return j, err
		}
		j = job.Merge(j, fromfile)
	}
	return job.Merge(j, a.over), nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("plopmetrics: ")
	a, err := parseArgs(os.Args[0], os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	j, err := buildJob(a)
	if err != nil {
		log.Fatal(err)
	}
	sum, err := job.Run(j, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	if len(sum.Written) == 0 && !job.On(j.Stats) {
		fmt.Printf("%d records, %d selected\n", sum.Records, sum.Selected)
	}
}
