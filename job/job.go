// Package job describes and runs a complete plopmetrics job: read a directory of
// trajectories, select records with a filter and write the requested outputs.
// Jobs can be read from YAML files and from the environment (PLOP_* variables,
// also read from .env files).
package job

import (
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	plop "github.com/rmera/plopmetrics"
	"gopkg.in/yaml.v3"
)

// Job is the description of one run. The switches are pointers so a job
// can say "false" explicitly and override a "true" set somewhere else
// (see Merge). A nil switch is off.
type Job struct {
	Dir       string `yaml:"dir"`        //directory with the trajectories. Required.
	Pattern   string `yaml:"pattern"`    //only files with this in their names are read. Empty: all
	Marker    string `yaml:"marker"`     //token starting metadata lines. Empty: REMARK
	FlushLast *bool  `yaml:"flush_last"` //keep the last model of each file
	Workers   int    `yaml:"workers"`    //files read concurrently
	Filter    string `yaml:"filter"`     //empty selects all the records

	Traj        string   `yaml:"traj"`         //trajectory with the selected models
	Metrics     []string `yaml:"metrics"`      //metrics for the tables, stats and plots
	MetricsFile string   `yaml:"metrics_file"` //plain text table
	CSV         string   `yaml:"csv"`          //CSV table
	Plot        string   `yaml:"plot"`         //histogram of the first metric, or scatter of the first two
	Stats       *bool    `yaml:"stats"`        //log a summary of each metric
	Verbose     *bool    `yaml:"verbose"`
}

// Bool returns a pointer to a copy of v, to set the switches of a Job.
func Bool(v bool) *bool { return &v }

// On returns true if the switch b is set to true.
func On(b *bool) bool { return b != nil && *b }

// Load reads a job from a YAML file. Unknown keys are an error.
func Load(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, newError(plop.ErrFileAccess, path, err, "Load", "unable to open job file")
	}
	defer f.Close()
	j, err := Read(f)
	if e, ok := err.(*Error); ok {
		e.filename = path
	}
	return j, errDecorate(err, "Load")
}

// Read reads a YAML job from r. Unknown keys are an error. An empty document gives a zero Job.
func Read(r io.Reader) (Job, error) {
	var j Job
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&j); err != nil && !errors.Is(err, io.EOF) {
		return Job{}, newError(ErrInvalidJob, "", err, "Read", "unable to decode YAML job")
	}
	return j, nil
}

// env variables and the setters for each
var envVars = map[string]func(j *Job, v string) error{
	"PLOP_DIR":     func(j *Job, v string) error { j.Dir = v; return nil },
	"PLOP_PATTERN": func(j *Job, v string) error { j.Pattern = v; return nil },
	"PLOP_MARKER":  func(j *Job, v string) error { j.Marker = v; return nil },
	"PLOP_FILTER":  func(j *Job, v string) error { j.Filter = v; return nil },
	"PLOP_TRAJ":    func(j *Job, v string) error { j.Traj = v; return nil },
	"PLOP_METRICS": func(j *Job, v string) error { j.Metrics = SplitList(v); return nil },
	"PLOP_METRICS_FILE": func(j *Job, v string) error {
		j.MetricsFile = v
		return nil
	},
	"PLOP_CSV":  func(j *Job, v string) error { j.CSV = v; return nil },
	"PLOP_PLOT": func(j *Job, v string) error { j.Plot = v; return nil },
	"PLOP_WORKERS": func(j *Job, v string) (err error) {
		j.Workers, err = strconv.Atoi(v)
		return err
	},
	"PLOP_FLUSH_LAST": func(j *Job, v string) error { return parseSwitch(&j.FlushLast, v) },
	"PLOP_STATS":      func(j *Job, v string) error { return parseSwitch(&j.Stats, v) },
	"PLOP_VERBOSE":    func(j *Job, v string) error { return parseSwitch(&j.Verbose, v) },
}

func parseSwitch(dst **bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = &b
	return nil
}

// FromEnv builds a job from the PLOP_* variables. The given .env files are read
// first (files that don't exist are ignored); variables set in the environment
// win over the ones in the files.
func FromEnv(envfiles ...string) (Job, error) {
	vars := make(map[string]string)
	for _, name := range envfiles {
		m, err := godotenv.Read(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Job{}, newError(plop.ErrFileAccess, name, err, "FromEnv", "unable to read .env file")
		}
		for k, v := range m {
			vars[k] = v
		}
	}
	var j Job
	for k, set := range envVars {
		v, ok := os.LookupEnv(k)
		if !ok {
			v, ok = vars[k]
		}
		if !ok {
			continue
		}
		if err := set(&j, v); err != nil {
			return Job{}, newError(ErrInvalidJob, "", err, "FromEnv", "invalid %s=%q", k, v)
		}
	}
	return j, nil
}

// SplitList splits a comma-separated list of metric names. Spaces inside
// names are kept, since "Binding Ene" is a valid name.
func SplitList(s string) []string {
	var ret []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			ret = append(ret, v)
		}
	}
	return ret
}

// Merge returns base with every non-zero field in over replacing the one in base.
// A switch set in over (even to false) replaces the one in base.
func Merge(base, over Job) Job {
	out := base
	setS := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setS(&out.Dir, over.Dir)
	setS(&out.Pattern, over.Pattern)
	setS(&out.Marker, over.Marker)
	setS(&out.Filter, over.Filter)
	setS(&out.Traj, over.Traj)
	setS(&out.MetricsFile, over.MetricsFile)
	setS(&out.CSV, over.CSV)
	setS(&out.Plot, over.Plot)
	if over.Workers != 0 {
		out.Workers = over.Workers
	}
	if len(over.Metrics) > 0 {
		out.Metrics = append([]string(nil), over.Metrics...)
	}
	setB := func(dst **bool, v *bool) {
		if v != nil {
			*dst = Bool(*v)
		}
	}
	setB(&out.FlushLast, over.FlushLast)
	setB(&out.Stats, over.Stats)
	setB(&out.Verbose, over.Verbose)
	return out
}

// Validate checks that the job can be run.
func (j Job) Validate() error {
	if j.Dir == "" {
		return newError(ErrInvalidJob, "", nil, "Validate", "no directory given")
	}
	if j.Workers < 0 {
		return newError(ErrInvalidJob, "", nil, "Validate", "invalid number of workers %d", j.Workers)
	}
	if len(j.Metrics) == 0 {
		for _, v := range []struct{ name, val string }{{"metrics file", j.MetricsFile}, {"CSV file", j.CSV}, {"plot", j.Plot}} {
			if v.val != "" {
				return newError(ErrInvalidJob, "", nil, "Validate", "a %s was requested but no metrics were given", v.name)
			}
		}
		if On(j.Stats) {
			return newError(ErrInvalidJob, "", nil, "Validate", "stats were requested but no metrics were given")
		}
	}
	return nil
}
