package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/plopmetrics/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(Te *testing.T) {
	a, err := parseArgs("plopmetrics", []string{"-dir", "run", "-metrics", "Proc, Binding Ene", "-workers", "2"})
	require.NoError(Te, err)
	assert.Equal(Te, "run", a.over.Dir)
	assert.Equal(Te, []string{"Proc", "Binding Ene"}, a.over.Metrics)
	assert.Equal(Te, 2, a.over.Workers)
	//switches not in the command line stay unset.
	assert.Nil(Te, a.over.FlushLast)
	assert.Nil(Te, a.over.Stats)
	assert.Nil(Te, a.over.Verbose)

	a, err = parseArgs("plopmetrics", []string{"-flush-last=false", "-v"})
	require.NoError(Te, err)
	require.NotNil(Te, a.over.FlushLast)
	assert.False(Te, *a.over.FlushLast)
	assert.True(Te, job.On(a.over.Verbose))

	_, err = parseArgs("plopmetrics", []string{"-no-such-flag"})
	assert.Error(Te, err)
}

func TestBuildJobPrecedence(Te *testing.T) {
	dir := Te.TempDir()
	envfile := filepath.Join(dir, ".env")
	require.NoError(Te, os.WriteFile(envfile, []byte("PLOP_DIR=fromenv\nPLOP_STATS=true\nPLOP_FLUSH_LAST=true\n"), 0o644))
	config := filepath.Join(dir, "job.yaml")
	require.NoError(Te, os.WriteFile(config, []byte("dir: fromfile\nstats: false\nmetrics: [proc]\n"), 0o644))

	a, err := parseArgs("plopmetrics", []string{"-env", envfile, "-config", config, "-flush-last=false"})
	require.NoError(Te, err)
	j, err := buildJob(a)
	require.NoError(Te, err)
	assert.Equal(Te, "fromfile", j.Dir)
	assert.False(Te, job.On(j.Stats))
	assert.False(Te, job.On(j.FlushLast))

	a, err = parseArgs("plopmetrics", []string{"-env", envfile, "-dir", "fromflags"})
	require.NoError(Te, err)
	j, err = buildJob(a)
	require.NoError(Te, err)
	assert.Equal(Te, "fromflags", j.Dir)
	assert.True(Te, job.On(j.FlushLast))
	assert.True(Te, job.On(j.Stats))

	a, err = parseArgs("plopmetrics", []string{"-env", envfile, "-config", filepath.Join(dir, "missing.yaml")})
	require.NoError(Te, err)
	_, err = buildJob(a)
	assert.ErrorIs(Te, err, os.ErrNotExist)
}
