package metplot

import (
	"os"
	"path/filepath"
	"testing"

	plop "github.com/rmera/plopmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selection(Te *testing.T) plop.Selection {
	Te.Helper()
	records, err := plop.ProcessDir(filepath.Join("..", "testdata"), "traj", &plop.Options{FlushLast: true})
	require.NoError(Te, err)
	return plop.Selection(records)
}

func nonEmpty(Te *testing.T, name string) {
	Te.Helper()
	info, err := os.Stat(name)
	require.NoError(Te, err)
	assert.Greater(Te, info.Size(), int64(0))
}

func TestPlots(Te *testing.T) {
	sel := selection(Te)
	dir := Te.TempDir()

	name := filepath.Join(dir, "hist.png")
	require.NoError(Te, Histogram(sel, "Energy", 5, "Energy distribution", name))
	nonEmpty(Te, name)

	name = filepath.Join(dir, "scatter.svg")
	require.NoError(Te, Scatter(sel, "Energy", "L1 Binding Ene", "Binding vs total energy", name))
	nonEmpty(Te, name)

	name = filepath.Join(dir, "series.png")
	require.NoError(Te, Series(sel, "Energy", "Energy", name))
	nonEmpty(Te, name)
}

func TestPlotErrors(Te *testing.T) {
	dir := Te.TempDir()
	assert.Error(Te, Histogram(nil, "Energy", 0, "", filepath.Join(dir, "a.png")))
	assert.Error(Te, Scatter(nil, "a", "b", "", filepath.Join(dir, "b.png")))
	assert.Error(Te, Series(nil, "a", "", filepath.Join(dir, "c.png")))

	err := Histogram(selection(Te), "Energy", 0, "", filepath.Join(dir, "no", "dir", "a.png"))
	assert.ErrorIs(Te, err, plop.ErrFileAccess)
}
