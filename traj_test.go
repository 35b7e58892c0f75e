package plop

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrajWrite(Te *testing.T) {
	records, err := ProcessDir(testdir, "traj", nil)
	require.NoError(Te, err)
	sel := Selection{records[3], records[0]}
	var out bytes.Buffer
	require.NoError(Te, TrajWrite(&out, sel, nil))
	want := `REMARK proc 2
REMARK energy -26740
REMARK steps 626
REMARK l1_binding_ene -60
ATOM      1  N   ALA A   1      10.804   6.434  -6.204  1.00  0.00           N
ENDMDL
REMARK proc 1
REMARK energy -26760.5
REMARK l1_binding_ene -81.535
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00  0.00           N
ATOM      2  CA  ALA A   1      11.639   6.071  -5.147  1.00  0.00           C
ENDMDL
`
	assert.Equal(Te, want, out.String())

	out.Reset()
	require.NoError(Te, TrajWrite(&out, nil, nil))
	assert.Empty(Te, out.String())
}

// Writing the selection and reading it back gives the same metrics and models.
func TestTrajRoundTrip(Te *testing.T) {
	records, err := ProcessDir(testdir, "traj", nil)
	require.NoError(Te, err)
	dir := Te.TempDir()
	for _, name := range []string{"out.pdb", "out.pdb.gz", "out.pdb.zst"} {
		path := filepath.Join(dir, name)
		require.NoError(Te, TrajFileWrite(path, records, nil))
		back, err := ProcessFile(path, nil, &Options{FlushLast: true})
		require.NoError(Te, err)
		require.Len(Te, back, len(records), name)
		for i := range back {
			assert.Equal(Te, records[i].Fields, back[i].Fields)
			assert.Equal(Te, records[i].Body.Len(), back[i].Body.Len())
			var a, b bytes.Buffer
			require.NoError(Te, TrajWrite(&a, Selection{records[i]}, nil))
			require.NoError(Te, TrajWrite(&b, Selection{back[i]}, nil))
			assert.Equal(Te, a.String(), b.String())
		}
	}
}

func TestTrajWriteMissingNewline(Te *testing.T) {
	dir := Te.TempDir()
	name := writeTestFile(Te, dir, "t.pdb", "REMARK a 1\nATOM 1\nATOM 2")
	records, err := ProcessFile(name, nil, &Options{FlushLast: true})
	require.NoError(Te, err)
	require.Len(Te, records, 1)
	var out bytes.Buffer
	require.NoError(Te, TrajWrite(&out, Selection{records[0], records[0]}, &Options{Marker: "REMARK"}))
	assert.Equal(Te, "REMARK a 1\nATOM 1\nATOM 2\nREMARK a 1\nATOM 1\nATOM 2\n", out.String())
}

// The source file changed since it was read.
func TestTrajWriteShortFile(Te *testing.T) {
	dir := Te.TempDir()
	name := writeTestFile(Te, dir, "t.pdb", threeBlocks)
	records, err := ProcessFile(name, nil, nil)
	require.NoError(Te, err)
	require.NoError(Te, os.WriteFile(name, []byte("REMARK proc 1\n"), 0o644))
	err = TrajWrite(&bytes.Buffer{}, records, nil)
	assert.ErrorIs(Te, err, ErrFileAccess)
	assert.True(Te, strings.Contains(err.Error(), "t.pdb"))

	require.NoError(Te, os.Remove(name))
	err = TrajFileWrite(filepath.Join(dir, "out.pdb"), records, nil)
	assert.ErrorIs(Te, err, ErrFileAccess)
	assert.ErrorIs(Te, err, os.ErrNotExist)

	err = TrajFileWrite(filepath.Join(dir, "no", "such", "dir.pdb"), nil, nil)
	assert.ErrorIs(Te, err, ErrFileAccess)
}
