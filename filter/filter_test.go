package filter

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	plop "github.com/rmera/plopmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(kv ...any) *plop.Record {
	r := &plop.Record{File: "test", Fields: plop.NewFields()}
	for i := 0; i < len(kv); i += 2 {
		r.Fields.Set(kv[i].(string), float64(kv[i+1].(int)))
	}
	return r
}

func sample() []*plop.Record {
	return []*plop.Record{
		rec("proc", 1, "energy", -150),
		rec("proc", 2, "energy", -300),
		rec("proc", 1, "energy", -50),
	}
}

func TestSelectScenario(Te *testing.T) {
	records := sample()
	sel, err := Select("'Proc' == 1 and 'Energy' < -100", records)
	require.NoError(Te, err)
	require.Len(Te, sel, 1)
	assert.Same(Te, records[0], sel[0])
}

func TestUnsupportedOperators(Te *testing.T) {
	for _, expr := range []string{"'Energy' >= -100", "'Energy' <= -100", "'proc'==1 and 'energy'>=1"} {
		//the records lack the fields, but they are never looked at.
		sel, err := Select(expr, []*plop.Record{rec()})
		assert.ErrorIs(Te, err, plop.ErrUnsupportedOperator, expr)
		assert.NotErrorIs(Te, err, plop.ErrFieldNotFound, expr)
		assert.Nil(Te, sel)
	}
}

func TestSyntaxErrors(Te *testing.T) {
	exprs := []string{
		"",
		"   ",
		"'proc' ==",
		"'proc' = 1",
		"('proc' == 1",
		"'proc' == 1)",
		"'proc' 1",
		"'unterminated == 1",
		"\"unterminated == 1",
		"'' == 1",
		"'proc' ! 1",
		"1e == 1",
		"12abc == 1",
		"'proc' == 1 and",
		"not",
		"'proc' == 1; 'energy'",
		"__import__('os')",
		"'proc' => 1",
	}
	for _, expr := range exprs {
		_, err := Compile(expr)
		require.Error(Te, err, expr)
		assert.ErrorIs(Te, err, plop.ErrExpressionSyntax, expr)
		var ferr *Error
		require.ErrorAs(Te, err, &ferr)
		assert.GreaterOrEqual(Te, ferr.Pos(), 0)
		assert.LessOrEqual(Te, ferr.Pos(), len(expr))
	}
}

func TestFieldNotFound(Te *testing.T) {
	records := sample()
	records = append(records, rec("proc", 1))
	sel, err := Select("'Energy' < 0", records)
	assert.ErrorIs(Te, err, plop.ErrFieldNotFound)
	assert.Nil(Te, sel)
	assert.Contains(Te, err.Error(), "energy")
	assert.Contains(Te, err.Error(), "record 3")

	//short-circuit: the right side is never evaluated for these records.
	sel, err = Select("'proc' == 2 and 'steps' > 0", sample()[:1])
	require.NoError(Te, err)
	assert.Empty(Te, sel)
}

func TestConstantExpressions(Te *testing.T) {
	records := sample()
	for _, expr := range []string{"1 == 0", "False", "not true", "0", "1 < 0 or 2 < 1"} {
		sel, err := Select(expr, records)
		require.NoError(Te, err, expr)
		assert.Empty(Te, sel, expr)
	}
	for _, expr := range []string{"1 == 1", "True", "1", "not false", "'proc' == 'proc'"} {
		sel, err := Select(expr, records)
		require.NoError(Te, err, expr)
		assert.Equal(Te, plop.Selection(records), sel, expr)
	}
}

func TestIdempotent(Te *testing.T) {
	records := sample()
	for _, expr := range []string{"'energy' < -100", "'proc' == 1", "not 'proc' == 1 or 'energy' > -60"} {
		once, err := Select(expr, records)
		require.NoError(Te, err)
		twice, err := Select(expr, once)
		require.NoError(Te, err)
		assert.Equal(Te, once, twice, expr)
	}
}

func TestEval(Te *testing.T) {
	r := rec("proc", 2, "energy", -300, "l1_binding_ene", -81, "steps", 626)
	cases := []struct {
		expr string
		want bool
	}{
		{"'PROC' == 2", true},
		{"proc == 2 and energy < -200", true},
		{"'L1 Binding Ene' < -80", true},
		{"'L1  binding  ene|' < -80", true},
		{"'proc' + 'steps' == 628", true},
		{"'energy' - 'proc' == -302", true},
		{"'energy' / 'proc' == -150", true},
		{"'proc' * -1 == -2", true},
		{"-'proc' == -2", true},
		{"--'proc' == 2", true},
		{"'proc' != 2", false},
		{"-400 < 'energy' < -200", true},
		{"-400 < 'energy' < -350", false},
		{"1 < 2 > 0 == 1", false},
		{"1 < 2 > 0 == 0", true},
		{"not 'proc' == 1", true},
		{"not ('proc' == 2 and 'steps' > 600)", false},
		{"'proc' == 1 or 'proc' == 2 and 'steps' < 0", false},
		{"('proc' == 1 or 'proc' == 2) and 'steps' > 0", true},
		{"('proc' == 2) == true", true},
		{"true + true == 2", true},
		{"\"abc\" < \"abd\"", true},
		{"\"ABC\" == \"abc\"", true},
		{"\"a\" + \"b\" == \"ab\"", true},
		{"\"1\" == 1", false},
		{"\"1\" != 1", true},
		{"1.5e3 == 1500", true},
		{".5 == 0.5", true},
		{"'steps' - 626", false},
		{"'steps' and 'proc'", true},
	}
	for _, c := range cases {
		e, err := Compile(c.expr)
		require.NoError(Te, err, c.expr)
		got, err := e.Eval(r)
		require.NoError(Te, err, c.expr)
		assert.Equal(Te, c.want, got, "%s parsed as %s", c.expr, e)
	}
}

func TestEvalErrors(Te *testing.T) {
	r := rec("proc", 0)
	for _, expr := range []string{"1 / 'proc'", "\"a\" < 1", "-\"a\" == 1", "\"a\" * 2"} {
		e, err := Compile(expr)
		require.NoError(Te, err, expr)
		_, err = e.Eval(r)
		assert.ErrorIs(Te, err, plop.ErrExpressionSyntax, expr)
		assert.Contains(Te, err.Error(), expr)
	}
}

func TestFieldsAndString(Te *testing.T) {
	e, err := Compile("'Proc' == 1 and ('Energy' < -100 or proc > 'L1 Binding Ene')")
	require.NoError(Te, err)
	assert.Equal(Te, []string{"proc", "energy", "l1_binding_ene"}, e.Fields())
	assert.Equal(Te, "(('proc' == 1) and (('energy' < -100) or ('proc' > 'l1_binding_ene')))", e.String())
}

// The original usage of the tool: bare names over a directory of trajectories.
func TestSelectFromFiles(Te *testing.T) {
	records, err := plop.ProcessDir(filepath.Join("..", "testdata"), "traj", nil)
	require.NoError(Te, err)
	sel, err := Select("Proc == 1 and Energy<-26759", records)
	require.NoError(Te, err)
	require.Len(Te, sel, 1)
	assert.Equal(Te, "traj_1.pdb", filepath.Base(sel[0].File))

	//steps is only in one record.
	_, err = Select("'Steps' > 0", records)
	assert.ErrorIs(Te, err, plop.ErrFieldNotFound)
	var ferr plop.FileError
	require.ErrorAs(Te, err, &ferr)
	assert.Equal(Te, "traj_1.pdb", filepath.Base(ferr.FileName()))
}

func BenchmarkSelect(b *testing.B) {
	records := make([]*plop.Record, 0, 5000)
	for i := 0; i < cap(records); i++ {
		records = append(records, rec("proc", i%8, "energy", -i, "steps", i))
	}
	e, err := Compile("('proc' == 1 or 'proc' == 3) and -4000 < 'energy' < -100 and not 'steps' > 4500")
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Select(records); err != nil {
			b.Fatal(err)
		}
	}
}

func ExampleSelect() {
	records := []*plop.Record{
		{File: "a.pdb", Fields: plop.NewFields()},
		{File: "b.pdb", Fields: plop.NewFields()},
	}
	records[0].Fields.Set("binding_ene", -81.5)
	records[1].Fields.Set("binding_ene", -60)
	sel, err := Select("'Binding Ene' < -80", records)
	if err != nil {
		panic(err)
	}
	for _, r := range sel {
		fmt.Println(r.File, strings.TrimSpace(r.Fields.String()))
	}
	// Output: a.pdb {binding_ene:-81.5}
}
