package plop

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRemark(Te *testing.T) {
	cases := []struct {
		line  string
		key   string
		value float64
	}{
		{"REMARK  L1 Binding Ene    -81.535\n", "l1_binding_ene", -81.535},
		{"REMARK  L1  Binding Ene    -81.535", "l1_binding_ene", -81.535},
		{"REMARK  TOTALE            -8690.283", "totale", -8690.283},
		{"REMARK  Steps|              626.000", "steps", 626},
		{"REMARK  L1  Binding Ene|    -81.535", "l1_binding_ene", -81.535},
		{"REMARK  Steps |  626", "steps_", 626},
		{"REMARK  Proc  1", "proc", 1},
		{"REMARK  Energy  not-a-number", "energy", 0},
		{"REMARK  Huge  1e400", "huge", math.Inf(1)},
		{"REMARK  5", "", 5},
		{"REMARK", "", 0},
	}
	for _, c := range cases {
		key, value := ParseRemark(c.line)
		assert.Equal(Te, c.key, key, c.line)
		assert.Equal(Te, c.value, value, c.line)
	}
}

func TestToNumber(Te *testing.T) {
	assert.Equal(Te, 626.0, ToNumber("626.000"))
	assert.Equal(Te, -3.0, ToNumber("-3"))
	assert.Equal(Te, 1e-3, ToNumber("1e-3"))
	assert.Equal(Te, 0.0, ToNumber(""))
	assert.Equal(Te, 0.0, ToNumber("12abc"))
	assert.True(Te, math.IsInf(ToNumber("-1e999"), -1))
}

func TestNormalize(Te *testing.T) {
	assert.Equal(Te, "binding_ene", Normalize("Binding Ene"))
	assert.Equal(Te, "l1_binding_ene", Normalize("  L1   Binding  Ene  "))
	assert.Equal(Te, "steps", Normalize("Steps|"))
	assert.Equal(Te, "energy", Normalize("ENERGY"))
	assert.Equal(Te, "", Normalize("   "))
}

// Parsing a metadata line and writing it back gives an equivalent line.
func TestRemarkRoundTrip(Te *testing.T) {
	lines := []string{
		"REMARK  L1  Binding Ene|    -81.535",
		"REMARK  TOTALE            -8690.283",
		"REMARK  Steps|              626.000",
		"REMARK  Proc 3",
		"REMARK  Tiny 1.5e-12",
		"REMARK  Big 6.02e+23",
	}
	for _, l := range lines {
		key, value := ParseRemark(l)
		regen := FormatRemark(DefaultMarker, key, value)
		key2, value2 := ParseRemark(regen)
		assert.Equal(Te, key, key2, regen)
		assert.Equal(Te, value, value2, regen)
	}
	assert.Equal(Te, "REMARK steps 626", FormatRemark(DefaultMarker, "steps", 626))
	assert.Equal(Te, "REMARK l1_binding_ene -81.535", FormatRemark(DefaultMarker, "l1_binding_ene", -81.535))
	assert.Equal(Te, "MARK x 0.5", FormatRemark("MARK", "x", 0.5))
}

func TestFields(Te *testing.T) {
	f := NewFields()
	f.Set("proc", 1)
	f.Set("energy", -100)
	f.Set("proc", 2)
	assert.Equal(Te, []string{"proc", "energy"}, f.Keys())
	assert.Equal(Te, 2, f.Len())
	v, ok := f.Get("proc")
	assert.True(Te, ok)
	assert.Equal(Te, 2.0, v)
	_, err := f.Lookup("steps")
	assert.ErrorIs(Te, err, ErrFieldNotFound)
	assert.Equal(Te, "{proc:2 energy:-100}", f.String())

	var zero Fields
	zero.Set("a", 1)
	assert.Equal(Te, []string{"a"}, zero.Keys())
	var null *Fields
	_, ok = null.Get("a")
	assert.False(Te, ok)
	assert.Equal(Te, 0, null.Len())
}
