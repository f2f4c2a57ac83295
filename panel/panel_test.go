package panel

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type state struct {
	x, y, rot, metal float32
	shadows, helper  bool
}

func testPanel(s *state) *Panel {
	p := New("Controls")
	p.AddBool(&s.shadows, "shadows")
	torus := p.AddFolder("torus")
	pos := torus.AddFolder("Position")
	pos.AddFloat(&s.x, "X", -1, 1, 0.01)
	pos.AddFloat(&s.y, "Y", -1, 1, 0.01)
	light := p.AddFolder("Red Light")
	light.AddFloat(&s.rot, "X rotation", -math.Pi, math.Pi, 0.1)
	light.AddBool(&s.helper, "Helper")
	mat := p.AddFolder("Metal material")
	mat.AddFloat(&s.metal, "Metalness", 0, 1, 0.01)
	return p
}

func TestFloatSetClampsAndSnaps(t *testing.T) {
	var v float32
	c := &FloatControl{Label: "X", Min: -1, Max: 1, Step: 0.01, Target: &v}

	c.Set(0.123)
	assert.Equal(t, float32(0.12), v)

	c.Set(0.3)
	assert.Equal(t, float32(0.3), v)

	c.Set(7)
	assert.Equal(t, float32(1), v)

	c.Set(-7)
	assert.Equal(t, float32(-1), v)

	c.Set(float32(math.NaN()))
	assert.Equal(t, float32(-1), v, "NaN is ignored")
}

func TestFloatSetLandsOnUnalignedBound(t *testing.T) {
	var v float32
	c := &FloatControl{Min: -math.Pi, Max: math.Pi, Step: 0.1, Target: &v}

	c.Set(3.14)
	assert.Equal(t, float32(3.1), v)

	c.Set(4)
	assert.Equal(t, float32(math.Pi), v)

	c.Set(-3.2)
	assert.Equal(t, float32(-math.Pi), v)
}

func TestFloatOnChange(t *testing.T) {
	var v float32
	var got []float32
	c := &FloatControl{Min: 0, Max: 20, Step: 0.1, Target: &v, OnChange: func(f float32) { got = append(got, f) }}

	c.Set(18)
	c.Set(float32(math.NaN()))
	c.Set(25)
	assert.Equal(t, []float32{18, 20}, got)
}

func TestFloatFormat(t *testing.T) {
	assert.Equal(t, "%.2f", (&FloatControl{Step: 0.01}).Format())
	assert.Equal(t, "%.1f", (&FloatControl{Step: 0.1}).Format())
	assert.Equal(t, "%.0f", (&FloatControl{Step: 1}).Format())
}

func TestBoolSet(t *testing.T) {
	var b bool
	calls := 0
	c := &BoolControl{Label: "Helper", Target: &b, OnChange: func(bool) { calls++ }}
	c.Set(true)
	assert.True(t, b)
	assert.Equal(t, true, c.Value())
	assert.Equal(t, 1, calls)
}

func TestWalkPaths(t *testing.T) {
	var s state
	p := testPanel(&s)

	var paths []string
	p.Walk(func(path string, _ Control) { paths = append(paths, path) })
	assert.Equal(t, []string{
		"shadows",
		"torus/Position/X",
		"torus/Position/Y",
		"Red Light/X rotation",
		"Red Light/Helper",
		"Metal material/Metalness",
	}, paths)
	assert.Equal(t, 6, p.Len())
}

func TestFind(t *testing.T) {
	var s state
	p := testPanel(&s)

	c, ok := p.Find("torus/Position/Y")
	require.True(t, ok)
	c.(*FloatControl).Set(0.5)
	assert.Equal(t, float32(0.5), s.y)

	_, ok = p.Find("torus/Position/W")
	assert.False(t, ok)

	f, ok := p.FindFolder("torus/Position")
	require.True(t, ok)
	assert.Equal(t, "Position", f.Name)

	_, ok = p.FindFolder("torus/Scale")
	assert.False(t, ok)
}

func TestSnapshotApply(t *testing.T) {
	s := state{x: 0.25, rot: 2, metal: 0.7, helper: true}
	p := testPanel(&s)
	pr := p.Snapshot("saved")
	assert.Equal(t, "saved", pr.Name)
	assert.Equal(t, 0.25, pr.Values["torus/Position/X"])
	assert.Equal(t, true, pr.Values["Red Light/Helper"])

	s = state{}
	require.NoError(t, p.Apply(pr))
	assert.Equal(t, float32(0.25), s.x)
	assert.Equal(t, float32(2), s.rot)
	assert.Equal(t, float32(0.7), s.metal)
	assert.True(t, s.helper)
}

func TestApplyGoesThroughSet(t *testing.T) {
	var s state
	p := testPanel(&s)

	err := p.Apply(Preset{Values: map[string]any{
		"torus/Position/X":         int64(5),
		"Metal material/Metalness": 0.456,
	}})
	require.NoError(t, err)
	assert.Equal(t, float32(1), s.x)
	assert.Equal(t, float32(0.46), s.metal)
}

func TestApplyReportsBadEntries(t *testing.T) {
	var s state
	p := testPanel(&s)

	err := p.Apply(Preset{Values: map[string]any{
		"torus/Scale/X":    1.0,
		"Red Light/Helper": "yes",
		"torus/Position/Y": 0.5,
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownControl))
	assert.True(t, errors.Is(err, ErrValueType))
	assert.Equal(t, float32(0.5), s.y, "valid entries still apply")
	assert.False(t, s.helper)
}

func TestPresetFileRoundTrip(t *testing.T) {
	s := state{x: -0.3, y: 0.9, rot: -1.5, metal: 1, shadows: true}
	p := testPanel(&s)
	path := filepath.Join(t.TempDir(), "preset.toml")

	require.NoError(t, SavePreset(path, p.Snapshot("look")))

	loaded, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, "look", loaded.Name)

	s = state{}
	require.NoError(t, p.Apply(loaded))
	assert.Equal(t, float32(-0.3), s.x)
	assert.Equal(t, float32(0.9), s.y)
	assert.Equal(t, float32(-1.5), s.rot)
	assert.Equal(t, float32(1), s.metal)
	assert.True(t, s.shadows)
}

func TestLoadPresetErrors(t *testing.T) {
	_, err := LoadPreset(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
