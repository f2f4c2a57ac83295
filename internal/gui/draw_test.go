package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo-scene/panel"
)

// scriptWidgets records calls and plays back scripted edits.
type scriptWidgets struct {
	calls    []string
	closed   map[string]bool
	sliders  map[string]float32
	checks   map[string]bool
	ids      []string
	notBegun bool
	press    bool
}

func (w *scriptWidgets) Begin(title string) bool {
	w.calls = append(w.calls, "begin "+title)
	return !w.notBegun
}
func (w *scriptWidgets) End()             { w.calls = append(w.calls, "end") }
func (w *scriptWidgets) TreePop()         { w.calls = append(w.calls, "pop") }
func (w *scriptWidgets) PushID(id string) { w.ids = append(w.ids, id) }
func (w *scriptWidgets) PopID()           { w.ids = w.ids[:len(w.ids)-1] }

func (w *scriptWidgets) CollapsingHeader(label string, open bool) bool {
	w.calls = append(w.calls, "header "+label)
	return !w.closed[label]
}

func (w *scriptWidgets) TreeNode(label string, open bool) bool {
	w.calls = append(w.calls, "tree "+label)
	return !w.closed[label]
}

func (w *scriptWidgets) SliderFloat(label string, value *float32, min, max float32, format string) bool {
	w.calls = append(w.calls, "slider "+label+" "+format)
	if v, ok := w.sliders[label]; ok {
		*value = v
		return true
	}
	return false
}

func (w *scriptWidgets) Checkbox(label string, value *bool) bool {
	w.calls = append(w.calls, "check "+label)
	if v, ok := w.checks[label]; ok {
		*value = v
		return true
	}
	return false
}

func (w *scriptWidgets) Button(label string) bool {
	w.calls = append(w.calls, "button "+label)
	return w.press
}

func testPanel(x *float32, flag *bool) *panel.Panel {
	p := panel.New("controls")
	torus := p.AddFolder("torus")
	pos := torus.AddFolder("Position")
	pos.AddFloat(x, "X", -10, 10, 0.01)
	p.AddFolder("renderer").AddBool(flag, "shadows")
	return p
}

func TestDrawPanelLayout(t *testing.T) {
	var x float32
	var flag bool
	w := &scriptWidgets{}
	DrawPanel(w, testPanel(&x, &flag), nil)

	assert.Equal(t, []string{
		"begin controls",
		"header torus",
		"tree Position",
		"slider X %.2f",
		"pop",
		"header renderer",
		"check shadows",
		"end",
	}, w.calls)
	assert.Empty(t, w.ids)
}

func TestDrawPanelClosedFolderSkipsControls(t *testing.T) {
	var x float32
	var flag bool
	w := &scriptWidgets{closed: map[string]bool{"Position": true}}
	DrawPanel(w, testPanel(&x, &flag), nil)

	assert.NotContains(t, w.calls, "slider X %.2f")
	assert.NotContains(t, w.calls, "pop")
}

func TestDrawPanelCollapsedWindowStillEnds(t *testing.T) {
	var x float32
	var flag bool
	w := &scriptWidgets{notBegun: true}
	DrawPanel(w, testPanel(&x, &flag), nil)
	assert.Equal(t, []string{"begin controls", "end"}, w.calls)
}

func TestDrawPanelEditsGoThroughSet(t *testing.T) {
	var x float32
	var flag bool
	var changed []float32
	p := testPanel(&x, &flag)
	c, ok := p.Find("torus/Position/X")
	require.True(t, ok)
	c.(*panel.FloatControl).OnChange = func(v float32) { changed = append(changed, v) }

	w := &scriptWidgets{
		sliders: map[string]float32{"X": 25},
		checks:  map[string]bool{"shadows": true},
	}
	DrawPanel(w, p, nil)

	assert.Equal(t, float32(10), x, "slider writes are clamped by the control")
	assert.Equal(t, []float32{10}, changed)
	assert.True(t, flag)
}

func TestDrawPanelSaveButton(t *testing.T) {
	var x float32
	var flag bool
	saves := 0
	onSave := func() { saves++ }

	w := &scriptWidgets{}
	DrawPanel(w, testPanel(&x, &flag), onSave)
	assert.Equal(t, []string{"check shadows", "button Save preset", "end"}, w.calls[len(w.calls)-3:])
	assert.Zero(t, saves, "not pressed")

	w = &scriptWidgets{press: true}
	DrawPanel(w, testPanel(&x, &flag), onSave)
	assert.Equal(t, 1, saves)

	w = &scriptWidgets{press: true, notBegun: true}
	DrawPanel(w, testPanel(&x, &flag), onSave)
	assert.Equal(t, 1, saves, "collapsed window has no button")
}
