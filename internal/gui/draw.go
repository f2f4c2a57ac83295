// Package gui draws a panel.Panel with Dear ImGui on top of the 3D view.
package gui

import (
	"logo-scene/panel"
)

// Widgets is the immediate mode widget set the panel is drawn with.
type Widgets interface {
	Begin(title string) bool
	End()
	CollapsingHeader(label string, open bool) bool
	TreeNode(label string, open bool) bool
	TreePop()
	PushID(id string)
	PopID()
	SliderFloat(label string, value *float32, min, max float32, format string) bool
	Checkbox(label string, value *bool) bool
	Button(label string) bool
}

// SaveLabel is the button that stores the current panel values as a preset.
const SaveLabel = "Save preset"

// DrawPanel emits p through w. Top-level folders become collapsing headers
// and nested folders tree nodes. Widget edits are routed through the
// controls' Set so range, step and callbacks apply. A save button follows
// the folders when onSave is set.
func DrawPanel(w Widgets, p *panel.Panel, onSave func()) {
	if w.Begin(p.Title) {
		drawControls(w, p.Controls)
		for _, f := range p.Folders {
			w.PushID(f.Name)
			if w.CollapsingHeader(f.Name, f.Open) {
				drawFolder(w, f)
			}
			w.PopID()
		}
		if onSave != nil && w.Button(SaveLabel) {
			onSave()
		}
	}
	w.End()
}

func drawFolder(w Widgets, f *panel.Folder) {
	drawControls(w, f.Controls)
	for _, sub := range f.Folders {
		if w.TreeNode(sub.Name, sub.Open) {
			drawFolder(w, sub)
			w.TreePop()
		}
	}
}

func drawControls(w Widgets, controls []panel.Control) {
	for _, c := range controls {
		switch ctl := c.(type) {
		case *panel.FloatControl:
			v := ctl.Get()
			if w.SliderFloat(ctl.Label, &v, ctl.Min, ctl.Max, ctl.Format()) {
				ctl.Set(v)
			}
		case *panel.BoolControl:
			v := ctl.Get()
			if w.Checkbox(ctl.Label, &v) {
				ctl.Set(v)
			}
		}
	}
}
