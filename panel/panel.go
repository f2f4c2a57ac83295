// Package panel holds the debug panel model: named folders of controls bound
// to live scene values, and presets that snapshot and restore them.
package panel

import (
	"strings"
)

// Folder groups controls and sub-folders under a name.
type Folder struct {
	Name     string
	Open     bool
	Controls []Control
	Folders  []*Folder
}

func (f *Folder) AddFolder(name string) *Folder {
	sub := &Folder{Name: name}
	f.Folders = append(f.Folders, sub)
	return sub
}

// AddFloat binds a slider over [min, max] with the given step.
func (f *Folder) AddFloat(target *float32, label string, min, max, step float32) *FloatControl {
	c := &FloatControl{Label: label, Min: min, Max: max, Step: step, Target: target}
	f.Controls = append(f.Controls, c)
	return c
}

func (f *Folder) AddBool(target *bool, label string) *BoolControl {
	c := &BoolControl{Label: label, Target: target}
	f.Controls = append(f.Controls, c)
	return c
}

// Panel is the root of the control tree.
type Panel struct {
	Title string
	Folder
}

func New(title string) *Panel {
	return &Panel{Title: title}
}

// PathSep separates folder names and the control label in a path.
const PathSep = "/"

// Walk visits every control depth-first in declaration order with its path,
// e.g. "torus/Position/X".
func (p *Panel) Walk(fn func(path string, c Control)) {
	var walk func(prefix string, f *Folder)
	walk = func(prefix string, f *Folder) {
		for _, c := range f.Controls {
			fn(prefix+c.Name(), c)
		}
		for _, sub := range f.Folders {
			walk(prefix+sub.Name+PathSep, sub)
		}
	}
	walk("", &p.Folder)
}

// Find looks a control up by path.
func (p *Panel) Find(path string) (Control, bool) {
	var found Control
	p.Walk(func(cp string, c Control) {
		if found == nil && cp == path {
			found = c
		}
	})
	return found, found != nil
}

// FindFolder looks a folder up by slash separated names.
func (p *Panel) FindFolder(path string) (*Folder, bool) {
	cur := &p.Folder
	for _, name := range strings.Split(path, PathSep) {
		var next *Folder
		for _, sub := range cur.Folders {
			if sub.Name == name {
				next = sub
				break
			}
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Len counts the controls in the panel.
func (p *Panel) Len() int {
	n := 0
	p.Walk(func(string, Control) { n++ })
	return n
}
