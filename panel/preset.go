package panel

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

var (
	ErrUnknownControl = errors.New("unknown control")
	ErrValueType      = errors.New("value type does not match control")
)

// Preset is a named set of control values keyed by control path.
type Preset struct {
	Name   string         `toml:"name"`
	Values map[string]any `toml:"values"`
}

// Snapshot captures the current value of every control.
func (p *Panel) Snapshot(name string) Preset {
	pr := Preset{Name: name, Values: make(map[string]any)}
	p.Walk(func(path string, c Control) {
		pr.Values[path] = c.Value()
	})
	return pr
}

// Apply writes preset values through each control's Set, so ranges and steps
// still hold. Unknown paths and mistyped values are skipped and reported in
// the returned error; every other value is applied.
func (p *Panel) Apply(pr Preset) error {
	var errs []error
	for path, raw := range pr.Values {
		c, ok := p.Find(path)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownControl, path))
			continue
		}
		switch ctl := c.(type) {
		case *FloatControl:
			v, ok := toFloat(raw)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %q is %T", ErrValueType, path, raw))
				continue
			}
			ctl.Set(float32(v))
		case *BoolControl:
			v, ok := raw.(bool)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %q is %T", ErrValueType, path, raw))
				continue
			}
			ctl.Set(v)
		}
	}
	return errors.Join(errs...)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// SavePreset writes pr to path as TOML.
func SavePreset(path string, pr Preset) error {
	data, err := toml.Marshal(pr)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write preset %q: %w", path, err)
	}
	return nil
}

// LoadPreset reads a TOML preset from path.
func LoadPreset(path string) (Preset, error) {
	var pr Preset
	data, err := os.ReadFile(path)
	if err != nil {
		return pr, fmt.Errorf("read preset %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, &pr); err != nil {
		return pr, fmt.Errorf("decode preset %q: %w", path, err)
	}
	return pr, nil
}
