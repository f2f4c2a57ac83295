package panel

import (
	"math"
	"strconv"
)

// Control is a single widget bound to a live value. Implemented by
// *FloatControl and *BoolControl.
type Control interface {
	Name() string
	// Value returns the bound value as float64 or bool.
	Value() any
}

// FloatControl binds a slider to a float32. Writes go straight to Target.
type FloatControl struct {
	Label    string
	Min      float32
	Max      float32
	Step     float32
	Target   *float32
	OnChange func(float32)
}

func (c *FloatControl) Name() string { return c.Label }

func (c *FloatControl) Value() any { return float64(*c.Target) }

func (c *FloatControl) Get() float32 { return *c.Target }

// Set writes v to the target. Values outside [Min, Max] land exactly on the
// nearest bound; values inside are snapped to a multiple of Step.
func (c *FloatControl) Set(v float32) {
	switch {
	case math.IsNaN(float64(v)):
		return
	case v <= c.Min:
		v = c.Min
	case v >= c.Max:
		v = c.Max
	default:
		v = c.snap(v)
	}
	*c.Target = v
	if c.OnChange != nil {
		c.OnChange(v)
	}
}

func (c *FloatControl) snap(v float32) float32 {
	if c.Step <= 0 {
		return v
	}
	step := decimal(c.Step)
	snapped := float32(math.Round(decimal(v)/step) * step)
	if snapped < c.Min {
		return c.Min
	}
	if snapped > c.Max {
		return c.Max
	}
	return snapped
}

// decimal widens v through its shortest decimal form so 0.01 becomes exactly
// 0.01 in float64 rather than 0.009999999776.
func decimal(v float32) float64 {
	f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', -1, 32), 64)
	return f
}

// Format is the printf verb that shows as many decimals as Step has.
func (c *FloatControl) Format() string {
	s := strconv.FormatFloat(float64(c.Step), 'f', -1, 32)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return "%." + strconv.Itoa(len(s)-i-1) + "f"
		}
	}
	return "%.0f"
}

// BoolControl binds a checkbox to a bool.
type BoolControl struct {
	Label    string
	Target   *bool
	OnChange func(bool)
}

func (c *BoolControl) Name() string { return c.Label }

func (c *BoolControl) Value() any { return *c.Target }

func (c *BoolControl) Get() bool { return *c.Target }

func (c *BoolControl) Set(v bool) {
	*c.Target = v
	if c.OnChange != nil {
		c.OnChange(v)
	}
}
