package exposure

import (
	"fmt"
	"strings"
)

// Axis identifies one of the three exposure parameters.
type Axis int

const (
	Shutter Axis = iota
	Aperture
	ISO
)

// Axes returns all axes in canonical order.
func Axes() []Axis {
	return []Axis{Shutter, Aperture, ISO}
}

// String returns the axis name used in diagnostics and tool arguments.
func (a Axis) String() string {
	switch a {
	case Shutter:
		return "shutter"
	case Aperture:
		return "aperture"
	case ISO:
		return "iso"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// MarshalText encodes the axis by name.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a Axis) valid() bool {
	return a >= Shutter && a <= ISO
}

// ParseAxis accepts "shutter" (or "shutter_speed"), "aperture" and "iso",
// case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shutter", "shutter_speed", "shutterspeed", "speed":
		return Shutter, nil
	case "aperture", "f", "fnumber", "f_number":
		return Aperture, nil
	case "iso", "sensitivity":
		return ISO, nil
	}
	return 0, invalidf("unknown axis %q", s)
}

// Granularity is the spacing of a scale between whole stops.
type Granularity int

const (
	Full Granularity = iota
	Half
	Third
)

// Granularities returns all granularities from coarsest to finest.
func Granularities() []Granularity {
	return []Granularity{Full, Half, Third}
}

func (g Granularity) String() string {
	switch g {
	case Full:
		return "full"
	case Half:
		return "half"
	case Third:
		return "third"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// MarshalText encodes the granularity by name.
func (g Granularity) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// StepStops is the nominal distance between neighbouring entries, in stops.
func (g Granularity) StepStops() float64 {
	switch g {
	case Half:
		return 0.5
	case Third:
		return 1.0 / 3.0
	default:
		return 1
	}
}

func (g Granularity) valid() bool {
	return g >= Full && g <= Third
}

// ParseGranularity accepts "full", "half", "third" and the fractions "1",
// "1/2", "1/3".
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "1", "whole":
		return Full, nil
	case "half", "1/2":
		return Half, nil
	case "third", "1/3":
		return Third, nil
	}
	return 0, invalidf("unknown granularity %q", s)
}
