package exposure

// Setting is an exposure triple in display notation.
type Setting struct {
	ShutterSpeed string `json:"shutter_speed" yaml:"shutter_speed"`
	Aperture     string `json:"aperture" yaml:"aperture"`
	ISO          string `json:"iso" yaml:"iso"`
}

// Get returns the notation held for axis.
func (s Setting) Get(axis Axis) string {
	switch axis {
	case Shutter:
		return s.ShutterSpeed
	case Aperture:
		return s.Aperture
	default:
		return s.ISO
	}
}

// With returns a copy of s with axis set to v.
func (s Setting) With(axis Axis, v string) Setting {
	switch axis {
	case Shutter:
		s.ShutterSpeed = v
	case Aperture:
		s.Aperture = v
	default:
		s.ISO = v
	}
	return s
}

// Values is an exposure triple in numeric form: seconds, f-number, ISO.
type Values struct {
	Shutter  float64
	Aperture float64
	ISO      float64
}

// Get returns the value held for axis.
func (v Values) Get(axis Axis) float64 {
	switch axis {
	case Shutter:
		return v.Shutter
	case Aperture:
		return v.Aperture
	default:
		return v.ISO
	}
}

// With returns a copy of v with axis set to x.
func (v Values) With(axis Axis, x float64) Values {
	switch axis {
	case Shutter:
		v.Shutter = x
	case Aperture:
		v.Aperture = x
	default:
		v.ISO = x
	}
	return v
}

// ParseSetting parses all three notations. Field names in the returned
// *FormatError are prefixed with prefix ("reference" -> "reference.aperture").
func ParseSetting(prefix string, s Setting) (Values, error) {
	var v Values
	for _, axis := range Axes() {
		x, err := parseField(fieldName(prefix, axis), axis, s.Get(axis))
		if err != nil {
			return Values{}, err
		}
		v = v.With(axis, x)
	}
	return v, nil
}

func parseField(field string, axis Axis, raw string) (float64, error) {
	v, err := Parse(axis, raw)
	if err != nil {
		return 0, &FormatError{Field: field, Value: raw, Err: err}
	}
	return v, nil
}

var fieldSuffix = map[Axis]string{
	Shutter:  "shutterSpeed",
	Aperture: "aperture",
	ISO:      "iso",
}

// targetField names a target argument the way the solver operations do:
// targetShutterSpeed, targetAperture, targetIso.
func targetField(axis Axis) string {
	switch axis {
	case Shutter:
		return "targetShutterSpeed"
	case Aperture:
		return "targetAperture"
	default:
		return "targetIso"
	}
}

func fieldName(prefix string, axis Axis) string {
	if prefix == "" {
		return fieldSuffix[axis]
	}
	return prefix + "." + fieldSuffix[axis]
}
