package exposure

import (
	"math"
	"strconv"
	"strings"
)

// fractionTolerance is how far 1/D may drift from the real duration before a
// sub-second value is rendered in decimal seconds instead.
const fractionTolerance = 0.05

// ParseShutterSpeed parses "1/125", "30\"" or a bare decimal into seconds.
func ParseShutterSpeed(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, invalidf("empty shutter speed")
	}

	if num, den, ok := strings.Cut(raw, "/"); ok {
		n, err := parsePositive(num)
		if err != nil {
			return 0, invalidf("shutter speed %q: bad numerator", s)
		}
		d, err := parsePositive(den)
		if err != nil {
			return 0, invalidf("shutter speed %q: bad denominator", s)
		}
		return n / d, nil
	}

	raw = strings.TrimSuffix(raw, `"`)
	v, err := parsePositive(raw)
	if err != nil {
		return 0, invalidf("shutter speed %q", s)
	}
	return v, nil
}

// ParseAperture parses "f/2.8" or a bare f-number.
func ParseAperture(s string) (float64, error) {
	raw := strings.TrimSpace(s)
	if len(raw) >= 2 && strings.EqualFold(raw[:2], "f/") {
		raw = raw[2:]
	}
	v, err := parsePositive(raw)
	if err != nil {
		return 0, invalidf("aperture %q", s)
	}
	return v, nil
}

// ParseISO parses a bare ISO number such as "400".
func ParseISO(s string) (float64, error) {
	v, err := parsePositive(strings.TrimSpace(s))
	if err != nil {
		return 0, invalidf("iso %q", s)
	}
	return v, nil
}

// Parse dispatches to the parser for axis.
func Parse(axis Axis, s string) (float64, error) {
	switch axis {
	case Shutter:
		return ParseShutterSpeed(s)
	case Aperture:
		return ParseAperture(s)
	case ISO:
		return ParseISO(s)
	}
	return 0, invalidf("unknown axis %v", axis)
}

// FormatShutterSpeed renders seconds in conventional notation: 30", 2.5",
// 1/125. Sub-second values that are not close to a whole fraction, such as
// 0.6s, keep decimal notation (0.6").
func FormatShutterSpeed(sec float64) string {
	switch {
	case sec >= 10:
		return strconv.FormatFloat(math.Round(sec), 'f', 0, 64) + `"`
	case sec >= 1:
		return oneDecimal(sec) + `"`
	case sec <= 0 || math.IsNaN(sec):
		return oneDecimal(sec) + `"`
	}

	d := math.Round(1 / sec)
	if d >= 1 && math.Abs(1/d-sec)/sec <= fractionTolerance {
		if d == 1 {
			return `1"`
		}
		return "1/" + strconv.FormatFloat(d, 'f', 0, 64)
	}
	return oneDecimal(sec) + `"`
}

// FormatAperture renders an f-number as f/N with at most one decimal.
func FormatAperture(n float64) string {
	return "f/" + oneDecimal(n)
}

// FormatISO renders an ISO value as a whole number.
func FormatISO(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

// Format dispatches to the formatter for axis.
func Format(axis Axis, v float64) string {
	switch axis {
	case Shutter:
		return FormatShutterSpeed(v)
	case Aperture:
		return FormatAperture(v)
	default:
		return FormatISO(v)
	}
}

// parsePositive accepts no surrounding whitespace; callers trim the outer
// notation only, so "f/ 2.8" and `30 "` are rejected.
func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if err := checkPositive(v); err != nil {
		return 0, err
	}
	return v, nil
}

func checkPositive(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return invalidf("%v is not a positive finite value", v)
	}
	return nil
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
