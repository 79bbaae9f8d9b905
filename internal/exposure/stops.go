package exposure

import "math"

// Stops returns the light gained by moving axis from base to target.
//
// Shutter speed and ISO gain a stop per doubling: log2(target/base). Light
// through the aperture scales with its area, ∝ 1/f², so the gain is
// 2·log2(base/target) and a larger f-number is a negative delta.
func Stops(axis Axis, base, target float64) (float64, error) {
	if err := checkPositive(base); err != nil {
		return 0, err
	}
	if err := checkPositive(target); err != nil {
		return 0, err
	}

	switch axis {
	case Shutter, ISO:
		return math.Log2(target / base), nil
	case Aperture:
		return 2 * math.Log2(base/target), nil
	}
	return 0, invalidf("unknown axis %v", axis)
}

// ApplyStops moves base by stops of light gained and returns the new value.
// Shutter speed and ISO scale by 2^stops; the f-number scales by √2^-stops.
func ApplyStops(axis Axis, base, stops float64) (float64, error) {
	if err := checkPositive(base); err != nil {
		return 0, err
	}
	if math.IsNaN(stops) || math.IsInf(stops, 0) {
		return 0, invalidf("stop delta %v is not finite", stops)
	}

	switch axis {
	case Shutter, ISO:
		return base * math.Exp2(stops), nil
	case Aperture:
		return base * math.Pow(math.Sqrt2, -stops), nil
	}
	return 0, invalidf("unknown axis %v", axis)
}
