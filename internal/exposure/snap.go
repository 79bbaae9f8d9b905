package exposure

import (
	"fmt"
	"math"
)

// Default range tolerances, as a factor on the scale's extreme values. A
// target up to this factor beyond an extreme silently snaps to it.
const (
	DefaultShutterTolerance  = 1.5
	DefaultApertureTolerance = 1.2
	DefaultISOTolerance      = 1.5
)

// DefaultTolerance returns the built-in range tolerance for axis.
func DefaultTolerance(axis Axis) float64 {
	switch axis {
	case Shutter:
		return DefaultShutterTolerance
	case Aperture:
		return DefaultApertureTolerance
	default:
		return DefaultISOTolerance
	}
}

// Snapped is the outcome of snapping a continuous value onto a Scale.
type Snapped struct {
	// Entry is the chosen scale notation.
	Entry string
	// Value is the numeric value of Entry.
	Value float64
	// Index is the position of Entry in the scale.
	Index int
	// ErrorStops is the light gained by using Entry instead of the target.
	ErrorStops float64
}

// Nearest returns the index of the entry closest to target in log2 distance.
// Ties go to the earlier entry. A target of zero or below maps to the smallest
// entry and +Inf to the largest.
func (s *Scale) Nearest(target float64) int {
	switch {
	case target <= 0 || math.IsNaN(target):
		return s.min
	case math.IsInf(target, 1):
		return s.max
	}
	best := 0
	bestDist := math.Inf(1)
	for i, v := range s.values {
		d := math.Abs(math.Log2(v / target))
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Snap returns the entry nearest to target. ErrorStops is left at zero when
// target is not a positive finite value.
func (s *Scale) Snap(target float64) Snapped {
	i := s.Nearest(target)
	var gain float64
	if checkPositive(target) == nil {
		gain, _ = Stops(s.axis, target, s.values[i])
	}
	return Snapped{
		Entry:      s.entries[i],
		Value:      s.values[i],
		Index:      i,
		ErrorStops: gain,
	}
}

// InRange reports whether target lies within the scale's extremes widened by
// the tolerance factor. Factors below 1 are treated as 1.
func (s *Scale) InRange(target, tolerance float64) bool {
	if tolerance < 1 {
		tolerance = 1
	}
	return target <= s.Max()*tolerance && target >= s.Min()/tolerance
}

// SnapWithin snaps target and, when target lies outside the tolerated range,
// also returns a ParameterLimitExceeded diagnostic describing the substitution.
func (s *Scale) SnapWithin(target, tolerance float64) (Snapped, *Diagnostic) {
	snapped := s.Snap(target)
	if s.InRange(target, tolerance) {
		return snapped, nil
	}

	requested := Format(s.axis, target)
	direction := "brighter"
	if snapped.ErrorStops < 0 {
		direction = "darker"
	}
	return snapped, &Diagnostic{
		Kind:      ParameterLimitExceeded,
		Axis:      s.axis.String(),
		Requested: requested,
		Nearest:   snapped.Entry,
		Stops:     round2(snapped.ErrorStops),
		Message: fmt.Sprintf("%s %s is beyond the %s scale (%s to %s); using %s, %.1f stops %s",
			s.axis, requested, s.granularity, s.entries[0], s.entries[len(s.entries)-1],
			snapped.Entry, math.Abs(snapped.ErrorStops), direction),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
