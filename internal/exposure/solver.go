package exposure

import (
	"math"
	"strconv"
	"strings"
)

// Request describes one solve. The Target field for the solved axis is
// ignored.
type Request struct {
	Reference    Setting
	Target       Setting
	Solve        Axis
	Granularity  Granularity
	Compensation float64
}

// Report is the result of a solve.
type Report struct {
	// Setting is the target triple with the solved axis filled in.
	Setting Setting `json:"setting"`
	// Solved is the axis that was computed.
	Solved Axis `json:"solved"`
	// Value is the snapped scale entry for the solved axis.
	Value string `json:"value"`
	// Ideal is the unsnapped value in notation; IdealValue is its number.
	Ideal      string  `json:"ideal"`
	IdealValue float64 `json:"ideal_value"`
	// SnapErrorStops is the light gained by snapping Ideal to Value.
	SnapErrorStops float64 `json:"snap_error_stops"`
	// EV is the exposure value of Setting; ReferenceEV that of the reference.
	EV           float64     `json:"ev"`
	ReferenceEV  float64     `json:"reference_ev"`
	Compensation float64     `json:"ev_compensation"`
	Granularity  Granularity `json:"granularity"`
	Diagnostics  Diagnostics `json:"diagnostics"`
}

// Solver derives the missing axis of an exposure by reciprocity.
type Solver struct {
	scales    *ScaleSet
	tolerance map[Axis]float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithTolerance overrides the range tolerance factor for axis.
func WithTolerance(axis Axis, factor float64) Option {
	return func(s *Solver) {
		if factor >= 1 {
			s.tolerance[axis] = factor
		}
	}
}

// NewSolver creates a Solver over scales. A nil set selects DefaultScales.
func NewSolver(scales *ScaleSet, opts ...Option) *Solver {
	if scales == nil {
		scales = DefaultScales()
	}
	s := &Solver{
		scales: scales,
		tolerance: make(map[Axis]float64, 3),
	}
	for _, axis := range Axes() {
		s.tolerance[axis] = DefaultTolerance(axis)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scales returns the scale set the solver snaps onto.
func (s *Solver) Scales() *ScaleSet {
	return s.scales
}

// Tolerance returns the range tolerance factor used for axis.
func (s *Solver) Tolerance(axis Axis) float64 {
	return s.tolerance[axis]
}

// Scale returns the notated entries for axis at g, or nil if unknown.
func (s *Solver) Scale(axis Axis, g Granularity) []string {
	sc := s.scales.Scale(axis, g)
	if sc == nil {
		return nil
	}
	return sc.Entries()
}

// SolveShutterSpeed finds the shutter speed that keeps the reference exposure
// at targetAperture and targetISO.
func (s *Solver) SolveShutterSpeed(ref Setting, targetAperture, targetISO string, g Granularity, ev float64) (*Report, error) {
	return s.Solve(Request{
		Reference:    ref,
		Target:       Setting{Aperture: targetAperture, ISO: targetISO},
		Solve:        Shutter,
		Granularity:  g,
		Compensation: ev,
	})
}

// SolveAperture finds the aperture that keeps the reference exposure at
// targetShutterSpeed and targetISO.
func (s *Solver) SolveAperture(ref Setting, targetShutterSpeed, targetISO string, g Granularity, ev float64) (*Report, error) {
	return s.Solve(Request{
		Reference:    ref,
		Target:       Setting{ShutterSpeed: targetShutterSpeed, ISO: targetISO},
		Solve:        Aperture,
		Granularity:  g,
		Compensation: ev,
	})
}

// SolveISO finds the ISO that keeps the reference exposure at
// targetShutterSpeed and targetAperture.
func (s *Solver) SolveISO(ref Setting, targetShutterSpeed, targetAperture string, g Granularity, ev float64) (*Report, error) {
	return s.Solve(Request{
		Reference:    ref,
		Target:       Setting{ShutterSpeed: targetShutterSpeed, Aperture: targetAperture},
		Solve:        ISO,
		Granularity:  g,
		Compensation: ev,
	})
}

// Solve runs the reciprocity pipeline for req.
//
// Only unparseable or non-positive input fails; the error is a *FormatError
// naming the field. Out-of-range results are replaced by the nearest scale
// entry and reported in Report.Diagnostics.
func (s *Solver) Solve(req Request) (*Report, error) {
	if !req.Solve.valid() {
		return nil, invalidf("unknown axis %v", req.Solve)
	}
	scale := s.scales.Scale(req.Solve, req.Granularity)
	if scale == nil {
		return nil, &FormatError{Field: "granularity", Value: req.Granularity.String(),
			Err: invalidf("unknown granularity %v", req.Granularity)}
	}
	if err := checkFinite("evCompensation", req.Compensation); err != nil {
		return nil, err
	}

	ref, err := ParseSetting("reference", req.Reference)
	if err != nil {
		return nil, err
	}

	final := ref
	target := req.Target
	var gained float64
	for _, axis := range Axes() {
		if axis == req.Solve {
			continue
		}
		raw := req.Target.Get(axis)
		v, err := parseField(targetField(axis), axis, raw)
		if err != nil {
			return nil, err
		}
		d, err := Stops(axis, ref.Get(axis), v)
		if err != nil {
			return nil, &FormatError{Field: targetField(axis), Value: raw, Err: err}
		}
		gained += d
		final = final.With(axis, v)
		target = target.With(axis, strings.TrimSpace(raw))
	}

	// The unknown axis must give back what the others gained, then add the
	// requested compensation. Positive compensation brightens on every axis.
	ideal, err := ApplyStops(req.Solve, ref.Get(req.Solve), -gained+req.Compensation)
	if err != nil {
		return nil, &FormatError{Field: fieldName("reference", req.Solve), Value: req.Reference.Get(req.Solve), Err: err}
	}
	if err := checkPositive(ideal); err != nil {
		// Extreme targets push the result past float64 range.
		return nil, &FormatError{Field: targetField(req.Solve), Value: strconv.FormatFloat(ideal, 'g', -1, 64),
			Err: invalidf("solved %s is not representable", req.Solve)}
	}

	report := &Report{
		Solved:       req.Solve,
		Ideal:        Format(req.Solve, ideal),
		IdealValue:   ideal,
		ReferenceEV:  round2(EV(ref)),
		Compensation: req.Compensation,
		Granularity:  req.Granularity,
		Diagnostics:  Diagnostics{},
	}

	snapped, limit := scale.SnapWithin(ideal, s.Tolerance(req.Solve))
	if limit != nil {
		report.Diagnostics = append(report.Diagnostics, *limit)
	}
	final = final.With(req.Solve, snapped.Value)
	report.Value = snapped.Entry
	report.SnapErrorStops = round2(snapped.ErrorStops)
	report.Setting = target.With(req.Solve, snapped.Entry)

	ev := EV(final)
	report.EV = round2(ev)
	envelope, err := s.scales.Envelope(req.Granularity)
	if err != nil {
		return nil, err
	}
	if d := envelope.Check(ev); d != nil {
		report.Diagnostics = append(report.Diagnostics, *d)
	}

	return report, nil
}

// Envelope returns the EV envelope of the solver's scales at g.
func (s *Solver) Envelope(g Granularity) (Envelope, error) {
	return s.scales.Envelope(g)
}

func checkFinite(field string, v float64) error {
	if math.IsNaN(v) || math.Abs(v) > maxCompensation {
		return &FormatError{
			Field: field,
			Value: strconv.FormatFloat(v, 'g', -1, 64),
			Err:   invalidf("%v is out of range", v),
		}
	}
	return nil
}

// maxCompensation bounds EV compensation well beyond any real camera dial.
const maxCompensation = 64
