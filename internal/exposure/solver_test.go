package exposure

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAperture_TwoStopsFasterShutter(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	report, err := s.SolveAperture(ref, "1/500", "100", Third, 0)
	require.NoError(t, err)

	assert.Equal(t, "f/4", report.Value)
	assert.Equal(t, Aperture, report.Solved)
	assert.Equal(t, Setting{ShutterSpeed: "1/500", Aperture: "f/4", ISO: "100"}, report.Setting)
	assert.Empty(t, report.Diagnostics)
	assert.InDelta(t, 4, report.IdealValue, 1e-9)
}

func TestSolveISO_TwoStopsFasterShutter(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/60", Aperture: "f/5.6", ISO: "400"}

	report, err := s.SolveISO(ref, "1/250", "f/5.6", Full, 0)
	require.NoError(t, err)

	assert.Equal(t, "1600", report.Value)
	assert.Equal(t, "1667", report.Ideal)
	assert.Empty(t, report.Diagnostics)
}

func TestSolveShutterSpeed_BeyondSlowestShutter(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: `30"`, Aperture: "f/2.8", ISO: "800"}

	// Dropping to ISO 80 needs ten times the exposure: five minutes.
	report, err := s.SolveShutterSpeed(ref, "f/2.8", "80", Third, 0)
	require.NoError(t, err)

	assert.Equal(t, `30"`, report.Value)
	assert.Equal(t, `30"`, report.Setting.ShutterSpeed)
	assert.Equal(t, `300"`, report.Ideal)

	d, ok := report.Diagnostics.Find(ParameterLimitExceeded)
	require.True(t, ok)
	assert.Equal(t, "shutter", d.Axis)
	assert.Equal(t, `300"`, d.Requested)
	assert.Equal(t, `30"`, d.Nearest)
	assert.Len(t, report.Diagnostics, 1)
}

func TestSolve_InvalidAperture(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	report, err := s.SolveShutterSpeed(ref, "abc", "100", Third, 0)
	require.Error(t, err)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "targetAperture", fe.Field)
	assert.Equal(t, "abc", fe.Value)
	assert.Contains(t, err.Error(), "targetAperture")
}

func TestSolve_InvalidFieldNames(t *testing.T) {
	s := NewSolver(nil)
	good := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	tests := []struct {
		name  string
		solve func() (*Report, error)
		field string
	}{
		{"reference aperture", func() (*Report, error) {
			return s.SolveISO(good.With(Aperture, "abc"), "1/60", "f/8", Full, 0)
		}, "reference.aperture"},
		{"reference shutter", func() (*Report, error) {
			return s.SolveISO(good.With(Shutter, "0"), "1/60", "f/8", Full, 0)
		}, "reference.shutterSpeed"},
		{"reference iso", func() (*Report, error) {
			return s.SolveAperture(good.With(ISO, ""), "1/60", "100", Full, 0)
		}, "reference.iso"},
		{"target shutter", func() (*Report, error) {
			return s.SolveAperture(good, "1/0", "100", Full, 0)
		}, "targetShutterSpeed"},
		{"target iso", func() (*Report, error) {
			return s.SolveShutterSpeed(good, "f/8", "-100", Full, 0)
		}, "targetIso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := tt.solve()
			assert.Nil(t, report)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestSolve_InvalidRequest(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	_, err := s.SolveISO(ref, "1/60", "f/8", Granularity(9), 0)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = s.SolveISO(ref, "1/60", "f/8", Full, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = s.Solve(Request{Reference: ref, Solve: Axis(4)})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestSolve_UnrepresentableResult(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	// A tiny aperture underflows the shutter speed to zero, a huge one
	// overflows it.
	for _, aperture := range []string{"1e-200", "1e200"} {
		t.Run(aperture, func(t *testing.T) {
			report, err := s.SolveShutterSpeed(ref, aperture, "100", Third, 0)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.ErrorIs(t, err, ErrInvalidFormat)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "targetShutterSpeed", fe.Field)
		})
	}
}

func TestSolve_Reciprocity(t *testing.T) {
	s := NewSolver(nil)
	refs := []Setting{
		{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "400"},
		{ShutterSpeed: `2"`, Aperture: "f/16", ISO: "100"},
		{ShutterSpeed: "1/4000", Aperture: "f/1.4", ISO: "3200"},
	}

	for _, g := range Granularities() {
		for _, ref := range refs {
			refEV, err := ExposureValue(ref)
			require.NoError(t, err)

			for _, solve := range Axes() {
				scale := s.Scales().Scale(solve, g)
				known := otherAxes(solve)
				a := s.Scales().Scale(known[0], g).Entries()
				b := s.Scales().Scale(known[1], g).Entries()

				for i := 0; i < len(a); i += 3 {
					for j := 0; j < len(b); j += 4 {
						target := Setting{}.With(known[0], a[i]).With(known[1], b[j])
						report, err := s.Solve(Request{
							Reference:   ref,
							Target:      target,
							Solve:       solve,
							Granularity: g,
						})
						require.NoError(t, err)

						if report.IdealValue < scale.Min() || report.IdealValue > scale.Max() {
							continue
						}
						assert.False(t, report.Diagnostics.Has(ParameterLimitExceeded))

						gotEV, err := ExposureValue(report.Setting)
						require.NoError(t, err)
						assert.LessOrEqual(t, math.Abs(gotEV-refEV), scale.MaxGapStops()/2+1e-9,
							"%s/%s ref %+v -> %+v", solve, g, ref, report.Setting)
					}
				}
			}
		}
	}
}

func TestSolve_CompensationSymmetry(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "400"}

	plus, err := s.SolveShutterSpeed(ref, "f/8", "400", Third, 1)
	require.NoError(t, err)
	minus, err := s.SolveShutterSpeed(ref, "f/8", "400", Third, -1)
	require.NoError(t, err)

	assert.Equal(t, "1/60", plus.Value)
	assert.Equal(t, "1/250", minus.Value)

	ideal, err := Stops(Shutter, minus.IdealValue, plus.IdealValue)
	require.NoError(t, err)
	assert.InDelta(t, 2, ideal, 1e-9)

	plusSec, _ := ParseShutterSpeed(plus.Value)
	minusSec, _ := ParseShutterSpeed(minus.Value)
	snapped, _ := Stops(Shutter, minusSec, plusSec)
	assert.InDelta(t, 2, snapped, s.Scales().Scale(Shutter, Third).MaxGapStops())
}

func TestSolve_PositiveCompensationBrightensEveryAxis(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "400"}

	tests := []struct {
		solve       Axis
		plus, minus string
	}{
		{Shutter, "1/60", "1/250"},
		{Aperture, "f/5.6", "f/11"},
		{ISO, "800", "200"},
	}

	for _, tt := range tests {
		t.Run(tt.solve.String(), func(t *testing.T) {
			req := Request{Reference: ref, Target: ref, Solve: tt.solve, Granularity: Third}

			req.Compensation = 1
			plus, err := s.Solve(req)
			require.NoError(t, err)

			req.Compensation = -1
			minus, err := s.Solve(req)
			require.NoError(t, err)

			assert.Equal(t, tt.plus, plus.Value)
			assert.Equal(t, tt.minus, minus.Value)
			assert.Less(t, plus.EV, plus.ReferenceEV, "brighter exposure has a lower EV")
			assert.Greater(t, minus.EV, minus.ReferenceEV)
		})
	}
}

func TestSolve_Overexposed(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/8000", Aperture: "f/32", ISO: "50"}

	report, err := s.SolveShutterSpeed(ref, "f/32", "50", Full, 0)
	require.NoError(t, err)

	assert.Equal(t, "1/8000", report.Value)
	assert.False(t, report.Diagnostics.Has(ParameterLimitExceeded))
	d, ok := report.Diagnostics.Find(Overexposed)
	require.True(t, ok)
	assert.InDelta(t, 1.0, d.Stops, 0.01)
}

func TestSolve_Underexposed(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: `30"`, Aperture: "f/1", ISO: "51200"}

	report, err := s.SolveShutterSpeed(ref, "f/1", "51200", Full, 0)
	require.NoError(t, err)

	assert.Equal(t, `30"`, report.Value)
	d, ok := report.Diagnostics.Find(Underexposed)
	require.True(t, ok)
	assert.InDelta(t, 1.0, d.Stops, 0.01)
	assert.False(t, report.Diagnostics.Has(Overexposed))
}

func TestSolve_CustomScales(t *testing.T) {
	scales, err := DefaultScales().With(MustScale(ISO, Third, []string{"100", "200", "400", "800", "1600", "3200"}))
	require.NoError(t, err)
	s := NewSolver(scales)

	ref := Setting{ShutterSpeed: "1/60", Aperture: "f/5.6", ISO: "400"}
	report, err := s.SolveISO(ref, "1/1000", "f/5.6", Third, 0)
	require.NoError(t, err)

	assert.Equal(t, "3200", report.Value)
	d, ok := report.Diagnostics.Find(ParameterLimitExceeded)
	require.True(t, ok)
	assert.Equal(t, "iso", d.Axis)
	assert.Equal(t, "3200", d.Nearest)
	assert.Equal(t, []string{"100", "200", "400", "800", "1600", "3200"}, s.Scale(ISO, Third))
}

func TestSolve_WithTolerance(t *testing.T) {
	s := NewSolver(nil, WithTolerance(Shutter, 20), WithTolerance(ISO, 0.5))
	assert.Equal(t, 20.0, s.Tolerance(Shutter))
	assert.Equal(t, DefaultTolerance(Aperture), s.Tolerance(Aperture))
	assert.Equal(t, DefaultISOTolerance, s.Tolerance(ISO), "factors below 1 are ignored")

	ref := Setting{ShutterSpeed: `30"`, Aperture: "f/2.8", ISO: "800"}
	report, err := s.SolveShutterSpeed(ref, "f/2.8", "80", Third, 0)
	require.NoError(t, err)

	assert.Equal(t, `30"`, report.Value)
	assert.False(t, report.Diagnostics.Has(ParameterLimitExceeded))
}

func TestSolve_TrimsTargets(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	report, err := s.SolveAperture(ref, " 1/500 ", "100 ", Third, 0)
	require.NoError(t, err)
	assert.Equal(t, Setting{ShutterSpeed: "1/500", Aperture: "f/4", ISO: "100"}, report.Setting)
}

func TestSolver_Scale(t *testing.T) {
	s := NewSolver(nil)
	assert.Equal(t, DefaultEntries(ISO, Full), s.Scale(ISO, Full))
	assert.Nil(t, s.Scale(ISO, Granularity(8)))
}

func TestSolver_Concurrent(t *testing.T) {
	s := NewSolver(nil)
	ref := Setting{ShutterSpeed: "1/125", Aperture: "f/8", ISO: "100"}

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			report, err := s.SolveAperture(ref, "1/500", "100", Third, 0)
			if err == nil {
				results[i] = report.Value
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "f/4", r)
	}
}

func otherAxes(solve Axis) []Axis {
	var out []Axis
	for _, a := range Axes() {
		if a != solve {
			out = append(out, a)
		}
	}
	return out
}
