package exposure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScale_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		axis    Axis
		entries []string
	}{
		{"empty", ISO, nil},
		{"unparseable", Aperture, []string{"f/2", "wide"}},
		{"duplicate", ISO, []string{"100", "200", "200"}},
		{"not monotonic", Shutter, []string{"1/60", "1/125", "1/30"}},
		{"unknown axis", Axis(7), []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScale(tt.axis, Full, tt.entries)
			assert.Error(t, err)
		})
	}

	_, err := NewScale(ISO, Granularity(5), []string{"100"})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestScale_Extremes(t *testing.T) {
	shutter := DefaultScales().Scale(Shutter, Full)
	require.NotNil(t, shutter)

	assert.InDelta(t, 1.0/8000, shutter.Min(), 1e-15)
	assert.Equal(t, 30.0, shutter.Max())
	assert.Equal(t, "1/8000", shutter.MinEntry())
	assert.Equal(t, `30"`, shutter.MaxEntry())

	aperture := DefaultScales().Scale(Aperture, Third)
	assert.Equal(t, "f/1", aperture.MinEntry())
	assert.Equal(t, "f/32", aperture.MaxEntry())

	single := MustScale(ISO, Full, []string{"400"})
	assert.Equal(t, "400", single.MinEntry())
	assert.Equal(t, "400", single.MaxEntry())
}

func TestScale_EntriesIsCopy(t *testing.T) {
	s := DefaultScales().Scale(ISO, Full)
	entries := s.Entries()
	entries[0] = "mutated"

	first, _ := s.Entry(0)
	assert.Equal(t, "100", first)
}

func TestScale_SnapExactEntries(t *testing.T) {
	scales := DefaultScales()
	for _, axis := range Axes() {
		for _, g := range Granularities() {
			s := scales.Scale(axis, g)
			for i := 0; i < s.Len(); i++ {
				entry, v := s.Entry(i)
				got := s.Snap(v)
				assert.Equal(t, entry, got.Entry)
				assert.Equal(t, i, got.Index)
				assert.Zero(t, got.ErrorStops)
			}
		}
	}
}

func TestScale_SnapMinimisesLogDistance(t *testing.T) {
	s := DefaultScales().Scale(Aperture, Third)
	for target := 0.9; target < 40; target *= 1.07 {
		got := s.Snap(target)
		best := math.Abs(math.Log2(got.Value / target))
		for i := 0; i < s.Len(); i++ {
			_, v := s.Entry(i)
			assert.LessOrEqual(t, best, math.Abs(math.Log2(v/target))+1e-12,
				"target %.3f snapped to %s", target, got.Entry)
		}
	}
}

func TestScale_SnapTieGoesToFirst(t *testing.T) {
	s := MustScale(ISO, Full, []string{"100", "400"})
	assert.Equal(t, "100", s.Snap(200).Entry)

	desc := MustScale(ISO, Full, []string{"400", "100"})
	assert.Equal(t, "400", desc.Snap(200).Entry)
}

func TestScale_NearestDegenerateTargets(t *testing.T) {
	shutter := DefaultScales().Scale(Shutter, Third)
	assert.Equal(t, "1/8000", shutter.Snap(0).Entry)
	assert.Equal(t, `30"`, shutter.Snap(math.Inf(1)).Entry)
	assert.Equal(t, 0.0, shutter.Snap(0).ErrorStops)

	aperture := DefaultScales().Scale(Aperture, Full)
	assert.Equal(t, "f/1", aperture.Snap(0).Entry)
	assert.Equal(t, "f/32", aperture.Snap(math.Inf(1)).Entry)
}

func TestScale_SnapErrorStops(t *testing.T) {
	s := DefaultScales().Scale(ISO, Full)
	got := s.Snap(1666.7)
	assert.Equal(t, "1600", got.Entry)
	assert.InDelta(t, math.Log2(1600/1666.7), got.ErrorStops, 1e-9)
}

func TestScale_SnapWithin(t *testing.T) {
	s := DefaultScales().Scale(Shutter, Third)

	t.Run("inside range", func(t *testing.T) {
		got, d := s.SnapWithin(0.008, DefaultShutterTolerance)
		assert.Nil(t, d)
		assert.Equal(t, "1/125", got.Entry)
	})

	t.Run("within tolerance", func(t *testing.T) {
		got, d := s.SnapWithin(40, DefaultShutterTolerance)
		assert.Nil(t, d)
		assert.Equal(t, `30"`, got.Entry)
	})

	t.Run("five minutes", func(t *testing.T) {
		got, d := s.SnapWithin(300, DefaultShutterTolerance)
		require.NotNil(t, d)
		assert.Equal(t, `30"`, got.Entry)
		assert.Equal(t, ParameterLimitExceeded, d.Kind)
		assert.Equal(t, "shutter", d.Axis)
		assert.Equal(t, `300"`, d.Requested)
		assert.Equal(t, `30"`, d.Nearest)
		assert.InDelta(t, -3.32, d.Stops, 0.01)
		assert.Contains(t, d.Message, "darker")
	})

	t.Run("too fast", func(t *testing.T) {
		got, d := s.SnapWithin(1.0/20000, DefaultShutterTolerance)
		require.NotNil(t, d)
		assert.Equal(t, "1/8000", got.Entry)
		assert.Equal(t, "1/20000", d.Requested)
		assert.Greater(t, d.Stops, 0.0)
	})

	t.Run("tolerance below one is exact range", func(t *testing.T) {
		_, d := s.SnapWithin(31, 0.5)
		assert.NotNil(t, d)
	})
}

func TestScale_MaxGapStops(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultScales().Scale(ISO, Full).MaxGapStops(), 1e-9)
	assert.InDelta(t, 2*math.Log2(13.0/11), DefaultScales().Scale(Aperture, Third).MaxGapStops(), 1e-9)
}

func TestNewScaleSet_Missing(t *testing.T) {
	_, err := NewScaleSet(MustScale(ISO, Full, []string{"100"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "aperture/full")
	assert.Contains(t, err.Error(), "shutter/third")
}

func TestScaleSet_With(t *testing.T) {
	custom := MustScale(ISO, Third, []string{"100", "200", "400", "800", "1600", "3200"})
	set, err := DefaultScales().With(custom)
	require.NoError(t, err)

	assert.Equal(t, "3200", set.Scale(ISO, Third).MaxEntry())
	assert.Equal(t, "25600", DefaultScales().Scale(ISO, Third).MaxEntry(), "defaults must stay untouched")
	assert.Equal(t, DefaultScales().Scale(Shutter, Half), set.Scale(Shutter, Half))
}

func TestDefaultEntries(t *testing.T) {
	got := DefaultEntries(Aperture, Full)
	assert.Equal(t, DefaultScales().Scale(Aperture, Full).Entries(), got)
	got[0] = "f/0.95"
	assert.Equal(t, "f/1", DefaultEntries(Aperture, Full)[0])
}
