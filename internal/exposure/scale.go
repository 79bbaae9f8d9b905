package exposure

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
)

// Scale is an ordered, immutable list of the settings a camera offers for one
// axis at one granularity. Entries are strictly monotonic in value; the first
// and last entries bound what the scale can represent.
type Scale struct {
	axis        Axis
	granularity Granularity
	entries     []string
	values      []float64
	min, max    int
	maxGap      float64
}

// NewScale parses entries and validates that they form a strictly monotonic
// sequence.
func NewScale(axis Axis, g Granularity, entries []string) (*Scale, error) {
	if !axis.valid() {
		return nil, invalidf("unknown axis %v", axis)
	}
	if !g.valid() {
		return nil, invalidf("unknown granularity %v", g)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s/%s scale is empty", axis, g)
	}

	s := &Scale{
		axis:        axis,
		granularity: g,
		entries:     make([]string, len(entries)),
		values:      make([]float64, len(entries)),
	}
	for i, e := range entries {
		v, err := Parse(axis, e)
		if err != nil {
			return nil, fmt.Errorf("%s/%s scale entry %d: %w", axis, g, i, err)
		}
		s.entries[i] = strings.TrimSpace(e)
		s.values[i] = v
	}

	if len(s.values) > 1 {
		ascending := s.values[1] > s.values[0]
		for i := 1; i < len(s.values); i++ {
			prev, cur := s.values[i-1], s.values[i]
			if cur == prev || (cur > prev) != ascending {
				return nil, fmt.Errorf("%s/%s scale is not strictly monotonic at entry %d (%s)",
					axis, g, i, s.entries[i])
			}
			gap, _ := Stops(axis, prev, cur)
			s.maxGap = math.Max(s.maxGap, math.Abs(gap))
		}
		if !ascending {
			s.min, s.max = len(s.values)-1, 0
		} else {
			s.min, s.max = 0, len(s.values)-1
		}
	}

	return s, nil
}

// MustScale is NewScale for static tables; it panics on invalid input.
func MustScale(axis Axis, g Granularity, entries []string) *Scale {
	s, err := NewScale(axis, g, entries)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Scale) Axis() Axis               { return s.axis }
func (s *Scale) Granularity() Granularity { return s.granularity }
func (s *Scale) Len() int                 { return len(s.entries) }

// Entries returns a copy of the notated entries in scale order.
func (s *Scale) Entries() []string {
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry returns the notation and value at index i.
func (s *Scale) Entry(i int) (string, float64) {
	return s.entries[i], s.values[i]
}

// Min returns the smallest value on the scale.
func (s *Scale) Min() float64 { return s.values[s.min] }

// Max returns the largest value on the scale.
func (s *Scale) Max() float64 { return s.values[s.max] }

// MinEntry returns the notation of the smallest value.
func (s *Scale) MinEntry() string { return s.entries[s.min] }

// MaxEntry returns the notation of the largest value.
func (s *Scale) MaxEntry() string { return s.entries[s.max] }

// MaxGapStops is the widest distance, in stops of light, between neighbouring
// entries. Snapping a value inside the scale's range never errs by more than
// half of it.
func (s *Scale) MaxGapStops() float64 { return s.maxGap }

type scaleKey struct {
	axis        Axis
	granularity Granularity
}

// ScaleSet holds one Scale for every axis and granularity. It is immutable.
type ScaleSet struct {
	scales map[scaleKey]*Scale
}

// NewScaleSet builds a set from scales. Every axis must be present at every
// granularity; when a combination is given twice the last one wins.
func NewScaleSet(scales ...*Scale) (*ScaleSet, error) {
	set := &ScaleSet{scales: make(map[scaleKey]*Scale, 9)}
	for _, s := range scales {
		if s == nil {
			continue
		}
		set.scales[scaleKey{s.axis, s.granularity}] = s
	}

	var missing []string
	for _, axis := range Axes() {
		for _, g := range Granularities() {
			if _, ok := set.scales[scaleKey{axis, g}]; !ok {
				missing = append(missing, axis.String()+"/"+g.String())
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("scale set is missing %s", strings.Join(missing, ", "))
	}
	return set, nil
}

// With returns a new set where the given scales replace their counterparts.
func (ss *ScaleSet) With(scales ...*Scale) (*ScaleSet, error) {
	all := make([]*Scale, 0, len(ss.scales)+len(scales))
	for _, s := range ss.scales {
		all = append(all, s)
	}
	return NewScaleSet(append(all, scales...)...)
}

// Scale returns the scale for axis at granularity g, or nil if g or axis is
// unknown.
func (ss *ScaleSet) Scale(axis Axis, g Granularity) *Scale {
	return ss.scales[scaleKey{axis, g}]
}

var defaultScales = sync.OnceValue(func() *ScaleSet {
	var scales []*Scale
	for _, axis := range Axes() {
		for _, g := range Granularities() {
			scales = append(scales, MustScale(axis, g, defaultTables[axis][g]))
		}
	}
	set, err := NewScaleSet(scales...)
	if err != nil {
		panic(err)
	}
	return set
})

// DefaultScales returns the built-in tables. They are built on first use and
// shared by every caller.
func DefaultScales() *ScaleSet {
	return defaultScales()
}

// DefaultEntries returns a copy of the built-in notation list for axis at g.
func DefaultEntries(axis Axis, g Granularity) []string {
	src := defaultTables[axis][g]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
