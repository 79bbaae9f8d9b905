package exposure

import (
	"fmt"
	"math"
)

// EV returns the ISO-adjusted exposure value log2(N²/t) − log2(ISO/100).
// Higher values admit less light.
func EV(v Values) float64 {
	return math.Log2(v.Aperture*v.Aperture/v.Shutter) - math.Log2(v.ISO/100)
}

// ExposureValue parses s and returns its EV.
func ExposureValue(s Setting) (float64, error) {
	v, err := ParseSetting("", s)
	if err != nil {
		return 0, err
	}
	return EV(v), nil
}

// StopsBetween returns the light gained by switching from one setting to the
// other. A positive result means to is the brighter exposure.
func StopsBetween(from, to Setting) (float64, error) {
	a, err := ParseSetting("from", from)
	if err != nil {
		return 0, err
	}
	b, err := ParseSetting("to", to)
	if err != nil {
		return 0, err
	}
	return EV(a) - EV(b), nil
}

// Envelope is the range of EVs a ScaleSet can expose correctly at one
// granularity.
type Envelope struct {
	Granularity Granularity `json:"granularity"`
	// MinEV pairs the widest aperture, the slowest shutter and the highest ISO.
	MinEV float64 `json:"min_ev"`
	// MaxEV pairs the narrowest aperture, the fastest shutter and the lowest ISO.
	MaxEV float64 `json:"max_ev"`
}

// Envelope computes the EV envelope from the extremes of the scales at g.
func (ss *ScaleSet) Envelope(g Granularity) (Envelope, error) {
	sh, ap, iso := ss.Scale(Shutter, g), ss.Scale(Aperture, g), ss.Scale(ISO, g)
	if sh == nil || ap == nil || iso == nil {
		return Envelope{}, invalidf("unknown granularity %v", g)
	}
	return Envelope{
		Granularity: g,
		MinEV:       EV(Values{Shutter: sh.Max(), Aperture: ap.Min(), ISO: iso.Max()}),
		MaxEV:       EV(Values{Shutter: sh.Min(), Aperture: ap.Max(), ISO: iso.Min()}),
	}, nil
}

// Contains reports whether ev lies inside the envelope.
func (e Envelope) Contains(ev float64) bool {
	return ev >= e.MinEV && ev <= e.MaxEV
}

// Check returns an Overexposed or Underexposed diagnostic when ev falls
// outside the envelope, or nil.
func (e Envelope) Check(ev float64) *Diagnostic {
	switch {
	case ev > e.MaxEV:
		surplus := ev - e.MaxEV
		return &Diagnostic{
			Kind:  Overexposed,
			Stops: round2(surplus),
			Message: fmt.Sprintf("EV %.2f is %.2f stops above the %s-stop maximum of EV %.2f",
				ev, surplus, e.Granularity, e.MaxEV),
		}
	case ev < e.MinEV:
		deficit := e.MinEV - ev
		return &Diagnostic{
			Kind:  Underexposed,
			Stops: round2(deficit),
			Message: fmt.Sprintf("EV %.2f is %.2f stops below the %s-stop minimum of EV %.2f",
				ev, deficit, e.Granularity, e.MinEV),
		}
	}
	return nil
}
