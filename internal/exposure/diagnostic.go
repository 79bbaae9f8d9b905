package exposure

import (
	"fmt"
	"strings"
)

// Kind classifies a non-fatal diagnostic.
type Kind int

const (
	// ParameterLimitExceeded means the ideal value of the solved axis lies
	// beyond what its scale can represent; the nearest entry was used.
	ParameterLimitExceeded Kind = iota + 1
	// Overexposed means the final triple's EV is above the brightest scene the
	// scales can expose correctly.
	Overexposed
	// Underexposed means the final triple's EV is below the darkest scene the
	// scales can expose correctly.
	Underexposed
)

func (k Kind) String() string {
	switch k {
	case ParameterLimitExceeded:
		return "parameter_limit_exceeded"
	case Overexposed:
		return "overexposed"
	case Underexposed:
		return "underexposed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic describes how a result deviates from what was asked for.
type Diagnostic struct {
	Kind Kind `json:"kind"`
	// Axis is set for ParameterLimitExceeded.
	Axis string `json:"axis,omitempty"`
	// Requested is the unsnapped value in notation.
	Requested string `json:"requested,omitempty"`
	// Nearest is the achievable scale entry substituted for Requested.
	Nearest string `json:"nearest,omitempty"`
	// Stops is the magnitude of the deviation. For ParameterLimitExceeded it
	// is the signed light gained by the substitution; for Overexposed and
	// Underexposed it is the EV surplus or deficit.
	Stops   float64 `json:"stops"`
	Message string  `json:"message"`
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
}

// Diagnostics accumulates the soft warnings of one solve.
type Diagnostics []Diagnostic

// Has reports whether a diagnostic of kind k is present.
func (ds Diagnostics) Has(k Kind) bool {
	_, ok := ds.Find(k)
	return ok
}

// Find returns the first diagnostic of kind k.
func (ds Diagnostics) Find(k Kind) (Diagnostic, bool) {
	for _, d := range ds {
		if d.Kind == k {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// String joins all diagnostics with "; ".
func (ds Diagnostics) String() string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, "; ")
}
