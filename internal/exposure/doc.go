// Package exposure implements the reciprocity exposure engine.
//
// Given a reference exposure that is known to be correct and two of the three
// target parameters (shutter speed, aperture, ISO), the engine derives the third
// so that the overall exposure value (EV) matches the reference, optionally
// shifted by an EV compensation. Computed values are snapped onto the discrete
// settings a camera offers, and requests the camera cannot honour are reported
// as diagnostics instead of failures.
//
// # Pipeline
//
// Every solve follows the same linear pipeline:
//  1. Parse the notated inputs ("1/125", "30\"", "f/2.8", "400")
//  2. Sum the light gained by the two known axes relative to the reference
//  3. Apply the opposite of that gain, plus compensation, to the unknown axis
//  4. Snap the continuous result onto the requested Scale
//  5. Check the final triple against the EV envelope of the scales
//
// # Stops
//
// A stop is a doubling or halving of the light reaching the sensor. Stop
// deltas in this package always express light gained: a positive delta is a
// brighter exposure, whichever axis carries it. Shutter speed and ISO gain one
// stop per doubling of their value; aperture gains one stop each time the
// f-number is divided by √2.
//
// # Errors and diagnostics
//
// Malformed or non-positive input is the only fatal condition; it is reported
// as a *FormatError wrapping ErrInvalidFormat. Values outside a scale's range
// and triples outside the EV envelope are returned as Diagnostics next to a
// best-effort result.
//
// # Thread Safety
//
// Scale, ScaleSet and Solver are immutable after construction and safe for
// concurrent use without locking. All functions are pure.
package exposure
