package gradient

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned when fewer than two samples are available.
// Callers treat it as "derivative undefined", not as a failure.
var ErrInsufficientData = errors.New("gradient: need at least two samples")

// Compute returns the discrete derivative dvalues/dtimes at every sample.
//
// Interior points use the second-order central difference weighted for
// non-uniform spacing; the two boundary points use a first-order one-sided
// difference. This matches standard numerical-gradient semantics, so the
// result is bit-reproducible for identical input.
//
// times must be non-decreasing and the same length as values. Adjacent equal
// timestamps produce an infinite derivative at that point, mirroring the
// reference scheme.
func Compute(values, times []float64) ([]float64, error) {
	if len(values) != len(times) {
		return nil, fmt.Errorf("gradient: length mismatch: %d values vs %d times", len(values), len(times))
	}
	n := len(values)
	if n < 2 {
		return nil, ErrInsufficientData
	}

	out := make([]float64, n)

	// Forward difference at the left edge, backward at the right.
	out[0] = (values[1] - values[0]) / (times[1] - times[0])
	out[n-1] = (values[n-1] - values[n-2]) / (times[n-1] - times[n-2])

	for i := 1; i < n-1; i++ {
		hd := times[i] - times[i-1]
		hs := times[i+1] - times[i]
		out[i] = (hd*hd*values[i+1] + (hs*hs-hd*hd)*values[i] - hs*hs*values[i-1]) /
			(hd * hs * (hd + hs))
	}
	return out, nil
}
