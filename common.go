package forkcalc

import (
	"fmt"
	"math"
)

type (
	// A Thunk is a function that receives no parameters and returns
	// only an error value or nil.
	Thunk func() error

	// An ErrRangeFunc is a function that receives a range from low to
	// high, with 0 <= low <= high, and returns an error value or nil.
	ErrRangeFunc func(low, high int) error
)

// ThresholdFraction is the share of the total input size below which a
// range is no longer split.
const ThresholdFraction = 0.10

/*
ComputeThreshold determines the threshold for a top-level invocation
over an input of the given size.

The return value is max(1, round(size * ThresholdFraction)), where
halves are rounded away from zero. The threshold is computed once per
invocation and passed down unchanged to every subrange.

ComputeThreshold panics if size < 0.
*/
func ComputeThreshold(size int) int {
	if size < 0 {
		panic(fmt.Sprintf("invalid size: %v", size))
	}
	return EffectiveThreshold(int(math.Round(float64(size) * ThresholdFraction)))
}

// EffectiveThreshold clamps threshold to at least 1, so that every split
// strictly reduces the size of a range and recursion terminates.
func EffectiveThreshold(threshold int) int {
	if threshold < 1 {
		return 1
	}
	return threshold
}
