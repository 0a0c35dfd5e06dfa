// Package sequential provides sequential implementations of the
// functions provided by the parallel package. They produce exactly the
// same subranges in a deterministic order, which makes them the baseline
// that parallel results are compared against in tests, and useful for
// debugging.
package sequential

import (
	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/internal"
)

// Do receives two thunks and executes them sequentially, left first,
// returning the left-most error value that is different from nil.
func Do(left, right forkcalc.Thunk) (err error) {
	err0 := left()
	err1 := right()
	if err0 != nil {
		err = err0
	} else {
		err = err1
	}
	return
}

/*
Range receives a range, a threshold, and a range function f, and
divides the range in halves until the size of a subrange is at most
the threshold, covering the half-open interval from low to high,
including low but excluding high. The range function is invoked for
each resulting subrange sequentially, in increasing order.

The subranges are the same as those produced by parallel.Range. An
empty range does not invoke f at all, and a threshold below 1 is
treated as 1.

Range returns the left-most error value that is different from nil.

Range panics if low < 0 or high < low.
*/
func Range(low, high, threshold int, f forkcalc.ErrRangeFunc) error {
	internal.CheckRange(low, high)
	if low == high {
		return nil
	}
	threshold = forkcalc.EffectiveThreshold(threshold)
	var recur func(int, int) error
	recur = func(low, high int) error {
		if internal.IsLeaf(low, high, threshold) {
			return f(low, high)
		}
		mid := internal.Midpoint(low, high)
		return Do(
			func() error { return recur(low, mid) },
			func() error { return recur(mid, high) },
		)
	}
	return recur(low, high)
}
