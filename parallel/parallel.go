// Package parallel provides functions for executing fork/join
// computations over ranges on a worker pool.
package parallel

import (
	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/internal"
	"github.com/exascience/forkcalc/pool"
	"github.com/exascience/forkcalc/sequential"
)

/*
Do receives two thunks and executes them in parallel on p.

The left thunk is submitted to the pool, the right thunk is invoked on
the calling goroutine, and Do then waits for the left thunk. Do returns
only when both thunks have terminated, returning the left-most error
value that is different from nil.

If one or both thunks panic, Do eventually panics with the left-most
recovered panic value, annotated with the stack trace of the goroutine
that panicked, but only after both thunks have terminated.

If p is nil, both thunks are executed sequentially.
*/
func Do(p *pool.Pool, left, right forkcalc.Thunk) (err error) {
	if p == nil {
		return sequential.Do(left, right)
	}
	f := p.Submit(left)
	var err1 error
	var p1 interface{}
	func() {
		defer func() {
			p1 = internal.WrapPanic(recover())
		}()
		err1 = p.RunInline(right)
	}()
	err0 := p.Await(f)
	if p1 != nil {
		panic(p1)
	}
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
including low but excluding high.

A range of size n > threshold is split at low + n/2, so the left half
never receives more elements than the right half. Both halves are
executed as by Do: the left half on the pool, the right half on the
current goroutine. The range function is invoked exactly once for each
resulting non-empty subrange, and the subranges form a disjoint cover
of the full range. An empty range does not invoke f at all.

A threshold below 1 is treated as 1. The whole computation is started
with p.Invoke, and Range returns only when all range functions have
terminated, returning the left-most error value that is different from
nil.

If p is nil, Range behaves like sequential.Range.

Range panics if low < 0 or high < low. If one or more range function
invocations panic, Range eventually panics with the left-most recovered
panic value.
*/
func Range(p *pool.Pool, low, high, threshold int, f forkcalc.ErrRangeFunc) error {
	if p == nil {
		return sequential.Range(low, high, threshold, f)
	}
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
		return Do(p,
			func() error { return recur(low, mid) },
			func() error { return recur(mid, high) },
		)
	}
	return p.Invoke(func() error { return recur(low, high) })
}
