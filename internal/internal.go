package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// CheckRange panics if the half-open range from low to high is invalid.
func CheckRange(low, high int) {
	if (low < 0) || (high < low) {
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	}
}

// Midpoint returns the split point of the range from low to high. The left
// half [low, mid) receives floor((high-low)/2) elements and the right half
// [mid, high) the rest.
func Midpoint(low, high int) int {
	return low + (high-low)/2
}

// IsLeaf reports whether the range from low to high is small enough to be
// computed directly for the given threshold.
func IsLeaf(low, high, threshold int) bool {
	return high-low <= threshold
}

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a recovered panic.
func WrapPanic(p interface{}) interface{} {
	if p != nil {
		s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
		if _, isError := p.(error); isError {
			r := errors.New(s)
			if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
				return runtimeError{r}
			}
			return r
		}
		return s
	}
	return nil
}
