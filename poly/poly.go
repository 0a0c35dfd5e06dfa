/*
Package poly evaluates a polynomial at many sample points in parallel
by blocks of indices.

Coefficients are ordered from the highest degree down to the constant
term, so coeffs[0] is the coefficient of x^(len(coeffs)-1).
*/
package poly

import (
	"math"

	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/internal"
	"github.com/exascience/forkcalc/parallel"
	"github.com/exascience/forkcalc/pool"
)

// A Kernel evaluates a polynomial at a vector of samples, one block of
// indices at a time.
type Kernel struct {
	coeffs, xs []float64
	results    []float64
	threshold  int
}

// NewKernel prepares the evaluation of coeffs at xs with the given
// threshold, allocating a zeroed result of len(xs). A threshold below 1 is
// treated as 1.
func NewKernel(coeffs, xs []float64, threshold int) *Kernel {
	return &Kernel{
		coeffs:    coeffs,
		xs:        xs,
		results:   make([]float64, len(xs)),
		threshold: forkcalc.EffectiveThreshold(threshold),
	}
}

// Threshold returns the maximum number of samples evaluated by a single leaf.
func (k *Kernel) Threshold() int {
	return k.threshold
}

// Len returns the number of samples.
func (k *Kernel) Len() int {
	return len(k.xs)
}

/*
ComputeIndices evaluates the polynomial at the samples from low to
high, with 0 <= low <= high <= k.Len(), and stores the values at the
same indices of the result.

Each value is the sum of coeffs[j] * math.Pow(x, len(coeffs)-1-j) in
increasing j. With no coefficients, every value is 0.
*/
func (k *Kernel) ComputeIndices(low, high int) error {
	internal.CheckRange(low, high)
	xs := k.xs[low:high]
	results := k.results[low:high:high]
	for i, x := range xs {
		results[i] = eval(k.coeffs, x)
	}
	return nil
}

func eval(coeffs []float64, x float64) (result float64) {
	degree := len(coeffs) - 1
	for j, c := range coeffs {
		result += float64(c * math.Pow(x, float64(degree-j)))
	}
	return
}

// Run evaluates all samples on p, or sequentially if p is nil.
func (k *Kernel) Run(p *pool.Pool) error {
	return parallel.Range(p, 0, len(k.xs), k.threshold, k.ComputeIndices)
}

// Result returns the result vector. It shares its storage with the kernel.
func (k *Kernel) Result() []float64 {
	return k.results
}

/*
Evaluate returns the values of the polynomial with the given
coefficients at each of the samples xs, computed on p. If p is nil,
the values are computed sequentially.

The threshold is forkcalc.ComputeThreshold of len(xs). The inputs are
not modified.
*/
func Evaluate(p *pool.Pool, coeffs, xs []float64) ([]float64, error) {
	k := NewKernel(coeffs, xs, forkcalc.ComputeThreshold(len(xs)))
	if err := k.Run(p); err != nil {
		return nil, err
	}
	return k.Result(), nil
}

// EvaluateSequential returns the values of the polynomial at xs computed
// without a pool. It is the baseline that Evaluate is checked against.
func EvaluateSequential(coeffs, xs []float64) ([]float64, error) {
	return Evaluate(nil, coeffs, xs)
}

/*
Horner returns the value of the polynomial at x using Horner's
method.

Horner needs one multiplication per coefficient instead of a call to
math.Pow, but its rounding differs, so its results can differ from
those of Evaluate in the last bits. Evaluate never uses it.
*/
func Horner(coeffs []float64, x float64) (result float64) {
	for _, c := range coeffs {
		result = float64(result*x) + c
	}
	return
}
