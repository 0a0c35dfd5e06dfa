/*
Package matmul multiplies dense matrices in parallel by blocks of rows.

The rows of the left operand are split recursively as by
parallel.Range, and each leaf computes a contiguous block of rows of
the result. Leaves write only to the rows they own, so the result
needs no synchronization.
*/
package matmul

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/internal"
	"github.com/exascience/forkcalc/parallel"
	"github.com/exascience/forkcalc/pool"
)

// A Kernel computes the product of two matrices a and b, one block of rows
// at a time.
type Kernel struct {
	a, b      blas64.General
	c         []float64
	threshold int
}

func raw(m mat.Matrix) blas64.General {
	if rm, ok := m.(mat.RawMatrixer); ok {
		return rm.RawMatrix()
	}
	return mat.DenseCopyOf(m).RawMatrix()
}

/*
NewKernel prepares the multiplication of a by b with the given
threshold, allocating a zeroed result of a.Rows x b.Cols. A threshold
below 1 is treated as 1.

NewKernel returns an error matching forkcalc.ErrDimensionMismatch if
the number of columns of a differs from the number of rows of b.
*/
func NewKernel(a, b mat.Matrix, threshold int) (*Kernel, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", ar, ac, br, bc, forkcalc.ErrDimensionMismatch)
	}
	k := &Kernel{
		a:         blas64.General{Rows: ar, Cols: ac},
		b:         blas64.General{Rows: br, Cols: bc},
		c:         make([]float64, ar*bc),
		threshold: forkcalc.EffectiveThreshold(threshold),
	}
	if ar > 0 && ac > 0 {
		k.a = raw(a)
	}
	if br > 0 && bc > 0 {
		k.b = raw(b)
	}
	return k, nil
}

// Threshold returns the maximum number of rows computed by a single leaf.
func (k *Kernel) Threshold() int {
	return k.threshold
}

// Rows returns the number of rows of the result.
func (k *Kernel) Rows() int {
	return k.a.Rows
}

/*
ComputeRows computes the rows of the result from low to high, with
0 <= low <= high <= k.Rows(). For every row i and column j,
C[i][j] = sum of A[i][k] * B[k][j] over k in increasing order.

ComputeRows reads a and b, and writes only to rows low to high of the
result.
*/
func (k *Kernel) ComputeRows(low, high int) error {
	internal.CheckRange(low, high)
	cols, shared := k.b.Cols, k.a.Cols
	// the capacity limit keeps the block from reaching into rows owned by
	// other leaves
	block := k.c[low*cols : high*cols : high*cols]
	for i := low; i < high; i++ {
		aRow := k.a.Data[i*k.a.Stride : i*k.a.Stride+shared]
		cRow := block[(i-low)*cols : (i-low+1)*cols]
		for j := range cRow {
			var sum float64
			for s, av := range aRow {
				// explicit conversion prevents fusion into an FMA
				sum += float64(av * k.b.Data[s*k.b.Stride+j])
			}
			cRow[j] = sum
		}
	}
	return nil
}

// Run computes all rows of the result on p, or sequentially if p is nil.
func (k *Kernel) Run(p *pool.Pool) error {
	return parallel.Range(p, 0, k.a.Rows, k.threshold, k.ComputeRows)
}

// Result returns the result matrix. It shares its storage with the kernel.
// An empty result is returned as an empty *mat.Dense.
func (k *Kernel) Result() *mat.Dense {
	if len(k.c) == 0 {
		return &mat.Dense{}
	}
	return mat.NewDense(k.a.Rows, k.b.Cols, k.c)
}

/*
Multiply returns the product of a and b, computed on p. If p is nil,
the product is computed sequentially, in the same order.

The threshold is forkcalc.ComputeThreshold of the number of rows of a.
Multiply returns an error matching forkcalc.ErrDimensionMismatch,
without computing anything, if the number of columns of a differs from
the number of rows of b.
*/
func Multiply(p *pool.Pool, a, b mat.Matrix) (*mat.Dense, error) {
	rows, _ := a.Dims()
	k, err := NewKernel(a, b, forkcalc.ComputeThreshold(rows))
	if err != nil {
		return nil, err
	}
	if err := k.Run(p); err != nil {
		return nil, err
	}
	return k.Result(), nil
}

// MultiplySequential returns the product of a and b computed without a
// pool. It is the baseline that Multiply is checked against.
func MultiplySequential(a, b mat.Matrix) (*mat.Dense, error) {
	return Multiply(nil, a, b)
}
