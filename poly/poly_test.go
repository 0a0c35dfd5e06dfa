package poly_test

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/parallel"
	"github.com/exascience/forkcalc/poly"
	"github.com/exascience/forkcalc/pool"
)

func randomSlice(rnd *rand.Rand, n int, scale float64) []float64 {
	result := make([]float64, n)
	for i := range result {
		result[i] = (rnd.Float64()*2 - 1) * scale
	}
	return result
}

// powSum evaluates coeffs at x term by term with math.Pow, highest degree
// first, independently of the kernel.
func powSum(coeffs []float64, x float64) float64 {
	var sum float64
	degree := len(coeffs) - 1
	for j, c := range coeffs {
		sum += float64(c * math.Pow(x, float64(degree-j)))
	}
	return sum
}

func TestEvaluateExample(t *testing.T) {
	p := pool.New(2)
	defer p.Close()

	results, err := poly.Evaluate(p, []float64{1, 0, -1}, []float64{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, 0, 3, 8}, results)
}

func TestEvaluateDegenerate(t *testing.T) {
	p := pool.New(2)
	defer p.Close()

	results, err := poly.Evaluate(p, nil, []float64{1, -2, 3.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, results)

	results, err = poly.Evaluate(p, []float64{4}, []float64{0, 100})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 4}, results)

	results, err = poly.Evaluate(p, []float64{1, 2}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, p.Stats().Submitted)
}

func TestEvaluateDoesNotModifyInputs(t *testing.T) {
	coeffs := []float64{2, -3, 0.5}
	xs := []float64{-1, 0, 1, 2}
	coeffsCopy := append([]float64(nil), coeffs...)
	xsCopy := append([]float64(nil), xs...)
	_, err := poly.EvaluateSequential(coeffs, xs)
	require.NoError(t, err)
	assert.Equal(t, coeffsCopy, coeffs)
	assert.Equal(t, xsCopy, xs)
}

func TestEvaluateMatchesSequential(t *testing.T) {
	p := pool.New(4)
	defer p.Close()
	rnd := rand.New(rand.NewSource(5))

	for _, n := range []int{1, 9, 10, 11, 100, 1001, 10000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			coeffs := randomSlice(rnd, 7, 3)
			xs := randomSlice(rnd, n, 2)

			par, err := poly.Evaluate(p, coeffs, xs)
			require.NoError(t, err)
			seq, err := poly.EvaluateSequential(coeffs, xs)
			require.NoError(t, err)
			assert.Equal(t, seq, par)

			again, err := poly.Evaluate(p, coeffs, xs)
			require.NoError(t, err)
			assert.Equal(t, par, again)

			for i, x := range xs {
				assert.InDelta(t, poly.Horner(coeffs, x), par[i], 1e-9)
			}
		})
	}
}

func TestEvaluateSpecialValues(t *testing.T) {
	results, err := poly.EvaluateSequential([]float64{1, 0}, []float64{math.NaN(), math.Inf(-1)})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(results[0]))
	assert.True(t, math.IsInf(results[1], -1))
}

func TestKernelLeaves(t *testing.T) {
	p := pool.New(3)
	defer p.Close()

	xs := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i)
	}
	k := poly.NewKernel([]float64{1, 1}, xs, forkcalc.ComputeThreshold(len(xs)))
	require.Equal(t, 5, k.Threshold())
	require.Equal(t, 50, k.Len())

	var mutex sync.Mutex
	var leaves [][2]int
	require.NoError(t, parallel.Range(p, 0, k.Len(), k.Threshold(), func(low, high int) error {
		mutex.Lock()
		leaves = append(leaves, [2]int{low, high})
		mutex.Unlock()
		return k.ComputeIndices(low, high)
	}))

	sort.Slice(leaves, func(i, j int) bool { return leaves[i][0] < leaves[j][0] })
	next := 0
	for _, leaf := range leaves {
		assert.Equal(t, next, leaf[0])
		assert.LessOrEqual(t, leaf[1]-leaf[0], 5)
		next = leaf[1]
	}
	assert.Equal(t, 50, next)
	for i, y := range k.Result() {
		assert.Equal(t, float64(i+1), y)
	}
}

func TestHorner(t *testing.T) {
	assert.Equal(t, 0.0, poly.Horner(nil, 3))
	assert.Equal(t, 8.0, poly.Horner([]float64{1, 0, -1}, 3))
	assert.Equal(t, 14.0, poly.Horner([]float64{2, 3, 4, 5}, 1))
	assert.Equal(t, 41.0, poly.Horner([]float64{2, 3, 4, 5}, 2))
}

func ExampleEvaluate() {
	p := pool.New(0)
	defer p.Close()

	xs := []float64{0, 1, 2, 3}
	ys, err := poly.Evaluate(p, []float64{1, 0, -1}, xs)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, x := range xs {
		fmt.Printf("f(%v) = %v\n", x, ys[i])
	}

	// Output:
	// f(0) = -1
	// f(1) = 0
	// f(2) = 3
	// f(3) = 8
}

func BenchmarkEvaluate(b *testing.B) {
	rnd := rand.New(rand.NewSource(9))
	coeffs := randomSlice(rnd, 16, 1)
	xs := randomSlice(rnd, 1<<16, 1)

	b.Run("Sequential", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = poly.EvaluateSequential(coeffs, xs)
		}
	})

	b.Run("Parallel", func(b *testing.B) {
		p := pool.New(0)
		defer p.Close()
		for i := 0; i < b.N; i++ {
			_, _ = poly.Evaluate(p, coeffs, xs)
		}
	})
}

func TestEvaluateUsesPowerSum(t *testing.T) {
	p := pool.New(3)
	defer p.Close()
	rnd := rand.New(rand.NewSource(11))

	for _, degree := range []int{0, 1, 4, 9, 17} {
		t.Run(fmt.Sprint(degree), func(t *testing.T) {
			coeffs := randomSlice(rnd, degree+1, 5)
			xs := randomSlice(rnd, 1000, 3)
			expected := make([]float64, len(xs))
			for i, x := range xs {
				expected[i] = powSum(coeffs, x)
			}

			par, err := poly.Evaluate(p, coeffs, xs)
			require.NoError(t, err)
			seq, err := poly.EvaluateSequential(coeffs, xs)
			require.NoError(t, err)
			for i := range xs {
				assert.Equal(t, math.Float64bits(expected[i]), math.Float64bits(par[i]), "x = %v", xs[i])
				assert.Equal(t, math.Float64bits(expected[i]), math.Float64bits(seq[i]), "x = %v", xs[i])
			}
		})
	}
}
