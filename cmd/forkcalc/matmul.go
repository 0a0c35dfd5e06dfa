package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/matmul"
)

type matmulOptions struct {
	rows, inner, cols int
	seed              int64
	threshold         int
	print             bool
}

func (o *matmulOptions) validate() error {
	var err error
	if o.rows <= 0 {
		err = errors.Join(err, fmt.Errorf("rows must be greater than 0, got %d", o.rows))
	}
	if o.inner <= 0 {
		err = errors.Join(err, fmt.Errorf("inner dimension must be greater than 0, got %d", o.inner))
	}
	if o.cols <= 0 {
		err = errors.Join(err, fmt.Errorf("cols must be greater than 0, got %d", o.cols))
	}
	return err
}

func randomMatrix(rnd *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rnd.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

func printMatrix(w io.Writer, m *mat.Dense) {
	rows, _ := m.Dims()
	fields := make([]string, 0)
	for i := 0; i < rows; i++ {
		fields = fields[:0]
		for _, v := range m.RawRowView(i) {
			fields = append(fields, strconv.FormatFloat(v, 'g', -1, 64))
		}
		fmt.Fprintln(w, strings.Join(fields, " "))
	}
}

func newMatmulCommand(a *app) *cobra.Command {
	o := &matmulOptions{}
	cmd := &cobra.Command{
		Use:   "matmul",
		Short: "Multiply two random matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.teardown()

			rnd := rand.New(rand.NewSource(o.seed))
			x := randomMatrix(rnd, o.rows, o.inner)
			y := randomMatrix(rnd, o.inner, o.cols)

			threshold := o.threshold
			if threshold <= 0 {
				threshold = forkcalc.ComputeThreshold(o.rows)
			}

			start := time.Now()
			k, err := matmul.NewKernel(x, y, threshold)
			if err != nil {
				return err
			}
			if err := k.Run(a.pool); err != nil {
				return err
			}
			elapsed := time.Since(start)

			a.log.Info("multiplied matrices",
				zap.String("mode", a.mode()),
				zap.String("shape", fmt.Sprintf("%dx%d * %dx%d", o.rows, o.inner, o.inner, o.cols)),
				zap.Int("threshold", k.Threshold()),
				zap.Duration("elapsed", elapsed),
			)
			if o.print {
				printMatrix(cmd.OutOrStdout(), k.Result())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Time taken (%s): %d ms\n", a.mode(), elapsed.Milliseconds())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&o.rows, "rows", 50, "rows of A")
	flags.IntVar(&o.inner, "inner", 40, "columns of A and rows of B")
	flags.IntVar(&o.cols, "cols", 50, "columns of B")
	flags.Int64Var(&o.seed, "seed", 1, "seed for the random matrix entries")
	flags.IntVar(&o.threshold, "threshold", 0, "rows per leaf (0 uses 10% of the rows)")
	flags.BoolVar(&o.print, "print", false, "print the product row by row")
	return cmd
}
