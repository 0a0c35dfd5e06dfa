package main

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/exascience/forkcalc"
	"github.com/exascience/forkcalc/input"
	"github.com/exascience/forkcalc/poly"
)

type polyOptions struct {
	coeffs    string
	xs        string
	xFile     string
	threshold int
}

// values returns the coefficients and samples from the flags, prompting on
// the command's input for whatever was not given.
func (o *polyOptions) values(cmd *cobra.Command) (coeffs, xs []float64, err error) {
	var scanner *bufio.Scanner
	ask := func(question, retry string) (string, error) {
		if scanner == nil {
			scanner = bufio.NewScanner(cmd.InOrStdin())
		}
		return input.Prompt(cmd.OutOrStdout(), scanner, question, retry)
	}

	text := o.coeffs
	if text == "" {
		text, err = ask(
			"Enter a set of polynomial coefficients (space separated):",
			"Enter a non-empty set of polynomial coefficients (space separated):",
		)
		if err != nil {
			return nil, nil, err
		}
	}
	if coeffs, err = input.ParseFields(text); err != nil {
		return nil, nil, fmt.Errorf("coefficients: %w", err)
	}

	switch {
	case o.xFile != "":
		xs, err = input.ReadFile(o.xFile)
	case o.xs != "":
		xs, err = input.ParseFields(o.xs)
	default:
		text, err = ask(
			"Enter a set of x values to evaluate (space separated):",
			"Enter a non-empty set of x values (space separated):",
		)
		if err != nil {
			return nil, nil, err
		}
		xs, err = input.ParseFields(text)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("x values: %w", err)
	}
	return coeffs, xs, nil
}

func newPolyCommand(a *app) *cobra.Command {
	o := &polyOptions{}
	cmd := &cobra.Command{
		Use:   "poly",
		Short: "Evaluate a polynomial at many x values",
		Long: `Evaluate a polynomial at many x values.

Coefficients are ordered from the highest degree down to the constant
term, so "1 0 -1" is x^2 - 1. Values that are not given as flags are
read interactively from standard input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if o.xs != "" && o.xFile != "" {
				return errors.New("--x and --x-file are mutually exclusive")
			}
			coeffs, xs, err := o.values(cmd)
			if err != nil {
				return err
			}
			if err := a.setup(cmd); err != nil {
				return err
			}
			defer a.teardown()

			threshold := o.threshold
			if threshold <= 0 {
				threshold = forkcalc.ComputeThreshold(len(xs))
			}

			start := time.Now()
			k := poly.NewKernel(coeffs, xs, threshold)
			if err := k.Run(a.pool); err != nil {
				return err
			}
			elapsed := time.Since(start)

			a.log.Info("evaluated polynomial",
				zap.String("mode", a.mode()),
				zap.Int("degree", len(coeffs)-1),
				zap.Int("samples", len(xs)),
				zap.Int("threshold", k.Threshold()),
				zap.Duration("elapsed", elapsed),
			)
			out := cmd.OutOrStdout()
			for i, y := range k.Result() {
				fmt.Fprintf(out, "f(%v) = %v\n", xs[i], y)
			}
			fmt.Fprintf(out, "Time taken (%s): %d ms\n", a.mode(), elapsed.Milliseconds())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&o.coeffs, "coeffs", "", "space separated coefficients, highest degree first")
	flags.StringVar(&o.xs, "x", "", "space separated x values")
	flags.StringVar(&o.xFile, "x-file", "", "file with one x value per line")
	flags.IntVar(&o.threshold, "threshold", 0, "samples per leaf (0 uses 10% of the samples)")
	return cmd
}
