// Command forkcalc multiplies random matrices and evaluates polynomials
// with the fork/join kernels of the forkcalc module, and reports how long
// the computation took.
//
// Usage:
//
//	forkcalc matmul --rows 50 --inner 40 --cols 50
//	forkcalc poly --coeffs "1 0 -1" --x "0 1 2 3"
//	forkcalc poly --coeffs "1 0 -1" --x-file samples.txt
//	forkcalc poly                      # prompts for coefficients and samples
//
// The log level is taken from --log-level, or from $LOG_LEVEL.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
