// Package forkcalc provides parallel numeric kernels built on a single
// fork/join strategy: a half-open index range is split at its midpoint until
// it is no larger than a threshold, one half of every split is handed to a
// worker pool while the other half runs on the current goroutine, and leaves
// write their results into disjoint parts of a pre-allocated output.
//
// forkcalc provides the following subpackages:
//
// forkcalc/pool provides a fixed-size worker pool with futures that can be
// awaited, where a waiter runs a task itself if no worker has started it yet.
//
// forkcalc/parallel splits ranges and executes them on a pool.
//
// forkcalc/sequential provides the same range splitting executed
// sequentially, as a baseline for testing and debugging.
//
// forkcalc/matmul multiplies dense matrices by blocks of rows.
//
// forkcalc/poly evaluates a polynomial at many sample points by blocks of
// indices.
//
// forkcalc/wordcount counts the words in a directory tree, one pool task
// per file.
//
// forkcalc/input parses whitespace- and newline-separated numbers for the
// command line tool in cmd/forkcalc.
//
// The approach follows Cilk-style fork/join programming. See
// http://supertech.csail.mit.edu/papers/steal.pdf for some theoretical
// background.
package forkcalc
