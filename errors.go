package forkcalc

import "errors"

// Every message is prefixed with "forkcalc: ". Callers match with errors.Is;
// functions returning these wrap them with context via fmt.Errorf("%w").
var (
	// ErrDimensionMismatch indicates that the inner dimensions of two
	// matrices disagree, that is a.Cols != b.Rows. It is reported before
	// any work is scheduled.
	ErrDimensionMismatch = errors.New("forkcalc: dimension mismatch")

	// ErrInvalidNumericInput indicates that a textual token could not be
	// converted into a float64.
	ErrInvalidNumericInput = errors.New("forkcalc: invalid numeric input")
)
