package engine

import (
	"errors"
	"fmt"
)

// ErrEmptyInput marks an aggregation asked to summarize zero values.
// Callers treat it as "nothing to display", not as a failure.
var ErrEmptyInput = errors.New("no values to aggregate")

// RangeError reports a numeric filter range whose minimum exceeds its
// maximum. Validation rejects the constraint before any row is touched.
type RangeError struct {
	Field string
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s range: min %g exceeds max %g", e.Field, e.Min, e.Max)
}
