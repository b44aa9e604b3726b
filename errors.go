package mahalanobis

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when an operation needs at least one point.
	ErrEmptyDataset = errors.New("mahalanobis: empty dataset")

	// ErrTooFewPoints is returned when a covariance is requested over fewer
	// than two points (the n-1 denominator would be zero).
	ErrTooFewPoints = errors.New("mahalanobis: at least 2 points are required to estimate a covariance")

	// ErrInvalidDimension is returned when dims is not positive.
	ErrInvalidDimension = errors.New("mahalanobis: dimension must be >= 1")

	// ErrNotSymmetric is returned by NewCovariance for non-square or
	// asymmetric input.
	ErrNotSymmetric = errors.New("mahalanobis: covariance matrix must be square and symmetric")

	// ErrUnknownMethod is returned when a subsampling method name is not recognized.
	ErrUnknownMethod = errors.New("mahalanobis: unknown subsample method")
)

// DimensionMismatchError reports a point whose length differs from the
// dataset dimensionality. Index is -1 when the offending point is the
// reference point or a standalone argument.
type DimensionMismatchError struct {
	Expected int
	Actual   int
	Index    int
}

func (e *DimensionMismatchError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("mahalanobis: dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("mahalanobis: dimension mismatch at point %d: expected %d, got %d", e.Index, e.Expected, e.Actual)
}
