package mahalanobis

// validateDataset checks that data is non-empty and that every point has the
// same, positive dimensionality. It returns that dimensionality.
func validateDataset(data [][]float64) (int, error) {
	if len(data) == 0 {
		return 0, ErrEmptyDataset
	}
	dims := len(data[0])
	if dims < 1 {
		return 0, ErrInvalidDimension
	}
	for i, p := range data {
		if len(p) != dims {
			return 0, &DimensionMismatchError{Expected: dims, Actual: len(p), Index: i}
		}
	}
	return dims, nil
}

// validatePoint checks a standalone point (reference or distance argument).
func validatePoint(p []float64, dims int) error {
	if len(p) != dims {
		return &DimensionMismatchError{Expected: dims, Actual: len(p), Index: -1}
	}
	return nil
}
