package mahalanobis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Covariance is an immutable dims×dims sample covariance matrix. Only one
// triangle is stored, so At(i, j) == At(j, i) holds exactly.
type Covariance struct {
	sym  *mat.SymDense
	mean []float64
}

// EstimateCovariance computes the unbiased (n-1 normalized) sample covariance
// of data. Every point must have exactly dims coordinates and data must hold
// at least two points.
func EstimateCovariance(data [][]float64, dims int) (*Covariance, error) {
	if dims < 1 {
		return nil, ErrInvalidDimension
	}
	if len(data) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewPoints, len(data))
	}

	n := len(data)
	flat := make([]float64, n*dims)
	for i, row := range data {
		if len(row) != dims {
			return nil, &DimensionMismatchError{Expected: dims, Actual: len(row), Index: i}
		}
		copy(flat[i*dims:], row)
	}
	x := mat.NewDense(n, dims, flat)

	mean := make([]float64, dims)
	col := make([]float64, n)
	for j := range mean {
		mat.Col(col, j, x)
		mean[j] = stat.Mean(col, nil)
	}

	var sym mat.SymDense
	stat.CovarianceMatrix(&sym, x, nil)

	return &Covariance{sym: &sym, mean: mean}, nil
}

// NewCovariance wraps a caller-supplied matrix. rows must be square and
// exactly symmetric. The input is copied.
func NewCovariance(rows [][]float64) (*Covariance, error) {
	dims := len(rows)
	if dims == 0 {
		return nil, ErrInvalidDimension
	}
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNotSymmetric, i, len(row), dims)
		}
	}

	sym := mat.NewSymDense(dims, nil)
	for i := 0; i < dims; i++ {
		for j := i; j < dims; j++ {
			if rows[i][j] != rows[j][i] {
				return nil, fmt.Errorf("%w: [%d][%d]=%g, [%d][%d]=%g",
					ErrNotSymmetric, i, j, rows[i][j], j, i, rows[j][i])
			}
			sym.SetSym(i, j, rows[i][j])
		}
	}
	return &Covariance{sym: sym}, nil
}

// Dims returns the matrix order.
func (c *Covariance) Dims() int { return c.sym.SymmetricDim() }

// At returns the element at row i, column j.
func (c *Covariance) At(i, j int) float64 { return c.sym.At(i, j) }

// Rows returns a fresh [][]float64 copy of the matrix.
func (c *Covariance) Rows() [][]float64 {
	dims := c.Dims()
	rows := make([][]float64, dims)
	for i := range rows {
		rows[i] = make([]float64, dims)
		for j := range rows[i] {
			rows[i][j] = c.sym.At(i, j)
		}
	}
	return rows
}

// Mean returns a copy of the per-dimension mean the matrix was estimated
// around, or nil for matrices built with NewCovariance.
func (c *Covariance) Mean() []float64 {
	if c.mean == nil {
		return nil
	}
	out := make([]float64, len(c.mean))
	copy(out, c.mean)
	return out
}

// SymDense returns a copy of the matrix as a gonum SymDense.
func (c *Covariance) SymDense() *mat.SymDense {
	out := mat.NewSymDense(c.Dims(), nil)
	out.CopySym(c.sym)
	return out
}
