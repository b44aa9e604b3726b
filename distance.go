package mahalanobis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DistanceMetric provides distance computation plus a cheaper reduced form
// that preserves ordering (e.g., squared distances skip the sqrt).
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
}

// EuclideanMetric computes the Euclidean (L2) distance.
// ReducedDistance returns squared Euclidean distance (skips sqrt).
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(euclideanSumOfSquares(a, b))
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	return euclideanSumOfSquares(a, b)
}

func euclideanSumOfSquares(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// MahalanobisMetric computes sqrt((a-b)ᵀ C⁻¹ (a-b)) for a fixed covariance C.
// The matrix is LU-factorized once; each distance is a pair of triangular
// solves rather than a multiplication by an explicit inverse.
//
// A MahalanobisMetric is read-only after construction and safe for concurrent
// use.
//
// Singular or ill-conditioned matrices are not rejected. Degenerate reports
// them; an exactly singular matrix makes every distance NaN and an
// ill-conditioned one returns whatever the solve yields, which may be NaN,
// ±Inf, or numerically meaningless.
type MahalanobisMetric struct {
	dims     int
	lu       mat.LU
	cond     float64
	singular bool
}

// NewMahalanobisMetric factorizes cov for repeated distance evaluation.
func NewMahalanobisMetric(cov *Covariance) *MahalanobisMetric {
	m := &MahalanobisMetric{dims: cov.Dims()}
	m.lu.Factorize(cov.sym)
	m.cond = m.lu.Cond()

	// Solving against the zero vector reports an exactly singular
	// factorization as Condition(+Inf) without depending on the estimate.
	var probe mat.VecDense
	err := m.lu.SolveVecTo(&probe, false, mat.NewVecDense(m.dims, nil))
	var cond mat.Condition
	if errors.As(err, &cond) && math.IsInf(float64(cond), 1) {
		m.singular = true
	}
	if math.IsInf(m.cond, 1) || math.IsNaN(m.cond) {
		m.singular = true
	}
	if m.singular {
		m.cond = math.Inf(1)
	}
	return m
}

// Dims returns the dimensionality the metric accepts.
func (m *MahalanobisMetric) Dims() int { return m.dims }

// Cond returns the estimated condition number of the covariance matrix.
// +Inf means the matrix is exactly singular.
func (m *MahalanobisMetric) Cond() float64 { return m.cond }

// Degenerate reports whether the covariance is singular or too
// ill-conditioned for its inverse to be trusted.
func (m *MahalanobisMetric) Degenerate() bool {
	return m.singular || m.cond > mat.ConditionTolerance
}

func (m *MahalanobisMetric) Distance(a, b []float64) float64 {
	return math.Sqrt(m.ReducedDistance(a, b))
}

// ReducedDistance returns the squared Mahalanobis distance.
func (m *MahalanobisMetric) ReducedDistance(a, b []float64) float64 {
	if m.singular {
		return math.NaN()
	}

	diff := make([]float64, m.dims)
	for i := range diff {
		diff[i] = a[i] - b[i]
	}
	d := mat.NewVecDense(m.dims, diff)

	var x mat.VecDense
	if err := m.lu.SolveVecTo(&x, false, d); err != nil {
		// A Condition error still carries a computed solution.
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return math.NaN()
		}
	}
	return mat.Dot(d, &x)
}

// Distance returns the Mahalanobis distance between a and b under cov.
// It factorizes cov on every call; build a MahalanobisMetric to score many
// points against the same matrix.
func Distance(a, b []float64, cov *Covariance) (float64, error) {
	dims := cov.Dims()
	if err := validatePoint(a, dims); err != nil {
		return 0, err
	}
	if err := validatePoint(b, dims); err != nil {
		return 0, err
	}
	return NewMahalanobisMetric(cov).Distance(a, b), nil
}
