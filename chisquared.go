package mahalanobis

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ChiSquaredRadius returns the Mahalanobis distance that encloses the given
// fraction of a dims-dimensional normal distribution. The squared distance of
// a normal sample follows a chi-squared distribution with dims degrees of
// freedom. confidence must lie in [0, 1]; other values yield NaN.
func ChiSquaredRadius(dims int, confidence float64) float64 {
	if dims < 1 || confidence < 0 || confidence > 1 {
		return math.NaN()
	}
	return math.Sqrt(distuv.ChiSquared{K: float64(dims)}.Quantile(confidence))
}

// TailProbability returns the probability that a dims-dimensional normal
// sample lies farther than distance d from the mean, i.e. 1 - CDF(d²).
// NaN distances yield NaN.
func TailProbability(d float64, dims int) float64 {
	if dims < 1 || math.IsNaN(d) {
		return math.NaN()
	}
	return distuv.ChiSquared{K: float64(dims)}.Survival(d * d)
}
