package mahalanobis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeCase_IdenticalPoints(t *testing.T) {
	data := [][]float64{{3, 3}, {3, 3}, {3, 3}, {3, 3}}
	cfg := DefaultConfig()
	cfg.Percentage = 100

	r, err := Run(data, []float64{3, 3}, cfg)
	require.NoError(t, err)
	assert.True(t, r.Degenerate)
	assert.Equal(t, [][]float64{{0, 0}, {0, 0}}, r.Covariance.Rows())
	assert.Equal(t, 0, r.SelectedCount())
	for _, d := range r.Distances() {
		assert.True(t, math.IsNaN(d))
	}
}

func TestEdgeCase_OneDimension(t *testing.T) {
	cov, err := EstimateCovariance([][]float64{{0}, {2}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cov.At(0, 0))

	d, err := Distance([]float64{0}, []float64{2}, cov)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, d, floatTol)
}

func TestEdgeCase_ZeroPercentSelectsNearest(t *testing.T) {
	data := [][]float64{{5}, {1}, {9}, {3}, {7}}
	cfg := DefaultConfig()
	cfg.Percentage = 0

	r, err := Run(data, []float64{2.9}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, r.ThresholdIndex)
	assert.Equal(t, []bool{false, false, false, true, false}, selectedFlags(r.Classification))
}

func TestEdgeCase_ReferenceOutsideData(t *testing.T) {
	data := generateBenchData(200, 2)
	cfg := DefaultConfig()
	cfg.Percentage = 25

	r, err := Run(data, []float64{1e6, -1e6}, cfg)
	require.NoError(t, err)
	assert.Equal(t, ThresholdIndex(200, 25)+1, r.SelectedCount())
	for _, p := range r.Points {
		assert.Greater(t, p.Distance, 0.0)
	}
}

func TestEdgeCase_HighDimension(t *testing.T) {
	data := generateBenchData(500, 10)
	cfg := DefaultConfig()
	cfg.SubsampleSize = 250
	cfg.SubsampleMethod = MethodSystematic

	r, err := Run(data, data[0], cfg)
	require.NoError(t, err)
	assert.False(t, r.Degenerate)
	assert.Equal(t, 10, r.Covariance.Dims())
	assert.Equal(t, 250, r.WorkingSetSize)
	assert.Equal(t, 0.0, r.Points[0].Distance)
	assert.True(t, r.Points[0].Selected)
}
