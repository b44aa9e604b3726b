package mahalanobis

import (
	"math"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// ClassifiedPoint is the per-point outcome of Classify.
type ClassifiedPoint struct {
	Distance float64
	Selected bool
}

// Classification ranks a dataset by distance to a reference point.
type Classification struct {
	// Points is parallel to the classified dataset.
	Points []ClassifiedPoint

	// Threshold is the cutoff distance: a point is selected iff its distance
	// is <= Threshold. +Inf selects every non-NaN point, -Inf selects nothing.
	Threshold float64

	// ThresholdIndex is floor(n * percentage / 100) clamped to [-1, n], the
	// position in the ascending distance order the threshold was read from.
	ThresholdIndex int
}

// SelectedCount returns the number of selected points.
func (c *Classification) SelectedCount() int {
	count := 0
	for _, p := range c.Points {
		if p.Selected {
			count++
		}
	}
	return count
}

// Distances returns the per-point distances in dataset order.
func (c *Classification) Distances() []float64 {
	out := make([]float64, len(c.Points))
	for i, p := range c.Points {
		out[i] = p.Distance
	}
	return out
}

// Selection returns the indices of the selected points as a bitmap.
func (c *Classification) Selection() *roaring.Bitmap {
	bm := roaring.New()
	for i, p := range c.Points {
		if p.Selected {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// ThresholdIndex returns floor(n * percentage / 100) clamped to [-1, n].
// -1 selects nothing and n selects every non-NaN point. A NaN percentage
// yields -1.
func ThresholdIndex(n int, percentage float64) int {
	idx := math.Floor(float64(n) * percentage / 100)
	switch {
	case math.IsNaN(idx), idx < 0:
		return -1
	case idx >= float64(n):
		return n
	}
	return int(idx)
}

// Classify scores every point of data against reference under the
// Mahalanobis distance for cov and selects the closest percentage of them.
// See ClassifyWithMetric for the selection rules.
func Classify(data [][]float64, reference []float64, cov *Covariance, percentage float64) (*Classification, error) {
	if len(data) > 0 && len(data[0]) != cov.Dims() {
		return nil, &DimensionMismatchError{Expected: cov.Dims(), Actual: len(data[0]), Index: 0}
	}
	return ClassifyWithMetric(data, reference, NewMahalanobisMetric(cov), percentage, 1)
}

// ClassifyWithMetric scores every point of data against reference and selects
// the closest percentage of them. Ties at the threshold distance are all
// selected, so more than ThresholdIndex+1 points may be selected. NaN
// distances (from a degenerate covariance) sort last and are never selected.
//
// percentage is not validated: below 0 selects nothing and above 100 selects
// everything. workers <= 1 scores sequentially.
func ClassifyWithMetric(data [][]float64, reference []float64, metric DistanceMetric, percentage float64, workers int) (*Classification, error) {
	dims, err := validateDataset(data)
	if err != nil {
		return nil, err
	}
	if err := validatePoint(reference, dims); err != nil {
		return nil, err
	}

	distances := ComputeDistancesParallel(data, reference, metric, workers)
	return thresholdDistances(distances, percentage), nil
}

// thresholdDistances applies the percentile cutoff to precomputed distances.
func thresholdDistances(distances []float64, percentage float64) *Classification {
	n := len(distances)
	sorted := make([]float64, n)
	copy(sorted, distances)
	sortNaNLast(sorted)

	idx := ThresholdIndex(n, percentage)
	var threshold float64
	switch {
	case idx < 0:
		threshold = math.Inf(-1)
	case idx >= n:
		threshold = math.Inf(1)
	default:
		threshold = sorted[idx]
	}

	points := make([]ClassifiedPoint, n)
	for i, d := range distances {
		points[i] = ClassifiedPoint{Distance: d, Selected: d <= threshold}
	}

	return &Classification{
		Points:         points,
		Threshold:      threshold,
		ThresholdIndex: idx,
	}
}

// sortNaNLast sorts ascending with every NaN after every number.
// sort.Float64s would put NaNs first.
func sortNaNLast(a []float64) {
	sort.Slice(a, func(i, j int) bool {
		if math.IsNaN(a[i]) {
			return false
		}
		return math.IsNaN(a[j]) || a[i] < a[j]
	})
}
