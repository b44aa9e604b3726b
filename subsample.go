package mahalanobis

import (
	"math/rand"
	"time"
)

const (
	// maxSampleClusters caps the number of clusters used by MethodCluster.
	maxSampleClusters = 10
	// pointsPerSampleCluster is the target size that earns one cluster.
	pointsPerSampleCluster = 50
)

// Subsample reduces data to at most targetSize points using method.
//
// A targetSize <= 0 or >= len(data) leaves the data untouched: the input slice
// itself is returned. The returned rows alias the input rows; they are never
// modified. rng drives the random and cluster strategies; nil uses a
// time-seeded source. An unknown method also returns data unchanged.
func Subsample(data [][]float64, targetSize int, method Method, rng *rand.Rand) [][]float64 {
	if targetSize <= 0 || targetSize >= len(data) {
		return data
	}
	rng = ensureRand(rng)

	switch method {
	case MethodRandom:
		return SubsampleRandom(data, targetSize, rng)
	case MethodSystematic:
		return SubsampleSystematic(data, targetSize)
	case MethodCluster:
		return SubsampleCluster(data, targetSize, rng)
	default:
		return data
	}
}

// SubsampleRandom shuffles a copy of data (Fisher–Yates) and keeps the first
// targetSize points. A nil rng uses a time-seeded source.
func SubsampleRandom(data [][]float64, targetSize int, rng *rand.Rand) [][]float64 {
	if targetSize <= 0 || targetSize >= len(data) {
		return data
	}
	rng = ensureRand(rng)
	shuffled := make([][]float64, len(data))
	copy(shuffled, data)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:targetSize:targetSize]
}

// SubsampleSystematic keeps every step-th point, step = len(data)/targetSize,
// starting at index 0, in original order. The result has exactly targetSize
// points.
func SubsampleSystematic(data [][]float64, targetSize int) [][]float64 {
	if targetSize <= 0 || targetSize >= len(data) {
		return data
	}
	step := len(data) / targetSize

	out := make([][]float64, 0, targetSize)
	for i := 0; i < len(data) && len(out) < targetSize; i += step {
		out = append(out, data[i])
	}
	return out
}

// SubsampleCluster is a single-pass approximation of proportional cluster
// sampling. It uses k = min(10, targetSize/50) centers taken from the first k
// points of data, assigns every point to its nearest center (squared
// Euclidean, lowest index wins ties) and draws floor(size*targetSize/n)
// random members from each cluster. Clusters are concatenated in center order.
//
// When k is 0 the result is empty. Floor rounding means the result may hold
// fewer than targetSize points; it never holds more. A nil rng uses a
// time-seeded source.
func SubsampleCluster(data [][]float64, targetSize int, rng *rand.Rand) [][]float64 {
	if targetSize <= 0 || targetSize >= len(data) {
		return data
	}
	k := min(maxSampleClusters, targetSize/pointsPerSampleCluster)
	if k == 0 {
		return [][]float64{}
	}
	rng = ensureRand(rng)

	centers := data[:k]
	clusters := make([][]int, k)
	for i, p := range data {
		c := nearestCenter(p, centers)
		clusters[c] = append(clusters[c], i)
	}

	n := len(data)
	out := make([][]float64, 0, targetSize)
	for _, members := range clusters {
		quota := len(members) * targetSize / n
		if quota == 0 {
			continue
		}
		rng.Shuffle(len(members), func(i, j int) {
			members[i], members[j] = members[j], members[i]
		})
		for _, idx := range members[:quota] {
			out = append(out, data[idx])
		}
	}
	return out
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rng
}

// nearestCenter returns the index of the center closest to p by squared
// Euclidean distance. Ties go to the lowest index.
func nearestCenter(p []float64, centers [][]float64) int {
	best := 0
	bestDist := euclideanSumOfSquares(p, centers[0])
	for c := 1; c < len(centers); c++ {
		if d := euclideanSumOfSquares(p, centers[c]); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
