package mahalanobis

import "golang.org/x/sync/errgroup"

// ComputeDistances scores every point of data against reference.
func ComputeDistances(data [][]float64, reference []float64, metric DistanceMetric) []float64 {
	out := make([]float64, len(data))
	for i, p := range data {
		out[i] = metric.Distance(p, reference)
	}
	return out
}

// ComputeDistancesParallel scores every point of data against reference using
// multiple goroutines. numWorkers controls the degree of parallelism; if <= 1,
// it falls back to single-threaded ComputeDistances.
//
// The result is bitwise identical to ComputeDistances.
func ComputeDistancesParallel(data [][]float64, reference []float64, metric DistanceMetric, numWorkers int) []float64 {
	n := len(data)
	if numWorkers <= 1 || n <= 1 {
		return ComputeDistances(data, reference, metric)
	}

	out := make([]float64, n)

	// Each worker owns a contiguous range of rows, so writes never overlap.
	var g errgroup.Group
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := min(startRow+rowsPerWorker, n)
		if startRow >= n {
			break
		}

		g.Go(func() error {
			for i := startRow; i < endRow; i++ {
				out[i] = metric.Distance(data[i], reference)
			}
			return nil
		})
	}

	// Workers never fail; Wait only joins them.
	g.Wait()
	return out
}
