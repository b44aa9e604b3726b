// Package mahalanobis selects the points of an n-dimensional cloud that lie
// closest to a reference point under the Mahalanobis distance, a metric that
// accounts for the covariance of the cloud.
//
// The pipeline optionally subsamples the data, estimates the sample
// covariance from the working set, scores every point of the full dataset
// against the reference and selects the closest percentage of them.
//
// Basic usage:
//
//	cfg := mahalanobis.DefaultConfig()
//	cfg.Percentage = 25
//	cfg.SubsampleSize = 1000
//	cfg.SubsampleMethod = mahalanobis.MethodSystematic
//	result, err := mahalanobis.Run(data, reference, cfg)
//	// result.Points[i].Distance is point i's distance to reference
//	// result.Points[i].Selected reports whether point i is among the closest
//	// result.Threshold is the cutoff distance
//
// The stages are also available on their own:
//
//	working := mahalanobis.Subsample(data, 500, mahalanobis.MethodCluster, rng)
//	cov, err := mahalanobis.EstimateCovariance(working, dims)
//	d, err := mahalanobis.Distance(a, b, cov)
//	c, err := mahalanobis.Classify(data, reference, cov, 25)
//
// # Subsampling
//
// Subsampling only affects which points the covariance is estimated from;
// every point is always classified. MethodRandom draws a uniform sample,
// MethodSystematic takes every k-th point in order and MethodCluster draws
// proportionally from up to ten clusters seeded by the first points of the
// data. MethodCluster returns nothing for target sizes below 50.
//
// # Degenerate data
//
// A singular covariance (collinear data, or fewer independent points than
// dimensions) is not an error. Result.Degenerate reports it and the affected
// distances are NaN, which sort last and are never selected.
package mahalanobis
