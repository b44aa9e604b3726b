package mahalanobis

import (
	"sync/atomic"
	"time"
)

// Timings records how long each stage of a Run took.
type Timings struct {
	Subsample  time.Duration
	Covariance time.Duration
	Classify   time.Duration
	Total      time.Duration
}

// Observer receives a summary after every completed Run.
// Implement it to integrate with a monitoring system; see PrometheusObserver.
type Observer interface {
	// ObserveRun is called once per successful Run. selected and total are the
	// selected and classified point counts.
	ObserveRun(t Timings, selected, total int, degenerate bool)
}

// NoopObserver discards all observations.
type NoopObserver struct{}

func (NoopObserver) ObserveRun(Timings, int, int, bool) {}

// BasicObserver keeps in-memory counters. Safe for concurrent use.
type BasicObserver struct {
	Runs            atomic.Int64
	DegenerateRuns  atomic.Int64
	PointsScored    atomic.Int64
	PointsSelected  atomic.Int64
	TotalNanos      atomic.Int64
	CovarianceNanos atomic.Int64
}

// ObserveRun implements Observer.
func (b *BasicObserver) ObserveRun(t Timings, selected, total int, degenerate bool) {
	b.Runs.Add(1)
	if degenerate {
		b.DegenerateRuns.Add(1)
	}
	b.PointsScored.Add(int64(total))
	b.PointsSelected.Add(int64(selected))
	b.TotalNanos.Add(t.Total.Nanoseconds())
	b.CovarianceNanos.Add(t.Covariance.Nanoseconds())
}

// MeanTotal returns the average end-to-end run time, or 0 before any run.
func (b *BasicObserver) MeanTotal() time.Duration {
	runs := b.Runs.Load()
	if runs == 0 {
		return 0
	}
	return time.Duration(b.TotalNanos.Load() / runs)
}
