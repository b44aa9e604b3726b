package mahalanobis

import "github.com/prometheus/client_golang/prometheus"

// PrometheusObserver exports Run summaries as Prometheus metrics.
type PrometheusObserver struct {
	stageLatency  *prometheus.HistogramVec
	runs          prometheus.Counter
	degenerate    prometheus.Counter
	selectedRatio prometheus.Gauge
}

// NewPrometheusObserver creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	o := &PrometheusObserver{
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mahalanobis_stage_duration_seconds",
			Help:    "Duration of each classification pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mahalanobis_runs_total",
			Help: "Completed classification runs.",
		}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mahalanobis_degenerate_runs_total",
			Help: "Runs whose covariance matrix was singular or ill-conditioned.",
		}),
		selectedRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mahalanobis_selected_ratio",
			Help: "Fraction of points selected by the most recent run.",
		}),
	}

	for _, c := range []prometheus.Collector{o.stageLatency, o.runs, o.degenerate, o.selectedRatio} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// ObserveRun implements Observer.
func (o *PrometheusObserver) ObserveRun(t Timings, selected, total int, degenerate bool) {
	o.stageLatency.WithLabelValues("subsample").Observe(t.Subsample.Seconds())
	o.stageLatency.WithLabelValues("covariance").Observe(t.Covariance.Seconds())
	o.stageLatency.WithLabelValues("classify").Observe(t.Classify.Seconds())
	o.stageLatency.WithLabelValues("total").Observe(t.Total.Seconds())
	o.runs.Inc()
	if degenerate {
		o.degenerate.Inc()
	}
	if total > 0 {
		o.selectedRatio.Set(float64(selected) / float64(total))
	}
}
