package mahalanobis

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Config controls a Run.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Percentage is the share of points, closest first, to select.
	// Not validated: < 0 selects nothing, > 100 selects everything.
	// Default: 10.
	Percentage float64 `yaml:"percentage"`

	// SubsampleSize is the number of points the covariance is estimated
	// from. 0 (or anything >= the dataset size) uses the whole dataset.
	// Classification always covers the whole dataset. Default: 0.
	SubsampleSize int `yaml:"subsample_size"`

	// SubsampleMethod picks the subsampling strategy when SubsampleSize is
	// in effect. Default: "random".
	SubsampleMethod Method `yaml:"subsample_method"`

	// Seed seeds the random source used by the random and cluster
	// strategies. 0 seeds from the clock.
	Seed int64 `yaml:"seed"`

	// Workers controls the number of goroutines scoring distances.
	// 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int `yaml:"workers"`

	// Logger receives structured logs. nil disables logging.
	Logger *zap.Logger `yaml:"-"`

	// Observer receives a summary of every completed Run. nil disables it.
	Observer Observer `yaml:"-"`
}

// Result is the outcome of a Run.
type Result struct {
	*Classification

	// Covariance is the matrix estimated from the working set.
	Covariance *Covariance

	// WorkingSetSize is the number of points the covariance was estimated from.
	WorkingSetSize int

	// Degenerate reports a singular or ill-conditioned covariance. Distances
	// may then be NaN (never selected) or numerically meaningless.
	Degenerate bool

	Timings Timings
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Percentage:      10,
		SubsampleMethod: MethodRandom,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if !cfg.SubsampleMethod.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, cfg.SubsampleMethod)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("mahalanobis: Workers must be >= 0 (0 means runtime.NumCPU()), got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.SubsampleMethod == "" {
		cfg.SubsampleMethod = MethodRandom
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Observer == nil {
		cfg.Observer = NoopObserver{}
	}
}

// Run classifies every point of data by Mahalanobis distance to reference.
//
// The covariance is estimated from a subsample of data when
// cfg.SubsampleSize is in effect, otherwise from all of data. Every point is
// then scored against reference and the closest cfg.Percentage of them are
// selected (see ClassifyWithMetric).
//
// Run yields the processor once before starting and then runs to completion;
// it cannot be cancelled. Each call owns all of its intermediate state, so
// concurrent calls are independent. Use a Sequencer to discard results that
// were superseded by a later call.
func Run(data [][]float64, reference []float64, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	dims, err := validateDataset(data)
	if err != nil {
		return nil, err
	}
	if err := validatePoint(reference, dims); err != nil {
		return nil, err
	}

	log := newRunLogger(cfg.Logger).with(zap.Int("dims", dims))
	runtime.Gosched()

	start := time.Now()
	var timings Timings

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	working := Subsample(data, cfg.SubsampleSize, cfg.SubsampleMethod, rand.New(rand.NewSource(seed)))
	timings.Subsample = time.Since(start)
	log.logStage("subsample", timings.Subsample,
		zap.String("method", string(cfg.SubsampleMethod)),
		zap.Int("points", len(data)),
		zap.Int("working_set", len(working)),
	)

	mark := time.Now()
	cov, err := EstimateCovariance(working, dims)
	if err != nil {
		return nil, fmt.Errorf("mahalanobis: estimating covariance from %d of %d points: %w", len(working), len(data), err)
	}
	metric := NewMahalanobisMetric(cov)
	timings.Covariance = time.Since(mark)
	log.logStage("covariance", timings.Covariance, zap.Float64("cond", metric.Cond()))
	if metric.Degenerate() {
		log.logDegenerate(metric.Cond(), dims)
	}

	mark = time.Now()
	distances := ComputeDistancesParallel(data, reference, metric, cfg.Workers)
	classification := thresholdDistances(distances, cfg.Percentage)
	timings.Classify = time.Since(mark)
	log.logStage("classify", timings.Classify, zap.Int("workers", cfg.Workers))

	timings.Total = time.Since(start)

	result := &Result{
		Classification: classification,
		Covariance:     cov,
		WorkingSetSize: len(working),
		Degenerate:     metric.Degenerate(),
		Timings:        timings,
	}
	log.logRun(result, len(data))
	cfg.Observer.ObserveRun(timings, result.SelectedCount(), len(data), result.Degenerate)
	return result, nil
}
