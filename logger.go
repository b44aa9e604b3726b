package mahalanobis

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// runLogger wraps a zap.Logger with the field names used across a Run.
type runLogger struct {
	*zap.Logger
}

// newRunLogger returns a runLogger backed by l, or a no-op logger when l is nil.
func newRunLogger(l *zap.Logger) runLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return runLogger{Logger: l.Named("mahalanobis")}
}

func (l runLogger) with(fields ...zap.Field) runLogger {
	return runLogger{Logger: l.Logger.With(fields...)}
}

// NewLogger builds a console logger at the given level, writing to stderr.
// It is a convenience for callers that do not already own a zap.Logger.
func NewLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// logStage records the duration of one pipeline stage.
func (l runLogger) logStage(stage string, d time.Duration, fields ...zap.Field) {
	if ce := l.Check(zapcore.DebugLevel, "stage completed"); ce != nil {
		ce.Write(append([]zap.Field{zap.String("stage", stage), zap.Duration("duration", d)}, fields...)...)
	}
}

// logDegenerate warns that distances were computed against a singular or
// ill-conditioned covariance.
func (l runLogger) logDegenerate(cond float64, dims int) {
	l.Warn("covariance matrix is degenerate; distances may be NaN or meaningless",
		zap.Float64("cond", cond),
		zap.Int("dims", dims),
	)
}

// logRun records the outcome of a completed run.
func (l runLogger) logRun(r *Result, total int) {
	l.Info("run completed",
		zap.Int("points", total),
		zap.Int("working_set", r.WorkingSetSize),
		zap.Float64("threshold", r.Threshold),
		zap.Int("selected", r.SelectedCount()),
		zap.Duration("total", r.Timings.Total),
	)
}
