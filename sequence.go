package mahalanobis

import (
	"sync"
	"sync/atomic"
	"time"
)

// Sequencer hands out tickets for overlapping Runs so a caller can keep only
// the newest result. Run itself never consults it: every Run completes and
// returns its result, and the caller drops the ones whose ticket went stale.
type Sequencer struct {
	gen atomic.Uint64
}

// Ticket identifies one invocation issued by a Sequencer.
type Ticket struct {
	seq *Sequencer
	gen uint64
}

// Begin issues a ticket that supersedes every earlier one.
func (s *Sequencer) Begin() Ticket {
	return Ticket{seq: s, gen: s.gen.Add(1)}
}

// Current reports whether no newer ticket has been issued since t.
func (t Ticket) Current() bool {
	return t.seq != nil && t.seq.gen.Load() == t.gen
}

// Generation returns the ticket's sequence number, starting at 1.
func (t Ticket) Generation() uint64 { return t.gen }

// HistoryRecord is one entry in a History.
type HistoryRecord struct {
	Timings    Timings
	Points     int
	Selected   int
	Degenerate bool
}

// History is a caller-owned log of completed runs. Safe for concurrent use.
type History struct {
	mu      sync.Mutex
	records []HistoryRecord
}

// Add appends a record built from r.
func (h *History) Add(r *Result) {
	rec := HistoryRecord{
		Timings:    r.Timings,
		Points:     len(r.Points),
		Selected:   r.SelectedCount(),
		Degenerate: r.Degenerate,
	}
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Records returns a copy of all records in insertion order.
func (h *History) Records() []HistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]HistoryRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Mean returns the per-stage average timings, or zero Timings when empty.
func (h *History) Mean() Timings {
	h.mu.Lock()
	defer h.mu.Unlock()

	var sum Timings
	n := time.Duration(len(h.records))
	if n == 0 {
		return sum
	}
	for _, r := range h.records {
		sum.Subsample += r.Timings.Subsample
		sum.Covariance += r.Timings.Covariance
		sum.Classify += r.Timings.Classify
		sum.Total += r.Timings.Total
	}
	return Timings{
		Subsample:  sum.Subsample / n,
		Covariance: sum.Covariance / n,
		Classify:   sum.Classify / n,
		Total:      sum.Total / n,
	}
}

// Reset discards all records.
func (h *History) Reset() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()
}
