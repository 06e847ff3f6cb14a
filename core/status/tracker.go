package status

import (
	"sync"
	"time"

	"pihole-manager/core/reconcile"
)

// Report captures the outcome of one reconciliation pass.
type Report struct {
	// RunID ties the report to the log lines of the pass.
	RunID string `json:"run_id"`

	// StartedAt and FinishedAt bound the pass.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// DryRun reports whether the pass was forbidden to mutate anything.
	DryRun bool `json:"dry_run"`

	// Results holds the per-instance outcomes. Instances that were already
	// converged are absent.
	Results []reconcile.InstanceResult `json:"results"`

	// Err carries a pass-level failure, such as an unreadable
	// configuration file.
	Err string `json:"error,omitempty"`
}

// Tracker publishes the most recent pass report to HTTP consumers.
type Tracker struct {
	mu   sync.RWMutex
	last *Report
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record stores the report of a finished pass.
func (t *Tracker) Record(report Report) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.last = &report
}

// Last returns the most recent report and whether any pass finished yet.
func (t *Tracker) Last() (Report, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.last == nil {
		return Report{}, false
	}
	return *t.last, true
}
