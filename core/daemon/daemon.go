package daemon

import (
	"context"
	"time"

	"pihole-manager/core/config"
	"pihole-manager/core/reconcile"
	"pihole-manager/core/status"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Options configure a daemon run.
type Options struct {
	// ConfigPath is the declared state file, reloaded before every pass.
	ConfigPath string

	// Instance optionally narrows passes to one declared instance.
	Instance string

	// Interval is the pause between passes.
	Interval time.Duration

	// DryRun reports changes without applying them.
	DryRun bool
}

// Daemon reconciles on a fixed interval until its context is cancelled.
type Daemon struct {
	opts       Options
	reconciler *reconcile.Reconciler
	tracker    *status.Tracker
	log        *zap.Logger
}

// New creates a Daemon. The tracker may be nil when no status server runs.
func New(opts Options, reconciler *reconcile.Reconciler, tracker *status.Tracker, log *zap.Logger) *Daemon {
	if opts.Interval <= 0 {
		opts.Interval = time.Duration(config.DefaultDaemonIntervalSeconds) * time.Second
	}
	return &Daemon{opts: opts, reconciler: reconciler, tracker: tracker, log: log}
}

// Run performs a pass immediately and then one per interval until ctx is
// cancelled.
func (d *Daemon) Run(ctx context.Context) {
	d.log.Info("Daemon started",
		zap.Duration("interval", d.opts.Interval),
		zap.Bool("dry_run", d.opts.DryRun))

	d.RunPass(ctx)

	ticker := time.NewTicker(d.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("Daemon stopping")
			return
		case <-ticker.C:
			d.RunPass(ctx)
		}
	}
}

// RunPass reloads the declared state and reconciles every instance once.
// A reload failure skips the pass rather than reusing stale declared state.
func (d *Daemon) RunPass(ctx context.Context) {
	runID := uuid.NewString()
	log := d.log.With(zap.String("run_id", runID))
	started := time.Now()

	instances, err := d.loadInstances()
	if err != nil {
		log.Error("Skipping pass, failed to load configuration", zap.Error(err))
		d.record(status.Report{
			RunID:      runID,
			StartedAt:  started,
			FinishedAt: time.Now(),
			DryRun:     d.opts.DryRun,
			Err:        err.Error(),
		})
		return
	}

	results := d.reconciler.SyncAll(ctx, instances, d.opts.DryRun)

	action := "applied"
	if d.opts.DryRun {
		action = "would be applied"
	}
	for _, result := range results {
		log.Info("Instance reconciled",
			zap.String("instance", result.Name),
			zap.Strings("kinds", result.ChangedKinds()),
			zap.Strings("failed", result.Failed),
			zap.String("action", action),
		)
	}
	log.Info("Pass finished",
		zap.Int("instances_changed", len(results)),
		zap.Duration("took", time.Since(started)),
	)

	d.record(status.Report{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		DryRun:     d.opts.DryRun,
		Results:    results,
	})
}

func (d *Daemon) loadInstances() ([]config.Instance, error) {
	file, err := config.Load(d.opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return config.FilterInstances(file.MergedInstances(), d.opts.Instance)
}

func (d *Daemon) record(report status.Report) {
	if d.tracker != nil {
		d.tracker.Record(report)
	}
}
