package cmd

import (
	"context"
	"time"

	"pihole-manager/core/config"
	"pihole-manager/core/daemon"
	"pihole-manager/core/reconcile"
	"pihole-manager/core/status"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	daemonInterval int
	daemonDryRun   bool
)

// daemonCmd runs the reconciliation loop until interrupted.
var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Continuously reconcile on an interval",
	Long: `Daemon syncs every declared instance, sleeps, and repeats until it
receives SIGINT or SIGTERM. The declared state file is reloaded before
each pass, so edits take effect without a restart.

Setting STATUS_ADDR (or status.addr in the environment settings) serves
/healthz and /status over HTTP with the report of the most recent pass.`,
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().IntVar(&daemonInterval, "interval", 0, "seconds between passes (default: DAEMON_INTERVAL_SECONDS, the file's daemon_interval, or 300)")
	daemonCmd.Flags().BoolVar(&daemonDryRun, "dry-run", false, "report changes without applying them")
	RootCmd.AddCommand(daemonCmd)
}

func runDaemon(cmd *cobra.Command, args []string) error {
	settings, l, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	// Environment settings fill in for flags the user did not pass.
	path := configPath
	if !cmd.Flags().Changed("config") && settings.Daemon.ConfigPath != "" {
		path = settings.Daemon.ConfigPath
	}
	filter := instanceName
	if filter == "" {
		filter = settings.Daemon.Instance
	}

	// The initial load fails fast on a broken file and anchors the
	// interval and dry-run defaults; later passes reload it themselves.
	file, err := config.Load(path)
	if err != nil {
		return err
	}
	if _, err := config.FilterInstances(file.MergedInstances(), filter); err != nil {
		return err
	}

	dryRun := daemonDryRun || settings.Daemon.DryRun || file.Global.DryRun

	ctx, stop := signalContext()
	defer stop()

	tracker := status.NewTracker()
	d := daemon.New(daemon.Options{
		ConfigPath: path,
		Instance:   filter,
		Interval:   resolveInterval(cmd, settings, file),
		DryRun:     dryRun,
	}, reconcile.New(reconcile.Dial, l), tracker, l)

	var srv *status.Server
	if settings.Status.Addr != "" {
		srv = status.NewServer(settings.Status.Addr, tracker, l)
		go func() {
			if err := srv.Start(); err != nil {
				l.Error("Status server failed", zap.Error(err))
			}
		}()
	}

	d.Run(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Warn("Status server shutdown failed", zap.Error(err))
		}
	}
	return nil
}

// resolveInterval picks the pass interval: flag, then environment setting,
// then the file's global daemon_interval, then the default.
func resolveInterval(cmd *cobra.Command, settings *config.Settings, file *config.File) time.Duration {
	seconds := config.DefaultDaemonIntervalSeconds
	switch {
	case cmd.Flags().Changed("interval") && daemonInterval > 0:
		seconds = daemonInterval
	case settings.Daemon.IntervalSeconds > 0:
		seconds = settings.Daemon.IntervalSeconds
	case file.Global.DaemonInterval > 0:
		seconds = file.Global.DaemonInterval
	}
	return time.Duration(seconds) * time.Second
}
