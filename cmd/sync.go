package cmd

import (
	"pihole-manager/core/reconcile"

	"github.com/spf13/cobra"
)

var syncDryRun bool

// syncCmd applies the declared state onto every instance.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply the declared state to every instance",
	Long: `Sync reconciles each instance towards its declared state: config paths
are patched, missing entries created, changed entries replaced and
undeclared entries deleted. Collections declared but left empty are never
emptied remotely; diff reports their remote entries as removals instead.

With --dry-run (or global dry_run in the declared file) the detected
changes are printed but nothing is applied.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report changes without applying them")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	_, l, err := loadEnvironment()
	if err != nil {
		return err
	}

	file, instances, err := loadDeclared()
	if err != nil {
		return err
	}
	dryRun := syncDryRun || file.Global.DryRun

	ctx, stop := signalContext()
	defer stop()

	results := reconcile.New(reconcile.Dial, l).SyncAll(ctx, instances, dryRun)
	if len(results) == 0 {
		l.Info("No configuration changes required")
		return nil
	}
	return printYAML(results)
}
