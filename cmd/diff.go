package cmd

import (
	"pihole-manager/core/reconcile"

	"github.com/spf13/cobra"
)

// diffCmd reports differences without touching any instance.
var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show what sync would change, without changing anything",
	Long: `Diff compares the declared state of every instance against the live
state and prints the differences as YAML. Declared-empty collections are
inspected too: their remote entries show up as removals. Instances
without any declared state are skipped.`,
	RunE: runDiff,
}

func init() {
	RootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	_, l, err := loadEnvironment()
	if err != nil {
		return err
	}

	_, instances, err := loadDeclared()
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	results := reconcile.New(reconcile.Dial, l).DiffAll(ctx, instances)
	if len(results) == 0 {
		l.Info("No differences found")
		return nil
	}
	return printYAML(results)
}
