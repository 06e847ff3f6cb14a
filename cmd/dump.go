package cmd

import (
	"pihole-manager/core/reconcile"

	"github.com/spf13/cobra"
)

// dumpCmd prints the live state of every instance without comparing it.
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the actual state of every instance",
	Long: `Dump fetches the live configuration, lists, domains, groups and clients
of every declared instance and prints them as YAML. Nothing is compared
or modified; the output is a starting point for writing declared state.`,
	RunE: runDump,
}

func init() {
	RootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
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

	snapshots := reconcile.New(reconcile.Dial, l).DumpAll(ctx, instances)
	if len(snapshots) == 0 {
		l.Warn("No instance could be dumped")
		return nil
	}
	return printYAML(snapshots)
}
