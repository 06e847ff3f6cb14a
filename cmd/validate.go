package cmd

import (
	"fmt"

	"pihole-manager/core/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// validateCmd lints the declared file without contacting any instance.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Lint the declared state file offline",
	Long: `Validate parses the declared state file and reports structural problems:
missing connection settings, unresolvable passwords, duplicate entries,
unknown list or domain types and malformed config values. No instance is
contacted.`,
	RunE: runValidate,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, l, err := loadEnvironment()
	if err != nil {
		return err
	}

	_, instances, err := loadDeclared()
	if err != nil {
		return err
	}

	issues := config.Lint(instances)
	if len(issues) == 0 {
		l.Info("Configuration valid", zap.Int("instances", len(instances)))
		return nil
	}

	if err := printYAML(issues); err != nil {
		return err
	}
	return fmt.Errorf("found %d configuration issue(s)", len(issues))
}
