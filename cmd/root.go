package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pihole-manager/core/config"
	"pihole-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	// Persistent flags shared by every subcommand
	configPath   string
	instanceName string
	verbose      bool
	logFormat    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "pihole-manager",
	Short: "Declarative Pi-hole configuration manager",
	Long: `Pihole Manager reconciles declared YAML state onto one or more Pi-hole
instances: settings, subscribed lists, domain rules, groups and clients.
The declared file is the single source of truth; anything it does not
declare is left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Report through the standard logger. Console format matches CLI
		// expectations and the debug configuration gets ISO8601 timestamps
		// instead of epoch.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the declared state file")
	RootCmd.PersistentFlags().StringVarP(&instanceName, "instance", "i", "", "only process the named instance")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log output format (console or json)")
}

// loadEnvironment reads the process settings and builds the logger, letting
// the verbosity flags override the environment.
func loadEnvironment() (*config.Settings, *zap.Logger, error) {
	settings, err := config.LoadSettings(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if verbose {
		settings.Log.Level = "debug"
	}
	if logFormat != "" {
		settings.Log.Format = logFormat
	}

	l, err := logger.New(&settings.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return settings, l, nil
}

// loadDeclared reads the declared state file and applies the instance
// filter.
func loadDeclared() (*config.File, []config.Instance, error) {
	file, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	instances, err := config.FilterInstances(file.MergedInstances(), instanceName)
	if err != nil {
		return nil, nil, err
	}
	return file, instances, nil
}

// signalContext returns a context cancelled by SIGINT or SIGTERM so a pass
// stops between instances instead of mid-mutation.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// printYAML renders command output to stdout.
func printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
