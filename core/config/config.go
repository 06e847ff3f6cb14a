package config

import (
	"reflect"
	"strings"

	"pihole-manager/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds the process-level configuration read from the environment.
// It is divided into partial configurations for better modularity. Anything
// describing the desired Pi-hole state belongs in the declared-state file
// instead (see Load).
type Settings struct {
	// Daemon holds configuration for the reconciliation loop.
	Daemon DaemonSettings `mapstructure:"daemon"`
	// Status holds configuration for the daemon status server.
	Status StatusSettings `mapstructure:"status"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
}

// DefaultDaemonIntervalSeconds is the pass interval used when neither a
// flag, an environment setting nor the declared file picks one.
const DefaultDaemonIntervalSeconds = 300

// DaemonSettings configures the reconciliation loop.
type DaemonSettings struct {
	// IntervalSeconds is the pause between passes. Zero means unset; the
	// daemon command then falls back to the declared file or its default.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"0"`
	// ConfigPath points at the declared state file when the flag is not
	// passed.
	ConfigPath string `mapstructure:"config_path" default:""`
	// Instance narrows passes to one declared instance.
	Instance string `mapstructure:"instance" default:""`
	// DryRun makes passes report changes without applying them.
	DryRun bool `mapstructure:"dry_run" default:"false"`
}

// StatusSettings configures the optional daemon status server.
type StatusSettings struct {
	// Addr is the listen address, e.g. ":9090". Empty disables the server.
	Addr string `mapstructure:"addr" default:""`
}

// LoadSettings loads process settings from environment variables and .env file.
func LoadSettings(path string) (*Settings, error) {
	// 1. Load .env file if it exists
	// We construct the path to .env
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Settings{}, "")

	// Map environment variables to nested keys (e.g. DAEMON_INTERVAL_SECONDS -> daemon.interval_seconds)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		defaultValue := field.Tag.Get("default")
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}
