package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Global holds file-level defaults shared by every instance plus the daemon
// options that never merge into instances.
type Global struct {
	// Timeout is the default per-request timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`
	// VerifySSL is the default TLS verification flag.
	VerifySSL *bool `yaml:"verify_ssl,omitempty"`
	// Password is the default password (literal or ${VAR} reference).
	Password string `yaml:"password,omitempty"`
	// PasswordEnv is the default environment variable holding passwords.
	PasswordEnv string `yaml:"password_env,omitempty"`
	// UpdateGravity is the default gravity trigger flag.
	UpdateGravity *bool `yaml:"update_gravity,omitempty"`

	// DaemonInterval is the pause in seconds between daemon passes.
	DaemonInterval int `yaml:"daemon_interval,omitempty"`
	// DryRun makes sync and daemon report changes without applying them.
	DryRun bool `yaml:"dry_run,omitempty"`
}

// File is the parsed declared-state document.
type File struct {
	Global    Global     `yaml:"global,omitempty"`
	Instances []Instance `yaml:"instances"`
}

// Load reads and parses the declared-state YAML file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &file, nil
}

// MergedInstances returns the declared instances with the global connection
// defaults filled into unset fields. Instance values always win; the daemon
// options stay global.
func (f *File) MergedInstances() []Instance {
	merged := make([]Instance, 0, len(f.Instances))
	for _, instance := range f.Instances {
		if instance.Timeout == 0 {
			instance.Timeout = f.Global.Timeout
		}
		if instance.VerifySSL == nil {
			instance.VerifySSL = f.Global.VerifySSL
		}
		if instance.Password == "" {
			instance.Password = f.Global.Password
		}
		if instance.PasswordEnv == "" {
			instance.PasswordEnv = f.Global.PasswordEnv
		}
		if instance.UpdateGravity == nil {
			instance.UpdateGravity = f.Global.UpdateGravity
		}
		merged = append(merged, instance)
	}
	return merged
}

// FilterInstances narrows instances to the one matching name. An empty name
// keeps everything; an unknown name is an error.
func FilterInstances(instances []Instance, name string) ([]Instance, error) {
	if name == "" {
		return instances, nil
	}
	for _, instance := range instances {
		if instance.Name == name {
			return []Instance{instance}, nil
		}
	}
	return nil, fmt.Errorf("no instance found with name %q", name)
}
