package config

import (
	"os"
	"strings"

	"pihole-manager/core/pihole"
)

// DefaultTimeoutSeconds is the per-request timeout applied when neither the
// instance nor the global section declares one.
const DefaultTimeoutSeconds = 30

// Instance declares one Pi-hole and the state it should converge to.
// Connection fields left at their zero value inherit the file's global
// defaults through MergedInstances.
type Instance struct {
	// Name identifies the instance in logs, results and the -i filter.
	Name string `yaml:"name"`
	// BaseURL is the root URL of the Pi-hole, e.g. https://pihole.lan.
	BaseURL string `yaml:"base_url"`
	// Password authenticates against the API: a literal value or a ${VAR}
	// reference expanded from the environment.
	Password string `yaml:"password,omitempty"`
	// PasswordEnv names an environment variable holding the password, used
	// when Password is empty.
	PasswordEnv string `yaml:"password_env,omitempty"`
	// Timeout is the per-request timeout in seconds.
	Timeout int `yaml:"timeout,omitempty"`
	// VerifySSL toggles TLS certificate verification. Unset means on.
	VerifySSL *bool `yaml:"verify_ssl,omitempty"`
	// UpdateGravity triggers a gravity run after list changes are applied.
	UpdateGravity *bool `yaml:"update_gravity,omitempty"`

	// Config is the declared scalar configuration tree. Only declared paths
	// participate in reconciliation.
	Config map[string]any `yaml:"config,omitempty"`
	// Lists, Domains, Groups and Clients are the declared entity
	// collections. A nil collection is unmanaged; an explicitly empty one
	// declares "none of these".
	Lists   []pihole.List        `yaml:"lists,omitempty"`
	Domains []pihole.Domain      `yaml:"domains,omitempty"`
	Groups  []pihole.Group       `yaml:"groups,omitempty"`
	Clients []pihole.ClientEntry `yaml:"clients,omitempty"`
}

// Validate checks the connection parameters without any network traffic.
func (i Instance) Validate() error {
	if i.BaseURL == "" {
		return &ConfigurationError{Instance: i.Name, Reason: "missing required base_url"}
	}
	if _, err := i.ResolvePassword(); err != nil {
		return err
	}
	return nil
}

// ResolvePassword resolves the instance password. A ${VAR} reference in
// password expands from the environment, a non-empty password is taken
// literally, and password_env names a variable to read as a fallback.
func (i Instance) ResolvePassword() (string, error) {
	missing := &ConfigurationError{
		Instance: i.Name,
		Reason:   "no password configured, set password, password_env or use ${ENV_VAR} syntax",
	}

	// A ${VAR} reference resolves from the environment or not at all; it
	// does not fall through to password_env.
	if strings.HasPrefix(i.Password, "${") && strings.HasSuffix(i.Password, "}") {
		if value := os.Getenv(i.Password[2 : len(i.Password)-1]); value != "" {
			return value, nil
		}
		return "", missing
	}
	if i.Password != "" {
		return i.Password, nil
	}
	if i.PasswordEnv != "" {
		if value := os.Getenv(i.PasswordEnv); value != "" {
			return value, nil
		}
	}
	return "", missing
}

// ClientConfig resolves the connection parameters for the API client.
func (i Instance) ClientConfig() (pihole.Config, error) {
	password, err := i.ResolvePassword()
	if err != nil {
		return pihole.Config{}, err
	}
	return pihole.Config{
		BaseURL:        i.BaseURL,
		Password:       password,
		TimeoutSeconds: i.TimeoutSeconds(),
		VerifySSL:      i.ShouldVerifySSL(),
	}, nil
}

// TimeoutSeconds resolves the per-request timeout.
func (i Instance) TimeoutSeconds() int {
	if i.Timeout <= 0 {
		return DefaultTimeoutSeconds
	}
	return i.Timeout
}

// ShouldVerifySSL resolves the TLS verification flag, defaulting to true.
func (i Instance) ShouldVerifySSL() bool {
	return i.VerifySSL == nil || *i.VerifySSL
}

// ShouldUpdateGravity resolves the gravity trigger flag, defaulting to false.
func (i Instance) ShouldUpdateGravity() bool {
	return i.UpdateGravity != nil && *i.UpdateGravity
}

// HasDeclaredState reports whether the instance declares anything to
// reconcile at all. Instances without declared state are skipped by the
// diff and sync modes.
func (i Instance) HasDeclaredState() bool {
	return len(i.Config) > 0 ||
		len(i.Lists) > 0 ||
		len(i.Domains) > 0 ||
		len(i.Groups) > 0 ||
		len(i.Clients) > 0
}
