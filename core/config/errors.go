package config

import "fmt"

// ConfigurationError reports an instance declaration that cannot be used to
// reach its Pi-hole, such as a missing base URL or an unresolvable password.
// The orchestrator skips such instances instead of aborting the whole run.
type ConfigurationError struct {
	Instance string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("instance %q: %s", e.Instance, e.Reason)
}
