package reconcile

import (
	"pihole-manager/core/diff"
	"pihole-manager/core/pihole"
)

// kindOrder is the fixed order entity kinds are reconciled and reported in.
var kindOrder = []string{"config", "lists", "domains", "groups", "clients"}

// InstanceResult represents the reconciliation output for a single instance.
// Entity kinds without detected changes stay nil and disappear from the
// serialized output; an instance with no changes at all produces no result.
type InstanceResult struct {
	// Name is the declared instance name.
	Name string `json:"name" yaml:"name"`

	// BaseURL is the root URL of the instance's API.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Config holds the scalar configuration differences by dotted path.
	Config diff.ConfigDiff `json:"config,omitempty" yaml:"config,omitempty"`

	// Lists, Domains, Groups and Clients hold the collection differences.
	Lists   *diff.ItemsDiff[pihole.List]        `json:"lists,omitempty" yaml:"lists,omitempty"`
	Domains *diff.ItemsDiff[pihole.Domain]      `json:"domains,omitempty" yaml:"domains,omitempty"`
	Groups  *diff.ItemsDiff[pihole.Group]       `json:"groups,omitempty" yaml:"groups,omitempty"`
	Clients *diff.ItemsDiff[pihole.ClientEntry] `json:"clients,omitempty" yaml:"clients,omitempty"`

	// Failed names the entity kinds whose fetch or apply failed.
	Failed []string `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// ChangedKinds lists the entity kinds with detected changes, in processing
// order.
func (r InstanceResult) ChangedKinds() []string {
	var kinds []string
	for _, kind := range kindOrder {
		switch kind {
		case "config":
			if len(r.Config) > 0 {
				kinds = append(kinds, kind)
			}
		case "lists":
			if !r.Lists.Empty() {
				kinds = append(kinds, kind)
			}
		case "domains":
			if !r.Domains.Empty() {
				kinds = append(kinds, kind)
			}
		case "groups":
			if !r.Groups.Empty() {
				kinds = append(kinds, kind)
			}
		case "clients":
			if !r.Clients.Empty() {
				kinds = append(kinds, kind)
			}
		}
	}
	return kinds
}

// HasChanges reports whether any entity kind detected a difference.
func (r InstanceResult) HasChanges() bool {
	return len(r.ChangedKinds()) > 0
}

// Snapshot is the remote state of one instance as fetched by dump mode.
type Snapshot struct {
	// Name is the declared instance name.
	Name string `json:"name" yaml:"name"`

	// BaseURL is the root URL of the instance's API.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Config is the full remote configuration document.
	Config map[string]any `json:"config" yaml:"config"`

	// Lists, Domains, Groups and Clients are the remote collections.
	Lists   []pihole.List        `json:"lists" yaml:"lists"`
	Domains []pihole.Domain      `json:"domains" yaml:"domains"`
	Groups  []pihole.Group       `json:"groups" yaml:"groups"`
	Clients []pihole.ClientEntry `json:"clients" yaml:"clients"`
}
