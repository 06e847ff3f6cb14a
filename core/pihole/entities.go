package pihole

// Domain classifications accepted by the API.
const (
	DomainAllow = "allow"
	DomainDeny  = "deny"

	KindExact = "exact"
	KindRegex = "regex"
)

// List types accepted by the API.
const (
	ListBlock = "block"
	ListAllow = "allow"
)

// DefaultGroupID is the group Pi-hole assigns when an entry declares none.
const DefaultGroupID = 0

// List is a subscribed blocklist or allowlist.
type List struct {
	Address string `json:"address" yaml:"address"`
	Type    string `json:"type" yaml:"type"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Groups  []int  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Key returns the list's natural identity.
func (l List) Key() string { return l.Address }

// EquivalentTo reports whether two versions of the list match on the
// managed fields: type and comment by raw equality, groups as sets,
// enabled with its absent-means-true default.
func (l List) EquivalentTo(other List) bool {
	return l.Type == other.Type &&
		l.Comment == other.Comment &&
		groupsEqual(l.Groups, other.Groups) &&
		enabledEqual(l.Enabled, other.Enabled)
}

// EffectiveGroups resolves the declared group assignment for API payloads.
func (l List) EffectiveGroups() []int { return effectiveGroups(l.Groups) }

// IsEnabled resolves the tri-state enabled flag for API payloads.
func (l List) IsEnabled() bool { return isEnabled(l.Enabled) }

// Domain is an allowed or denied domain entry, exact or regex.
type Domain struct {
	Domain  string `json:"domain" yaml:"domain"`
	Type    string `json:"type" yaml:"type"`
	Kind    string `json:"kind" yaml:"kind"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Groups  []int  `json:"groups,omitempty" yaml:"groups,omitempty"`
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Key returns the domain's composite identity: the same value may exist
// under different type/kind combinations as distinct entries.
func (d Domain) Key() string { return d.Domain + "|" + d.Type + "|" + d.Kind }

// EquivalentTo reports whether two versions of the entry match on the
// managed fields.
func (d Domain) EquivalentTo(other Domain) bool {
	return d.Comment == other.Comment &&
		groupsEqual(d.Groups, other.Groups) &&
		enabledEqual(d.Enabled, other.Enabled)
}

// EffectiveGroups resolves the declared group assignment for API payloads.
func (d Domain) EffectiveGroups() []int { return effectiveGroups(d.Groups) }

// IsEnabled resolves the tri-state enabled flag for API payloads.
func (d Domain) IsEnabled() bool { return isEnabled(d.Enabled) }

// Group is a client group entries and clients can be assigned to.
type Group struct {
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// Key returns the group's natural identity.
func (g Group) Key() string { return g.Name }

// EquivalentTo reports whether two versions of the group match on the
// managed fields.
func (g Group) EquivalentTo(other Group) bool {
	return g.Comment == other.Comment && enabledEqual(g.Enabled, other.Enabled)
}

// IsEnabled resolves the tri-state enabled flag for API payloads.
func (g Group) IsEnabled() bool { return isEnabled(g.Enabled) }

// ClientEntry is a client definition (IP, CIDR, MAC or interface).
type ClientEntry struct {
	Client  string `json:"client" yaml:"client"`
	Comment string `json:"comment,omitempty" yaml:"comment,omitempty"`
	Groups  []int  `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Key returns the client's natural identity.
func (c ClientEntry) Key() string { return c.Client }

// EquivalentTo reports whether two versions of the client match on the
// managed fields.
func (c ClientEntry) EquivalentTo(other ClientEntry) bool {
	return c.Comment == other.Comment && groupsEqual(c.Groups, other.Groups)
}

// EffectiveGroups resolves the declared group assignment for API payloads.
func (c ClientEntry) EffectiveGroups() []int { return effectiveGroups(c.Groups) }

// groupsEqual compares group assignments as sets. A nil (undeclared) slice
// means the default group; an explicitly empty slice is an empty set and
// stays distinct from the default.
func groupsEqual(a, b []int) bool {
	as := groupSet(a)
	bs := groupSet(b)
	if len(as) != len(bs) {
		return false
	}
	for g := range as {
		if _, ok := bs[g]; !ok {
			return false
		}
	}
	return true
}

func groupSet(groups []int) map[int]struct{} {
	if groups == nil {
		groups = []int{DefaultGroupID}
	}
	set := make(map[int]struct{}, len(groups))
	for _, g := range groups {
		set[g] = struct{}{}
	}
	return set
}

func enabledEqual(a, b *bool) bool {
	return isEnabled(a) == isEnabled(b)
}

func isEnabled(enabled *bool) bool {
	return enabled == nil || *enabled
}

func effectiveGroups(groups []int) []int {
	if groups == nil {
		return []int{DefaultGroupID}
	}
	return groups
}
