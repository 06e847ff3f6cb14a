package pihole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func enabledPtr(v bool) *bool { return &v }

func TestDomainKeySeparatesTypeAndKind(t *testing.T) {
	allow := Domain{Domain: "ads.example.com", Type: DomainAllow, Kind: KindExact}
	deny := Domain{Domain: "ads.example.com", Type: DomainDeny, Kind: KindExact}
	regex := Domain{Domain: "ads.example.com", Type: DomainDeny, Kind: KindRegex}

	assert.NotEqual(t, allow.Key(), deny.Key())
	assert.NotEqual(t, deny.Key(), regex.Key())
}

func TestListEquivalentTo(t *testing.T) {
	base := List{
		Address: "https://ads.example/list.txt",
		Type:    ListBlock,
		Comment: "managed",
		Groups:  []int{1, 2},
		Enabled: enabledPtr(true),
	}

	tests := []struct {
		name  string
		other List
		want  bool
	}{
		{
			name:  "identical",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{1, 2}, Enabled: enabledPtr(true)},
			want:  true,
		},
		{
			name:  "group order ignored",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{2, 1}, Enabled: enabledPtr(true)},
			want:  true,
		},
		{
			name:  "missing enabled defaults to true",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{1, 2}},
			want:  true,
		},
		{
			name:  "address is identity, not a managed field",
			other: List{Address: "https://mirror.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{1, 2}, Enabled: enabledPtr(true)},
			want:  true,
		},
		{
			name:  "comment differs",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "edited", Groups: []int{1, 2}, Enabled: enabledPtr(true)},
			want:  false,
		},
		{
			name:  "type differs",
			other: List{Address: "https://ads.example/list.txt", Type: ListAllow, Comment: "managed", Groups: []int{1, 2}, Enabled: enabledPtr(true)},
			want:  false,
		},
		{
			name:  "groups differ",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{1}, Enabled: enabledPtr(true)},
			want:  false,
		},
		{
			name:  "disabled",
			other: List{Address: "https://ads.example/list.txt", Type: ListBlock, Comment: "managed", Groups: []int{1, 2}, Enabled: enabledPtr(false)},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.EquivalentTo(tt.other))
			assert.Equal(t, tt.want, tt.other.EquivalentTo(base))
		})
	}
}

func TestGroupsEqualDefaulting(t *testing.T) {
	declared := List{Address: "https://ads.example/list.txt", Type: ListBlock}
	remote := List{Address: "https://ads.example/list.txt", Type: ListBlock, Groups: []int{DefaultGroupID}, Enabled: enabledPtr(true)}
	assert.True(t, declared.EquivalentTo(remote), "undeclared groups mean the default group")

	declared.Groups = []int{}
	assert.False(t, declared.EquivalentTo(remote), "an explicitly empty group set is not the default group")
}

func TestGroupsEqualCollapsesDuplicates(t *testing.T) {
	a := ClientEntry{Client: "192.168.1.20", Groups: []int{1, 1, 2}}
	b := ClientEntry{Client: "192.168.1.20", Groups: []int{2, 1}}
	assert.True(t, a.EquivalentTo(b))
}

func TestDomainEquivalentToIgnoresIdentityFields(t *testing.T) {
	a := Domain{Domain: "tracker.example", Type: DomainDeny, Kind: KindExact, Comment: "managed"}
	b := Domain{Domain: "other.example", Type: DomainAllow, Kind: KindRegex, Comment: "managed"}
	assert.True(t, a.EquivalentTo(b))

	b.Enabled = enabledPtr(false)
	assert.False(t, a.EquivalentTo(b))
}

func TestGroupEquivalentTo(t *testing.T) {
	a := Group{Name: "iot", Comment: "smart home"}
	b := Group{Name: "iot", Comment: "smart home", Enabled: enabledPtr(true)}
	assert.True(t, a.EquivalentTo(b))

	b.Comment = "updated"
	assert.False(t, a.EquivalentTo(b))
}

func TestEffectiveGroups(t *testing.T) {
	assert.Equal(t, []int{DefaultGroupID}, List{}.EffectiveGroups())
	assert.Equal(t, []int{}, List{Groups: []int{}}.EffectiveGroups())
	assert.Equal(t, []int{3, 1}, List{Groups: []int{3, 1}}.EffectiveGroups())
}

func TestIsEnabled(t *testing.T) {
	assert.True(t, Group{}.IsEnabled())
	assert.True(t, Group{Enabled: enabledPtr(true)}.IsEnabled())
	assert.False(t, Group{Enabled: enabledPtr(false)}.IsEnabled())
}
