package config

import (
	"strings"
	"testing"

	"pihole-manager/core/pihole"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintFlagsProblems(t *testing.T) {
	instances := []Instance{
		{
			Name:     "primary",
			BaseURL:  "https://pihole.lan",
			Password: "x",
			Config:   map[string]any{"dns": map[string]any{"hosts": []any{"gateway-without-ip"}}},
			Lists: []pihole.List{
				{Address: "https://ads.example/list.txt", Type: "blocklist"},
				{Address: "https://ads.example/list.txt", Type: "blocklist"},
			},
			Domains: []pihole.Domain{
				{Domain: "ads.example.com", Type: "denied", Kind: "glob"},
			},
		},
		{Name: "secondary"},
	}

	issues := Lint(instances)
	require.Len(t, issues, 7)

	messages := make([]string, 0, len(issues))
	for _, issue := range issues {
		messages = append(messages, issue.Instance+": "+issue.Message)
	}

	assert.Contains(t, messages, `primary: lists: duplicate entry "https://ads.example/list.txt"`)
	assert.Contains(t, messages, `primary: list "https://ads.example/list.txt" has unknown type "blocklist"`)
	assert.Contains(t, messages, `primary: domain "ads.example.com" has unknown type "denied"`)
	assert.Contains(t, messages, `primary: domain "ads.example.com" has unknown kind "glob"`)
	assert.Contains(t, messages, "secondary: connection: missing required base_url")
	assert.Contains(t, strings.Join(messages, "\n"), "primary: config:",
		"malformed hosts entries should be reported")
}

func TestLintAcceptsValidInstances(t *testing.T) {
	instances := []Instance{
		{
			Name:     "primary",
			BaseURL:  "https://pihole.lan",
			Password: "x",
			Config: map[string]any{"dns": map[string]any{
				"hosts":        []any{"192.168.1.1 gateway.lan"},
				"cnameRecords": []any{"media.lan,nas.lan"},
			}},
			Lists:   []pihole.List{{Address: "https://ads.example/list.txt", Type: pihole.ListBlock}},
			Domains: []pihole.Domain{{Domain: "ads.example.com", Type: pihole.DomainDeny, Kind: pihole.KindExact}},
			Groups:  []pihole.Group{{Name: "iot"}},
			Clients: []pihole.ClientEntry{{Client: "192.168.1.20"}},
		},
	}

	assert.Empty(t, Lint(instances))
}
