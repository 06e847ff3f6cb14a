package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPatch_NestsDottedPaths(t *testing.T) {
	changes := ConfigDiff{
		"dns.cache.size": {Desired: 5000, Actual: 10000},
	}

	got := BuildPatch(changes)

	assert.Equal(t, map[string]any{
		"dns": map[string]any{
			"cache": map[string]any{"size": 5000},
		},
	}, got)
}

func TestBuildPatch_MergesSiblingBranches(t *testing.T) {
	changes := ConfigDiff{
		"dns.queryLogging": {Desired: true, Actual: false},
		"dns.cache.size":   {Desired: 5000, Actual: 10000},
		"dhcp.active":      {Desired: false, Actual: true},
	}

	got := BuildPatch(changes)

	assert.Equal(t, map[string]any{
		"dns": map[string]any{
			"queryLogging": true,
			"cache":        map[string]any{"size": 5000},
		},
		"dhcp": map[string]any{"active": false},
	}, got)
}

func TestBuildPatch_DenormalizesHosts(t *testing.T) {
	changes := ConfigDiff{
		"dns.hosts": {
			Desired: []any{map[string]any{"ip": "10.0.0.1", "host": "a.lan"}},
			Actual:  []any{},
		},
	}

	got := BuildPatch(changes)

	assert.Equal(t, map[string]any{
		"dns": map[string]any{"hosts": []any{"10.0.0.1 a.lan"}},
	}, got)
}

func TestBuildPatch_DenormalizesCNAMEs(t *testing.T) {
	changes := ConfigDiff{
		"dns.cnameRecords": {
			Desired: []any{map[string]any{"name": "plex.test", "target": "nas.test"}},
			Actual:  []any{},
		},
	}

	got := BuildPatch(changes)

	assert.Equal(t, map[string]any{
		"dns": map[string]any{"cnameRecords": []any{"plex.test,nas.test"}},
	}, got)
}

func TestBuildPatch_TopLevelPath(t *testing.T) {
	changes := ConfigDiff{
		"webserver": {Desired: map[string]any{"port": 8080}, Actual: nil},
	}

	got := BuildPatch(changes)

	assert.Equal(t, map[string]any{"webserver": map[string]any{"port": 8080}}, got)
}

func TestMergeMaps(t *testing.T) {
	tests := []struct {
		name    string
		base    map[string]any
		overlay map[string]any
		want    map[string]any
	}{
		{
			name:    "disjoint keys",
			base:    map[string]any{"a": 1},
			overlay: map[string]any{"b": 2},
			want:    map[string]any{"a": 1, "b": 2},
		},
		{
			name:    "nested mappings merge recursively",
			base:    map[string]any{"dns": map[string]any{"port": 53}},
			overlay: map[string]any{"dns": map[string]any{"cache": 5000}},
			want:    map[string]any{"dns": map[string]any{"port": 53, "cache": 5000}},
		},
		{
			name:    "scalar overwrites mapping",
			base:    map[string]any{"dns": map[string]any{"port": 53}},
			overlay: map[string]any{"dns": "off"},
			want:    map[string]any{"dns": "off"},
		},
		{
			name:    "overlay scalar wins",
			base:    map[string]any{"port": 53},
			overlay: map[string]any{"port": 5353},
			want:    map[string]any{"port": 5353},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeMaps(tt.base, tt.overlay))
		})
	}
}
