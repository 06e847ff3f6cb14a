package config

import (
	"errors"
	"fmt"

	"pihole-manager/core/diff"
	"pihole-manager/core/pihole"
)

// Issue is one problem found in the declared state of an instance.
type Issue struct {
	Instance string `yaml:"instance" json:"instance"`
	Message  string `yaml:"message" json:"message"`
}

// Lint checks declared instances for problems that reconciliation would
// otherwise surface mid-flight: unusable connection parameters, duplicate
// entity keys, unknown domain types or kinds, and malformed host or cname
// entries. It performs no network traffic.
func Lint(instances []Instance) []Issue {
	var issues []Issue
	for _, instance := range instances {
		issues = append(issues, lintInstance(instance)...)
	}
	return issues
}

func lintInstance(instance Instance) []Issue {
	var issues []Issue
	report := func(format string, args ...any) {
		issues = append(issues, Issue{
			Instance: instance.Name,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	if err := instance.Validate(); err != nil {
		var confErr *ConfigurationError
		if errors.As(err, &confErr) {
			report("connection: %s", confErr.Reason)
		} else {
			report("connection: %v", err)
		}
	}

	reportDuplicates(report, "lists", instance.Lists, pihole.List.Key)
	reportDuplicates(report, "domains", instance.Domains, pihole.Domain.Key)
	reportDuplicates(report, "groups", instance.Groups, pihole.Group.Key)
	reportDuplicates(report, "clients", instance.Clients, pihole.ClientEntry.Key)

	for _, list := range instance.Lists {
		if list.Type != pihole.ListBlock && list.Type != pihole.ListAllow {
			report("list %q has unknown type %q", list.Address, list.Type)
		}
	}
	for _, domain := range instance.Domains {
		if domain.Type != pihole.DomainAllow && domain.Type != pihole.DomainDeny {
			report("domain %q has unknown type %q", domain.Domain, domain.Type)
		}
		if domain.Kind != pihole.KindExact && domain.Kind != pihole.KindRegex {
			report("domain %q has unknown kind %q", domain.Domain, domain.Kind)
		}
	}

	if _, err := diff.NormalizeConfig(instance.Config); err != nil {
		report("config: %v", err)
	}

	return issues
}

func reportDuplicates[T any](report func(string, ...any), kind string, items []T, key func(T) string) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		if _, dup := seen[k]; dup {
			report("%s: duplicate entry %q", kind, k)
			continue
		}
		seen[k] = struct{}{}
	}
}
