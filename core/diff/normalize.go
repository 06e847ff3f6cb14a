package diff

import (
	"fmt"
	"strings"
)

// Document paths whose entries move between canonical record form and the
// remote's shorthand strings.
const (
	hostsPath  = "dns.hosts"
	cnamesPath = "dns.cnameRecords"
)

// ValidationError reports a declared entry that cannot be normalized into
// its canonical record form.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NormalizeHosts converts DNS host entries into canonical records of the
// form {"ip": ..., "host": ...}. Entries already in record form pass
// through unchanged once their required fields are verified; shorthand
// strings split on the first space with whitespace trimmed from each side.
func NormalizeHosts(entries []any) ([]any, error) {
	return normalizeEntries(entries, "host", " ", "ip", "host")
}

// NormalizeCNAMEs converts CNAME entries into canonical records of the form
// {"name": ..., "target": ...}. Shorthand strings split on the first comma
// with whitespace trimmed from each side.
func NormalizeCNAMEs(entries []any) ([]any, error) {
	return normalizeEntries(entries, "cname", ",", "name", "target")
}

func normalizeEntries(entries []any, kind, delimiter, firstField, secondField string) ([]any, error) {
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case map[string]any:
			var missing []string
			for _, field := range []string{firstField, secondField} {
				if _, ok := e[field]; !ok {
					missing = append(missing, field)
				}
			}
			if len(missing) > 0 {
				return nil, validationErrorf("%s entry %v is missing required fields: %s", kind, e, strings.Join(missing, ", "))
			}
			out = append(out, e)
		case string:
			if !strings.Contains(e, delimiter) {
				return nil, validationErrorf("%s entry %q must contain %q separating the %s from the %s", kind, e, delimiter, firstField, secondField)
			}
			parts := strings.SplitN(e, delimiter, 2)
			out = append(out, map[string]any{
				firstField:  strings.TrimSpace(parts[0]),
				secondField: strings.TrimSpace(parts[1]),
			})
		default:
			return nil, validationErrorf("%s entry must be a mapping or a string, got %T", kind, entry)
		}
	}
	return out, nil
}

// NormalizeConfig returns a copy of the document with dns.hosts and
// dns.cnameRecords entries converted to canonical record form. All other
// paths are left untouched. It is applied to both the declared and the
// fetched document so the two compare in one representation.
func NormalizeConfig(config map[string]any) (map[string]any, error) {
	rawDNS, ok := config["dns"]
	if !ok {
		return config, nil
	}
	dns, ok := rawDNS.(map[string]any)
	if !ok {
		return config, nil
	}

	normalized := make(map[string]any, len(dns))
	for key, value := range dns {
		normalized[key] = value
	}

	if hosts, ok := normalized["hosts"]; ok {
		entries, ok := hosts.([]any)
		if !ok {
			return nil, validationErrorf("dns.hosts must be a sequence, got %T", hosts)
		}
		converted, err := NormalizeHosts(entries)
		if err != nil {
			return nil, err
		}
		normalized["hosts"] = converted
	}

	if cnames, ok := normalized["cnameRecords"]; ok {
		entries, ok := cnames.([]any)
		if !ok {
			return nil, validationErrorf("dns.cnameRecords must be a sequence, got %T", cnames)
		}
		converted, err := NormalizeCNAMEs(entries)
		if err != nil {
			return nil, err
		}
		normalized["cnameRecords"] = converted
	}

	out := make(map[string]any, len(config))
	for key, value := range config {
		out[key] = value
	}
	out["dns"] = normalized
	return out, nil
}

// FormatHosts converts canonical host records back into the remote's
// "IP HOST" shorthand. The conversion is the exact inverse of
// NormalizeHosts for valid records; anything else passes through.
func FormatHosts(entries []any) []any {
	return formatEntries(entries, "%v %v", "ip", "host")
}

// FormatCNAMEs converts canonical CNAME records back into the remote's
// "NAME,TARGET" shorthand.
func FormatCNAMEs(entries []any) []any {
	return formatEntries(entries, "%v,%v", "name", "target")
}

func formatEntries(entries []any, format, firstField, secondField string) []any {
	out := make([]any, 0, len(entries))
	for _, entry := range entries {
		if record, ok := entry.(map[string]any); ok {
			out = append(out, fmt.Sprintf(format, record[firstField], record[secondField]))
			continue
		}
		out = append(out, entry)
	}
	return out
}
