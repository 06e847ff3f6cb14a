package diff

import "strings"

// BuildPatch converts a flat config diff into the single nested document
// understood by the remote's patch endpoint. Each entry contributes its
// desired value at its dotted path; denormalizable leaves are converted
// back to the remote's shorthand form. The differ never emits overlapping
// leaf paths, so the result is independent of iteration order.
func BuildPatch(changes ConfigDiff) map[string]any {
	patch := make(map[string]any)
	for path, change := range changes {
		value := change.Desired
		if entries, ok := value.([]any); ok {
			switch path {
			case hostsPath:
				value = FormatHosts(entries)
			case cnamesPath:
				value = FormatCNAMEs(entries)
			}
		}
		patch = mergeMaps(patch, nest(path, value))
	}
	return patch
}

// nest builds a single-branch nested mapping terminating in value.
func nest(path string, value any) map[string]any {
	segments := strings.Split(path, ".")
	out := map[string]any{segments[len(segments)-1]: value}
	for i := len(segments) - 2; i >= 0; i-- {
		out = map[string]any{segments[i]: out}
	}
	return out
}

// mergeMaps deep-merges overlay into base without mutating either: when
// both sides hold a mapping at a key the merge recurses, otherwise the
// overlay value wins.
func mergeMaps(base, overlay map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(overlay))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range overlay {
		if current, ok := out[key].(map[string]any); ok {
			if incoming, ok := value.(map[string]any); ok {
				out[key] = mergeMaps(current, incoming)
				continue
			}
		}
		out[key] = value
	}
	return out
}
