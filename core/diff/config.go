package diff

// Change records the two versions of a value at one diverging path.
type Change struct {
	Desired any `yaml:"desired" json:"desired"`
	Actual  any `yaml:"actual" json:"actual"`
}

// ConfigDiff maps dotted document paths to their diverging values. An empty
// diff means the actual document already matches every declared path.
type ConfigDiff map[string]Change

// Config computes the differences between a desired and an actual
// configuration document. Only paths present in the desired document are
// visited; neither input is mutated.
func Config(desired, actual map[string]any) ConfigDiff {
	out := ConfigDiff{}
	walk(FromValue(desired), FromValue(actual), "", out)
	return out
}

func walk(desired, actual Node, path string, out ConfigDiff) {
	// Structural absence on the actual side becomes an empty container of
	// the desired kind so that mappings still produce leaf-level entries.
	if actual.IsNull() {
		switch desired.Kind {
		case KindMapping:
			actual = Node{Kind: KindMapping}
		case KindSequence:
			actual = Node{Kind: KindSequence}
		}
	}

	if desired.Kind != actual.Kind {
		out[path] = Change{Desired: desired.Interface(), Actual: actual.Interface()}
		return
	}

	switch desired.Kind {
	case KindMapping:
		for key, child := range desired.Fields {
			walk(child, actual.Fields[key], joinPath(path, key), out)
		}
	case KindSequence:
		if !sameElements(desired, actual) {
			out[path] = Change{Desired: desired.Interface(), Actual: actual.Interface()}
		}
	default:
		if !scalarEqual(desired.Scalar, actual.Scalar) {
			out[path] = Change{Desired: desired.Scalar, Actual: actual.Scalar}
		}
	}
}

// sameElements compares two sequences as unordered sets of canonicalized
// elements. Element order and duplicates are irrelevant; any mismatch is
// reported for the sequence as a whole, never per element.
func sameElements(desired, actual Node) bool {
	ds := elementSet(desired)
	as := elementSet(actual)
	if len(ds) != len(as) {
		return false
	}
	for key := range ds {
		if _, ok := as[key]; !ok {
			return false
		}
	}
	return true
}

func elementSet(n Node) map[string]struct{} {
	set := make(map[string]struct{}, len(n.Items))
	for _, child := range n.Items {
		set[child.canonicalKey()] = struct{}{}
	}
	return set
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
