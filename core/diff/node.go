package diff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the three shapes a configuration value can take.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
	KindMapping
)

// Node is the tagged-variant representation of one value in a configuration
// document tree. Exactly one payload field is meaningful for a given Kind.
type Node struct {
	Kind   Kind
	Scalar any
	Items  []Node
	Fields map[string]Node
}

// FromValue lifts a decoded YAML/JSON value into its Node representation.
// Unknown concrete types are treated as scalars.
func FromValue(v any) Node {
	switch val := v.(type) {
	case map[string]any:
		fields := make(map[string]Node, len(val))
		for key, child := range val {
			fields[key] = FromValue(child)
		}
		return Node{Kind: KindMapping, Fields: fields}
	case map[any]any:
		// yaml can produce non-string keys; dotted paths stringify them anyway
		fields := make(map[string]Node, len(val))
		for key, child := range val {
			fields[fmt.Sprint(key)] = FromValue(child)
		}
		return Node{Kind: KindMapping, Fields: fields}
	case []any:
		items := make([]Node, len(val))
		for i, child := range val {
			items[i] = FromValue(child)
		}
		return Node{Kind: KindSequence, Items: items}
	default:
		return Node{Kind: KindScalar, Scalar: v}
	}
}

// Interface converts the node back into plain decoded-document values.
func (n Node) Interface() any {
	switch n.Kind {
	case KindMapping:
		out := make(map[string]any, len(n.Fields))
		for key, child := range n.Fields {
			out[key] = child.Interface()
		}
		return out
	case KindSequence:
		out := make([]any, len(n.Items))
		for i, child := range n.Items {
			out[i] = child.Interface()
		}
		return out
	default:
		return n.Scalar
	}
}

// IsNull reports whether the node represents an absent or null value.
func (n Node) IsNull() bool {
	return n.Kind == KindScalar && n.Scalar == nil
}

// canonicalKey renders a node as a stable string: mapping keys are sorted,
// nested sequence order is preserved, and numeric scalars collapse to one
// representation. Two nodes with equal canonical keys are considered equal
// regardless of how their source documents ordered mapping keys.
func (n Node) canonicalKey() string {
	switch n.Kind {
	case KindMapping:
		keys := make([]string, 0, len(n.Fields))
		for key := range n.Fields {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString("m{")
		for i, key := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%d:%s=%s", len(key), key, n.Fields[key].canonicalKey())
		}
		b.WriteByte('}')
		return b.String()
	case KindSequence:
		var b strings.Builder
		b.WriteString("q[")
		for i, child := range n.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(child.canonicalKey())
		}
		b.WriteByte(']')
		return b.String()
	default:
		return scalarKey(n.Scalar)
	}
}

// scalarKey renders a scalar as a stable, type-tagged string. Numbers of any
// decoded Go type share one representation so YAML ints compare equal to
// JSON floats of the same value.
func scalarKey(v any) string {
	if v == nil {
		return "z"
	}
	if f, ok := toFloat(v); ok {
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "b:1"
		}
		return "b:0"
	case string:
		return fmt.Sprintf("s%d:%s", len(val), val)
	default:
		s := fmt.Sprint(val)
		return fmt.Sprintf("o%d:%T:%s", len(s), val, s)
	}
}

// scalarEqual compares two scalar payloads using the canonical
// representation, avoiding panics on non-comparable decoded types.
func scalarEqual(a, b any) bool {
	return scalarKey(a) == scalarKey(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
