// Package diff implements the structural comparison engine that powers
// reconciliation: a recursive tree diff for nested configuration documents,
// a set-based diff for keyed entity collections, normalization of shorthand
// entity text forms, and assembly of a flat diff into a nested patch.
//
// # Architecture
//
// Configuration documents are decoded YAML/JSON values (map[string]any,
// []any, scalars). Before comparison they are lifted into Node, a
// tagged-variant tree (scalar | sequence | mapping), so the differ is a
// structural match over variants instead of scattered type assertions.
//
// The desired document is one-way-authoritative: Config only ever visits
// paths present in the desired document, so values that exist solely on the
// remote side never appear in a diff.
//
// Comparison rules:
//   - a mapping recurses per desired key; an absent actual subtree produces
//     leaf-level entries, not one blanket entry
//   - mismatched kinds (mapping vs sequence vs scalar) produce exactly one
//     entry and stop recursion at that path
//   - sequences compare as unordered sets of canonicalized elements and are
//     always reported whole, never per element
//   - scalars compare by value, with numbers compared numerically so that a
//     YAML int and a JSON float of equal value do not differ
//
// # Collections
//
// Items partitions two keyed entity slices into add/change/remove buckets.
// The key function may combine several fields into a composite identity;
// the equivalence function decides whether two versions of the same entity
// match. Buckets are nil when empty and their contents are sorted by key so
// output is deterministic.
//
// # Normalization
//
// Pi-hole represents local DNS records in a compact shorthand ("IP HOST",
// "NAME,TARGET"). NormalizeConfig converts both shorthand strings and
// already-canonical records into one record form before diffing, and
// BuildPatch converts records back to shorthand when assembling the patch
// sent to the remote.
//
// # Usage Example
//
//	desired, _ := diff.NormalizeConfig(declared)
//	actual, _ := diff.NormalizeConfig(fetched)
//	changes := diff.Config(desired, actual)
//	if len(changes) > 0 {
//		patch := diff.BuildPatch(changes)
//		// hand patch to the remote client
//	}
//
// Everything in this package is pure: inputs are never mutated and no state
// survives a call.
package diff
