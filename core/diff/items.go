package diff

import "sort"

// Added holds items present only in the desired collection.
type Added[T any] struct {
	Desired []T `yaml:"desired" json:"desired"`
}

// Changed holds both versions of items whose compared fields differ.
// Desired and Actual pair up by position.
type Changed[T any] struct {
	Desired []T `yaml:"desired" json:"desired"`
	Actual  []T `yaml:"actual" json:"actual"`
}

// Removed holds items present only in the actual collection.
type Removed[T any] struct {
	Actual []T `yaml:"actual" json:"actual"`
}

// ItemsDiff partitions two keyed collections into add/change/remove
// buckets. A bucket is nil, and absent from serialized output, when empty.
type ItemsDiff[T any] struct {
	Add    *Added[T]   `yaml:"add,omitempty" json:"add,omitempty"`
	Change *Changed[T] `yaml:"change,omitempty" json:"change,omitempty"`
	Remove *Removed[T] `yaml:"remove,omitempty" json:"remove,omitempty"`
}

// Empty reports whether the diff carries no work.
func (d *ItemsDiff[T]) Empty() bool {
	return d == nil || (d.Add == nil && d.Change == nil && d.Remove == nil)
}

// Items diffs a desired collection against an actual one. Identity comes
// from key, which may join several fields into a composite; same decides
// whether two versions of one entity are equivalent. A nil actual slice is
// an empty collection. Bucket contents are sorted by key, so the result is
// deterministic regardless of input order. When one side declares the same
// key twice the later item wins.
func Items[T any](desired, actual []T, key func(T) string, same func(desired, actual T) bool) *ItemsDiff[T] {
	desiredByKey := indexByKey(desired, key)
	actualByKey := indexByKey(actual, key)

	var added, removed, changedDesired, changedActual []T

	for _, k := range sortedKeys(desiredByKey) {
		want := desiredByKey[k]
		have, ok := actualByKey[k]
		if !ok {
			added = append(added, want)
			continue
		}
		if !same(want, have) {
			changedDesired = append(changedDesired, want)
			changedActual = append(changedActual, have)
		}
	}

	for _, k := range sortedKeys(actualByKey) {
		if _, ok := desiredByKey[k]; !ok {
			removed = append(removed, actualByKey[k])
		}
	}

	out := &ItemsDiff[T]{}
	if len(added) > 0 {
		out.Add = &Added[T]{Desired: added}
	}
	if len(changedDesired) > 0 {
		out.Change = &Changed[T]{Desired: changedDesired, Actual: changedActual}
	}
	if len(removed) > 0 {
		out.Remove = &Removed[T]{Actual: removed}
	}
	return out
}

func indexByKey[T any](items []T, key func(T) string) map[string]T {
	index := make(map[string]T, len(items))
	for _, item := range items {
		index[key(item)] = item
	}
	return index
}

func sortedKeys[T any](index map[string]T) []string {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
