package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Name    string
	Kind    string
	Comment string
}

func entryKey(e testEntry) string {
	return e.Name
}

func compositeKey(e testEntry) string {
	return e.Name + "|" + e.Kind
}

func sameComment(desired, actual testEntry) bool {
	return desired.Comment == actual.Comment
}

func TestItems_AddOnly(t *testing.T) {
	desired := []testEntry{{Name: "x", Comment: "new"}}

	got := Items(desired, nil, entryKey, sameComment)

	require.NotNil(t, got.Add)
	assert.Equal(t, desired, got.Add.Desired)
	assert.Nil(t, got.Change)
	assert.Nil(t, got.Remove)
}

func TestItems_ChangeOnly(t *testing.T) {
	desired := []testEntry{{Name: "x", Comment: "managed"}}
	actual := []testEntry{{Name: "x", Comment: "stale"}}

	got := Items(desired, actual, entryKey, sameComment)

	assert.Nil(t, got.Add)
	assert.Nil(t, got.Remove)
	require.NotNil(t, got.Change)
	assert.Equal(t, desired, got.Change.Desired)
	assert.Equal(t, actual, got.Change.Actual)
}

func TestItems_RemoveOnly(t *testing.T) {
	actual := []testEntry{{Name: "x", Comment: "old"}}

	got := Items(nil, actual, entryKey, sameComment)

	assert.Nil(t, got.Add)
	assert.Nil(t, got.Change)
	require.NotNil(t, got.Remove)
	assert.Equal(t, actual, got.Remove.Actual)
}

func TestItems_EqualCollectionsAreEmpty(t *testing.T) {
	items := []testEntry{{Name: "a"}, {Name: "b", Comment: "kept"}}

	got := Items(items, items, entryKey, sameComment)

	assert.True(t, got.Empty())
}

func TestItems_Partition(t *testing.T) {
	desired := []testEntry{
		{Name: "added"},
		{Name: "changed", Comment: "new"},
		{Name: "kept", Comment: "same"},
	}
	actual := []testEntry{
		{Name: "changed", Comment: "old"},
		{Name: "kept", Comment: "same"},
		{Name: "removed"},
	}

	got := Items(desired, actual, entryKey, sameComment)

	require.NotNil(t, got.Add)
	require.NotNil(t, got.Change)
	require.NotNil(t, got.Remove)
	assert.Equal(t, []testEntry{{Name: "added"}}, got.Add.Desired)
	assert.Equal(t, []testEntry{{Name: "changed", Comment: "new"}}, got.Change.Desired)
	assert.Equal(t, []testEntry{{Name: "changed", Comment: "old"}}, got.Change.Actual)
	assert.Equal(t, []testEntry{{Name: "removed"}}, got.Remove.Actual)
}

func TestItems_InputOrderIrrelevant(t *testing.T) {
	desired := []testEntry{{Name: "b"}, {Name: "a"}, {Name: "c"}}
	actual := []testEntry{{Name: "z"}, {Name: "y"}}

	got := Items(desired, actual, entryKey, sameComment)

	// bucket contents come back sorted by key
	require.NotNil(t, got.Add)
	assert.Equal(t, []testEntry{{Name: "a"}, {Name: "b"}, {Name: "c"}}, got.Add.Desired)
	require.NotNil(t, got.Remove)
	assert.Equal(t, []testEntry{{Name: "y"}, {Name: "z"}}, got.Remove.Actual)
}

func TestItems_CompositeKeySeparatesKinds(t *testing.T) {
	desired := []testEntry{{Name: "ads.example", Kind: "exact"}}
	actual := []testEntry{{Name: "ads.example", Kind: "regex"}}

	got := Items(desired, actual, compositeKey, sameComment)

	// same name but different kind is an add plus a remove, never a change
	require.NotNil(t, got.Add)
	require.NotNil(t, got.Remove)
	assert.Nil(t, got.Change)
}

func TestItems_ChangePairsStayAligned(t *testing.T) {
	desired := []testEntry{
		{Name: "b", Comment: "b-new"},
		{Name: "a", Comment: "a-new"},
	}
	actual := []testEntry{
		{Name: "a", Comment: "a-old"},
		{Name: "b", Comment: "b-old"},
	}

	got := Items(desired, actual, entryKey, sameComment)

	require.NotNil(t, got.Change)
	require.Len(t, got.Change.Desired, 2)
	require.Len(t, got.Change.Actual, 2)
	for i := range got.Change.Desired {
		assert.Equal(t, got.Change.Desired[i].Name, got.Change.Actual[i].Name)
	}
}

func TestItemsDiff_Empty(t *testing.T) {
	var nilDiff *ItemsDiff[testEntry]

	assert.True(t, nilDiff.Empty())
	assert.True(t, (&ItemsDiff[testEntry]{}).Empty())
	assert.False(t, (&ItemsDiff[testEntry]{Add: &Added[testEntry]{}}).Empty())
}
