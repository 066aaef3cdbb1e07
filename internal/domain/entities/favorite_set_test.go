package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite_AddsThenRemoves(t *testing.T) {
	var empty FavoriteSet

	added := ToggleFavorite(empty, "t-1")
	assert.True(t, IsFavorite(added, "t-1"))
	assert.Equal(t, 1, added.Len())

	removed := ToggleFavorite(added, "t-1")
	assert.False(t, IsFavorite(removed, "t-1"))
	assert.Zero(t, removed.Len())
}

func TestToggleFavorite_DoesNotMutateInput(t *testing.T) {
	original := NewFavoriteSet("t-1", "t-2")

	_ = original.Toggle("t-1")
	_ = original.Toggle("t-3")

	assert.Equal(t, []string{"t-1", "t-2"}, original.IDs())
}

func TestToggleFavorite_DoubleToggleIsNoOp(t *testing.T) {
	sets := []FavoriteSet{
		{},
		NewFavoriteSet("t-1"),
		NewFavoriteSet("t-2", "t-3"),
	}

	for _, set := range sets {
		for _, id := range []string{"t-1", "t-2", "t-9"} {
			roundTrip := ToggleFavorite(ToggleFavorite(set, id), id)
			assert.Equal(t, IsFavorite(set, id), IsFavorite(roundTrip, id), "id=%s", id)
			assert.Equal(t, set.IDs(), roundTrip.IDs())
		}
	}
}

func TestNewFavoriteSet_CollapsesDuplicates(t *testing.T) {
	set := NewFavoriteSet("t-2", "t-1", "t-2", "")
	assert.Equal(t, []string{"t-1", "t-2"}, set.IDs())
}

func TestToggleFavorite_IgnoresEmptyID(t *testing.T) {
	set := NewFavoriteSet().Toggle("")
	assert.Zero(t, set.Len())
}

func TestFavoriteSet_JSON(t *testing.T) {
	data, err := json.Marshal(NewFavoriteSet("t-3", "t-1"))
	require.NoError(t, err)
	assert.JSONEq(t, `["t-1","t-3"]`, string(data))

	var decoded FavoriteSet
	require.NoError(t, json.Unmarshal([]byte(`["t-5","t-5","t-4"]`), &decoded))
	assert.Equal(t, []string{"t-4", "t-5"}, decoded.IDs())

	empty, err := json.Marshal(FavoriteSet{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(empty))
}
