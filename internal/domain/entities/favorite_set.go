package entities

import (
	"encoding/json"
	"sort"
)

// FavoriteSet is an immutable set of favorited tour IDs. The zero value is
// an empty set. Toggle never modifies the receiver, so a FavoriteSet can be
// held directly as UI state.
type FavoriteSet struct {
	ids map[string]struct{}
}

// NewFavoriteSet builds a set from ids, dropping duplicates and empty IDs
func NewFavoriteSet(ids ...string) FavoriteSet {
	set := FavoriteSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		set.ids[id] = struct{}{}
	}
	return set
}

// ToggleFavorite returns a new set with tourID added if absent or removed if present
func ToggleFavorite(favorites FavoriteSet, tourID string) FavoriteSet {
	return favorites.Toggle(tourID)
}

// IsFavorite reports whether tourID is in favorites
func IsFavorite(favorites FavoriteSet, tourID string) bool {
	return favorites.Contains(tourID)
}

// Toggle returns a copy of s with tourID's membership flipped
func (s FavoriteSet) Toggle(tourID string) FavoriteSet {
	next := FavoriteSet{ids: make(map[string]struct{}, len(s.ids)+1)}
	for id := range s.ids {
		next.ids[id] = struct{}{}
	}
	if _, ok := next.ids[tourID]; ok {
		delete(next.ids, tourID)
	} else if tourID != "" {
		next.ids[tourID] = struct{}{}
	}
	return next
}

// Contains reports whether tourID is in the set
func (s FavoriteSet) Contains(tourID string) bool {
	_, ok := s.ids[tourID]
	return ok
}

// Len returns the number of favorites
func (s FavoriteSet) Len() int {
	return len(s.ids)
}

// IDs returns the members in ascending order
func (s FavoriteSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarshalJSON encodes the set as a sorted array of IDs
func (s FavoriteSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON decodes an array of IDs, collapsing duplicates
func (s *FavoriteSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewFavoriteSet(ids...)
	return nil
}
