// Package wishlist holds the listing ids a student has saved.
package wishlist

import (
	"encoding/json"
	"sort"
)

// Set is an unordered set of listing ids. The zero value is not usable;
// create one with New.
type Set struct {
	ids map[string]struct{}
}

// New returns a set holding ids
func New(ids ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle removes id if present and adds it otherwise.
// It returns whether id is saved afterwards.
func (s *Set) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports whether id is saved
func (s *Set) Contains(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of saved ids
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns the saved ids sorted
func (s *Set) IDs() []string {
	out := make([]string, 0, s.Len())
	if s == nil {
		return out
	}
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same ids
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	if s == nil {
		return true
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

func (s *Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = *New(ids...)
	return nil
}
