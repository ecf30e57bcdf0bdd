package usecase

import (
	"sort"

	"github.com/Ovitozinn/luxe-dash-suite/internal/model"
)

// SelectionSet is the set of manually picked contact ids. Not safe for
// concurrent use; DispatchComposer guards it.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet creates a set holding ids. Duplicates collapse.
func NewSelectionSet(ids ...string) *SelectionSet {
	s := &SelectionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// Toggle adds id if absent and removes it if present. It returns whether id
// is selected afterwards.
func (s *SelectionSet) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Contains reports membership.
func (s *SelectionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}

// IDs returns the members sorted, for stable output.
func (s *SelectionSet) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Clear empties the set.
func (s *SelectionSet) Clear() {
	s.ids = make(map[string]struct{})
}

// Filter returns the contacts that are selected, in input order. Selected ids
// with no matching contact are ignored.
func (s *SelectionSet) Filter(contacts []model.Contact) []model.Contact {
	out := make([]model.Contact, 0, len(s.ids))
	for _, c := range contacts {
		if s.Contains(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// CountIn returns how many contacts are selected.
func (s *SelectionSet) CountIn(contacts []model.Contact) int {
	n := 0
	for _, c := range contacts {
		if s.Contains(c.ID) {
			n++
		}
	}
	return n
}
