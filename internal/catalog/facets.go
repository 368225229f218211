package catalog

import (
	"errors"
	"strings"
)

// MaxFacets is the most facets a selection may hold.
const MaxFacets = 2

// ErrFacetLimit is returned when adding beyond MaxFacets.
var ErrFacetLimit = errors.New("facet limit reached")

// FacetSelection is an ordered set of at most MaxFacets tags. The zero value
// is an empty selection.
type FacetSelection struct {
	tags []string
}

// NewFacetSelection builds a selection from tags, failing with ErrFacetLimit
// when they hold more than MaxFacets distinct values.
func NewFacetSelection(tags ...string) (FacetSelection, error) {
	var s FacetSelection
	for _, t := range tags {
		if err := s.Add(t); err != nil {
			return FacetSelection{}, err
		}
	}
	return s, nil
}

// Add appends tag. Adding a tag already present is a no-op.
func (s *FacetSelection) Add(tag string) error {
	tag = normalizeTag(tag)
	if tag == "" || s.Contains(tag) {
		return nil
	}
	if len(s.tags) >= MaxFacets {
		return ErrFacetLimit
	}
	s.tags = append(s.tags[:len(s.tags):len(s.tags)], tag)
	return nil
}

// Remove drops tag if present.
func (s *FacetSelection) Remove(tag string) {
	tag = normalizeTag(tag)
	for i, t := range s.tags {
		if t == tag {
			s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
			return
		}
	}
}

// Toggle removes tag if selected, otherwise adds it. A third tag is
// rejected silently: the selection is unchanged and Toggle returns false.
func (s *FacetSelection) Toggle(tag string) bool {
	if s.Contains(tag) {
		s.Remove(tag)
		return true
	}
	return s.Add(tag) == nil
}

// Contains reports whether tag is selected.
func (s FacetSelection) Contains(tag string) bool {
	tag = normalizeTag(tag)
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Tags returns the selected tags in selection order.
func (s FacetSelection) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

// Len returns the number of selected tags.
func (s FacetSelection) Len() int {
	return len(s.tags)
}

// Empty reports whether nothing is selected.
func (s FacetSelection) Empty() bool {
	return len(s.tags) == 0
}

// Equal reports whether both selections hold the same tags in any order.
func (s FacetSelection) Equal(o FacetSelection) bool {
	if len(s.tags) != len(o.tags) {
		return false
	}
	for _, t := range s.tags {
		if !o.Contains(t) {
			return false
		}
	}
	return true
}

func (s FacetSelection) String() string {
	return strings.Join(s.tags, ",")
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
