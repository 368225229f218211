// Package catalog maps the flat entity ID space onto generation ranges and
// builds entity lists over those ranges, either page by page or by filtering
// a whole range against one or two type facets.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// GenID identifies a generation. All (zero) is the pseudo-generation that
// spans every entity.
type GenID int

// All selects every generation.
const All GenID = 0

func (g GenID) String() string {
	if g == All {
		return "all"
	}
	return strconv.Itoa(int(g))
}

// ParseGenID accepts "all", "" or a positive generation number.
func ParseGenID(s string) (GenID, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return All, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return All, fmt.Errorf("invalid generation %q", s)
	}
	return GenID(n), nil
}

// Range is a half-open interval [Start, End) of flat positions.
// Position p holds the entity with ID p+1.
type Range struct {
	Start int
	End   int
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// ContainsID reports whether the entity with the given ID falls inside the range.
func (r Range) ContainsID(id int) bool {
	return r.Contains(id - 1)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Generation is one numbered generation and its slice of the ID space.
type Generation struct {
	ID      GenID
	Name    string // upstream slug, e.g. "generation-i"
	Title   string // display name, e.g. "Generation I"
	Region  string
	Members int
	Range   Range
}

// EntityStub is a lightweight list entry. ID is explicit from ingestion
// onward; Tags holds the facets the entity matched when it came from a
// filter pass.
type EntityStub struct {
	ID   int
	Name string
	Tags []string
}
