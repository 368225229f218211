// Package route holds navigation state as a path string:
//
//	/gen/{genId}/{pokeId}/{formId}
//
// Every segment is optional. A missing genId (or "all") means every
// generation, a missing pokeId means nothing is selected, and "/{pokeId}" is
// shorthand for "/gen/all/{pokeId}".
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abelbrown/dex/internal/catalog"
)

var (
	// ErrBadRoute is returned by Parse for paths that are not routes.
	ErrBadRoute = errors.New("malformed route")
	// ErrGenerationNotFound is returned by Resolve for generations outside
	// the index.
	ErrGenerationNotFound = errors.New("generation not found")
	// ErrEntityNotFound is returned by Resolve for entities outside the
	// catalog or outside the requested generation.
	ErrEntityNotFound = errors.New("entity not found")
)

// Route is a parsed navigation path. Zero ID and Form mean unset.
type Route struct {
	Gen  catalog.GenID
	ID   int
	Form int
}

// Parse reads a route path.
func Parse(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return Route{}, nil
	}
	parts := strings.Split(trimmed, "/")

	if parts[0] != "gen" {
		if len(parts) != 1 {
			return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, path)
		}
		id, err := positive(parts[0])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, path)
		}
		return Route{ID: id}, nil
	}

	if len(parts) > 4 {
		return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, path)
	}
	var r Route
	if len(parts) > 1 {
		gen, err := catalog.ParseGenID(parts[1])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q: %v", ErrBadRoute, path, err)
		}
		r.Gen = gen
	}
	if len(parts) > 2 {
		id, err := positive(parts[2])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, path)
		}
		r.ID = id
	}
	if len(parts) > 3 {
		form, err := positive(parts[3])
		if err != nil {
			return Route{}, fmt.Errorf("%w: %q", ErrBadRoute, path)
		}
		r.Form = form
	}
	return r, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(path string) Route {
	r, err := Parse(path)
	if err != nil {
		panic(err)
	}
	return r
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("non-positive %d", n)
	}
	return n, nil
}

// String formats the route canonically.
func (r Route) String() string {
	var b strings.Builder
	b.WriteString("/gen/")
	b.WriteString(r.Gen.String())
	if r.ID > 0 {
		b.WriteString("/")
		b.WriteString(strconv.Itoa(r.ID))
		if r.Form > 0 {
			b.WriteString("/")
			b.WriteString(strconv.Itoa(r.Form))
		}
	}
	return b.String()
}

// WithEntity returns a copy selecting id in the same generation.
func (r Route) WithEntity(id int) Route {
	return Route{Gen: r.Gen, ID: id}
}

// WithForm returns a copy selecting a form of the current entity.
func (r Route) WithForm(form int) Route {
	r.Form = form
	return r
}

// Target is a route validated against the index.
type Target struct {
	Route
	Range catalog.Range
	// Owner is the generation that holds ID, set when ID is.
	Owner catalog.GenID
}

// Selected reports whether the target names an entity.
func (t Target) Selected() bool {
	return t.ID > 0
}

// Resolve validates r against a built index.
func Resolve(r Route, idx *catalog.RangeIndex) (Target, error) {
	if r.Gen != catalog.All && (r.Gen < 1 || int(r.Gen) > idx.TotalGenerations()) {
		return Target{}, fmt.Errorf("%w: %s", ErrGenerationNotFound, r.Gen)
	}
	rng, err := idx.RangeFor(r.Gen)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %s", ErrGenerationNotFound, r.Gen)
	}
	t := Target{Route: r, Range: rng}
	if r.ID == 0 {
		return t, nil
	}
	if r.ID < 1 || r.ID > idx.TotalEntities() {
		return Target{}, fmt.Errorf("%w: %d", ErrEntityNotFound, r.ID)
	}
	if !rng.ContainsID(r.ID) {
		return Target{}, fmt.Errorf("%w: %d not in generation %s", ErrEntityNotFound, r.ID, r.Gen)
	}
	t.Owner, _ = idx.GenerationOf(r.ID)
	return t, nil
}

// NotFound reports whether err is one of the routing errors shown as a
// not-found view.
func NotFound(err error) bool {
	return errors.Is(err, ErrGenerationNotFound) || errors.Is(err, ErrEntityNotFound) || errors.Is(err, ErrBadRoute)
}
