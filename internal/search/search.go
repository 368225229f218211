// Package search ranks species names for the search box. The full name index
// is fetched once per session into an in-memory store.
package search

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/pokeapi"
	"github.com/abelbrown/dex/internal/store"
)

// DefaultLimit is the number of suggestions Query returns.
const DefaultLimit = 5

// ErrNotLoaded is returned by queries before Load has succeeded.
var ErrNotLoaded = errors.New("search index not loaded")

// Loader fetches the full species name index.
type Loader interface {
	SpeciesIndex(ctx context.Context, total int) ([]pokeapi.NamedResource, error)
}

// Index is the session name index.
type Index struct {
	loader Loader
	store  *store.Store
	total  int
	limit  int

	mu     sync.Mutex
	loaded bool
}

// New creates an index that will load total names into st.
func New(loader Loader, st *store.Store, total, limit int) *Index {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Index{loader: loader, store: st, total: total, limit: limit}
}

// Load fetches the name index unless an earlier Load succeeded. A failed
// Load may be called again.
func (x *Index) Load(ctx context.Context) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.loaded {
		return x.store.Count()
	}

	refs, err := x.loader.SpeciesIndex(ctx, x.total)
	if err != nil {
		return 0, fmt.Errorf("load search index: %w", err)
	}
	stubs, err := catalog.StubsFromRefs(refs)
	if err != nil {
		return 0, fmt.Errorf("load search index: %w", err)
	}

	rows := make([]store.Species, len(stubs))
	for i, s := range stubs {
		rows[i] = store.Species{ID: s.ID, Name: s.Name}
	}
	if err := x.store.ReplaceSpecies(rows); err != nil {
		return 0, fmt.Errorf("load search index: %w", err)
	}

	x.loaded = true
	return len(rows), nil
}

// Loaded reports whether Load has succeeded.
func (x *Index) Loaded() bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.loaded
}

// Query returns the best matches for term: case-insensitive substring,
// prefix matches first, then shorter names.
func (x *Index) Query(term string) ([]catalog.EntityStub, error) {
	if !x.Loaded() {
		return nil, ErrNotLoaded
	}
	rows, err := x.store.SearchSpecies(term, x.limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	out := make([]catalog.EntityStub, len(rows))
	for i, r := range rows {
		out[i] = catalog.EntityStub{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

// Lookup finds the species whose name equals name exactly, ignoring case.
func (x *Index) Lookup(name string) (catalog.EntityStub, bool, error) {
	if !x.Loaded() {
		return catalog.EntityStub{}, false, ErrNotLoaded
	}
	sp, ok, err := x.store.SpeciesByName(name)
	if err != nil || !ok {
		return catalog.EntityStub{}, false, err
	}
	return catalog.EntityStub{ID: sp.ID, Name: sp.Name}, true, nil
}
