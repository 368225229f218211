package catalog

import (
	"context"
	"fmt"

	"github.com/abelbrown/dex/internal/pokeapi"
)

// GenerationInfo is the per-generation metadata a Source reports.
type GenerationInfo struct {
	Name    string
	Title   string
	Region  string
	Members int
}

// Source is the upstream data the catalog reads from.
type Source interface {
	GenerationCount(ctx context.Context) (int, error)
	GenerationInfo(ctx context.Context, n int) (GenerationInfo, error)
	// ListEntities returns the entities at positions [offset, offset+limit).
	ListEntities(ctx context.Context, offset, limit int) ([]EntityStub, error)
	// FacetMembers returns the names of every entity carrying the facet.
	FacetMembers(ctx context.Context, facet string) ([]string, error)
}

// APISource adapts a pokeapi.Client to Source. It is the only place where
// IDs are recovered from reference URLs.
type APISource struct {
	client *pokeapi.Client
}

// NewAPISource wraps a PokeAPI client.
func NewAPISource(c *pokeapi.Client) *APISource {
	return &APISource{client: c}
}

func (s *APISource) GenerationCount(ctx context.Context) (int, error) {
	return s.client.GenerationCount(ctx)
}

func (s *APISource) GenerationInfo(ctx context.Context, n int) (GenerationInfo, error) {
	g, err := s.client.Generation(ctx, n)
	if err != nil {
		return GenerationInfo{}, err
	}
	return GenerationInfo{
		Name:    g.Name,
		Title:   g.EnglishName(),
		Region:  g.MainRegion.Name,
		Members: len(g.PokemonSpecies),
	}, nil
}

func (s *APISource) ListEntities(ctx context.Context, offset, limit int) ([]EntityStub, error) {
	refs, err := s.client.ListPokemon(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return StubsFromRefs(refs)
}

func (s *APISource) FacetMembers(ctx context.Context, facet string) ([]string, error) {
	t, err := s.client.Type(ctx, facet)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(t.Pokemon))
	for _, m := range t.Pokemon {
		names = append(names, m.Pokemon.Name)
	}
	return names, nil
}

// StubsFromRefs converts upstream references into stubs with explicit IDs.
func StubsFromRefs(refs []pokeapi.NamedResource) ([]EntityStub, error) {
	out := make([]EntityStub, 0, len(refs))
	for _, r := range refs {
		id, err := pokeapi.IDFromURL(r.URL)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", r.Name, err)
		}
		out = append(out, EntityStub{ID: id, Name: r.Name})
	}
	return out, nil
}

// hiddenFacets are upstream types no entity in the list endpoints carries.
var hiddenFacets = map[string]bool{"shadow": true, "unknown": true}

// Facets lists the selectable facet names in upstream order.
func (s *APISource) Facets(ctx context.Context) ([]string, error) {
	refs, err := s.client.Types(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if hiddenFacets[r.Name] {
			continue
		}
		out = append(out, r.Name)
	}
	return out, nil
}
