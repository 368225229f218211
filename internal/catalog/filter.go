package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNoFacets is returned by Apply for an empty selection.
var ErrNoFacets = errors.New("no facets selected")

// MatchPolicy decides how membership in several facets combines.
type MatchPolicy int

const (
	// MatchAll keeps entities present in every facet (intersection).
	MatchAll MatchPolicy = iota
	// MatchAny keeps entities present in at least one facet (union).
	MatchAny
)

func (m MatchPolicy) String() string {
	if m == MatchAny {
		return "any"
	}
	return "all"
}

// ParseMatchPolicy accepts "all"/"and" or "any"/"or".
func ParseMatchPolicy(s string) (MatchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "and":
		return MatchAll, nil
	case "any", "or":
		return MatchAny, nil
	default:
		return MatchAll, fmt.Errorf("invalid match policy %q", s)
	}
}

// Filterer builds the complete filtered list for a range in one pass.
type Filterer struct {
	src    Source
	policy MatchPolicy
}

// NewFilterer creates a filterer with the given match policy.
func NewFilterer(src Source, policy MatchPolicy) *Filterer {
	return &Filterer{src: src, policy: policy}
}

// Policy returns the match policy.
func (f *Filterer) Policy() MatchPolicy {
	return f.policy
}

// Apply fetches the whole range and every facet's membership concurrently,
// then keeps the qualifying entities in upstream order. Matched facets are
// recorded in each stub's Tags. Any failed fetch fails the whole operation.
func (f *Filterer) Apply(ctx context.Context, r Range, facets FacetSelection) ([]EntityStub, error) {
	if facets.Empty() {
		return nil, ErrNoFacets
	}
	tags := facets.Tags()

	var entities []EntityStub
	members := make([]map[string]struct{}, len(tags))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if r.Len() == 0 {
			return nil
		}
		list, err := f.src.ListEntities(gctx, r.Start, r.Len())
		if err != nil {
			return fmt.Errorf("fetch range %s: %w", r, err)
		}
		entities = list
		return nil
	})
	for i, tag := range tags {
		g.Go(func() error {
			names, err := f.src.FacetMembers(gctx, tag)
			if err != nil {
				return fmt.Errorf("fetch facet %s: %w", tag, err)
			}
			set := make(map[string]struct{}, len(names))
			for _, n := range names {
				set[n] = struct{}{}
			}
			members[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("filter %s by %s: %w", r, facets, err)
	}

	out := make([]EntityStub, 0)
	for _, e := range entities {
		var matched []string
		for i, set := range members {
			if _, ok := set[e.Name]; ok {
				matched = append(matched, tags[i])
			}
		}
		if f.keep(len(matched), len(tags)) {
			e.Tags = matched
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *Filterer) keep(matched, selected int) bool {
	if f.policy == MatchAny {
		return matched > 0
	}
	return matched == selected
}
