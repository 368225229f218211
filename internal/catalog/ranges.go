package catalog

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownGeneration is returned for generation IDs outside the index.
var ErrUnknownGeneration = errors.New("unknown generation")

// defaultBuildConcurrency bounds parallel /generation/{n} fetches.
const defaultBuildConcurrency = 4

// RangeIndex is the cumulative offset table. Immutable once built.
type RangeIndex struct {
	gens  []Generation // gens[k-1] is generation k
	total int
}

// BuildIndex fetches the generation count and every generation's member
// count, then accumulates ranges in generation order. Fetches run with at
// most concurrency in flight; any failure aborts the build.
func BuildIndex(ctx context.Context, src Source, concurrency int) (*RangeIndex, error) {
	if concurrency <= 0 {
		concurrency = defaultBuildConcurrency
	}

	n, err := src.GenerationCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	infos := make([]GenerationInfo, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			info, err := src.GenerationInfo(gctx, i+1)
			if err != nil {
				return fmt.Errorf("generation %d: %w", i+1, err)
			}
			infos[i] = info
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	return IndexFromGenerations(infos), nil
}

// IndexFromGenerations builds an index from metadata already in generation
// order.
func IndexFromGenerations(infos []GenerationInfo) *RangeIndex {
	idx := &RangeIndex{gens: make([]Generation, len(infos))}
	start := 0
	for i, info := range infos {
		end := start + info.Members
		idx.gens[i] = Generation{
			ID:      GenID(i + 1),
			Name:    info.Name,
			Title:   info.Title,
			Region:  info.Region,
			Members: info.Members,
			Range:   Range{Start: start, End: end},
		}
		start = end
	}
	idx.total = start
	return idx
}

// RangeFor returns the range for a generation, or [0, total) for All.
func (x *RangeIndex) RangeFor(id GenID) (Range, error) {
	if id == All {
		return Range{Start: 0, End: x.total}, nil
	}
	g, ok := x.Generation(id)
	if !ok {
		return Range{}, fmt.Errorf("%w: %s", ErrUnknownGeneration, id)
	}
	return g.Range, nil
}

// Generation returns metadata for a numbered generation.
func (x *RangeIndex) Generation(id GenID) (Generation, bool) {
	if id < 1 || int(id) > len(x.gens) {
		return Generation{}, false
	}
	return x.gens[id-1], true
}

// Generations returns every numbered generation in order.
func (x *RangeIndex) Generations() []Generation {
	out := make([]Generation, len(x.gens))
	copy(out, x.gens)
	return out
}

// TotalEntities returns the number of positions in the flat ID space.
func (x *RangeIndex) TotalEntities() int {
	return x.total
}

// TotalGenerations returns the number of numbered generations.
func (x *RangeIndex) TotalGenerations() int {
	return len(x.gens)
}

// GenerationContaining returns the generation whose range holds pos.
// ok is false when pos is outside [0, total).
func (x *RangeIndex) GenerationContaining(pos int) (GenID, bool) {
	for _, g := range x.gens {
		if g.Range.Contains(pos) {
			return g.ID, true
		}
	}
	return All, false
}

// GenerationOf returns the generation owning the entity with the given ID.
func (x *RangeIndex) GenerationOf(id int) (GenID, bool) {
	return x.GenerationContaining(id - 1)
}

// Next returns the generation after id, wrapping through All.
func (x *RangeIndex) Next(id GenID) GenID {
	if int(id) >= len(x.gens) {
		return All
	}
	return id + 1
}

// Prev returns the generation before id, wrapping through All.
func (x *RangeIndex) Prev(id GenID) GenID {
	if id == All {
		return GenID(len(x.gens))
	}
	return id - 1
}
