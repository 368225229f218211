package detail

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/dex/internal/pokeapi"
)

// DefaultMoveConcurrency bounds parallel /move/{name} lookups.
const DefaultMoveConcurrency = 6

// MoveFetcher fetches move metadata.
type MoveFetcher interface {
	Move(ctx context.Context, name string) (*pokeapi.Move, error)
}

// MoveRow is one line of the move table.
type MoveRow struct {
	Name     string
	Level    int
	Method   string
	Type     string
	Class    string
	Power    *int
	Accuracy *int
	PP       *int
}

// VersionGroups lists every version group any move is learnable in, in
// order of first appearance.
func VersionGroups(moves []pokeapi.PokemonMove) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range moves {
		for _, d := range m.VersionGroupDetails {
			name := d.VersionGroup.Name
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// MoveTable builds the rows learnable in group, sorted by level then name.
// Metadata for each move is fetched with at most concurrency lookups in
// flight; any failure fails the table.
func MoveTable(ctx context.Context, c MoveFetcher, moves []pokeapi.PokemonMove, group string, concurrency int) ([]MoveRow, error) {
	if concurrency <= 0 {
		concurrency = DefaultMoveConcurrency
	}

	var rows []MoveRow
	for _, m := range moves {
		for _, d := range m.VersionGroupDetails {
			if d.VersionGroup.Name != group {
				continue
			}
			rows = append(rows, MoveRow{
				Name:   m.Move.Name,
				Level:  d.LevelLearnedAt,
				Method: d.MoveLearnMethod.Name,
			})
			break
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range rows {
		g.Go(func() error {
			mv, err := c.Move(gctx, rows[i].Name)
			if err != nil {
				return err
			}
			rows[i].Type = mv.Type.Name
			rows[i].Class = mv.DamageClass.Name
			rows[i].Power = mv.Power
			rows[i].Accuracy = mv.Accuracy
			rows[i].PP = mv.PP
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("move table %s: %w", group, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Level != rows[j].Level {
			return rows[i].Level < rows[j].Level
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}
