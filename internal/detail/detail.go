// Package detail turns the upstream payloads for one entity into the view
// model the detail pane renders.
package detail

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/dex/internal/pokeapi"
)

// ErrFormNotFound is returned when a requested form is not one of the
// species' varieties.
var ErrFormNotFound = errors.New("form not found")

// maxStat is the base stat value that fills a stat bar.
const maxStat = 255

// fetchConcurrency bounds the ability and type lookups for one view.
const fetchConcurrency = 4

// Client is the subset of pokeapi.Client the detail loader needs.
type Client interface {
	Pokemon(ctx context.Context, id int) (*pokeapi.Pokemon, error)
	Species(ctx context.Context, ref string) (*pokeapi.Species, error)
	EvolutionChain(ctx context.Context, ref string) (*pokeapi.EvolutionChain, error)
	Ability(ctx context.Context, name string) (*pokeapi.Ability, error)
	Type(ctx context.Context, name string) (*pokeapi.TypeDetail, error)
	Move(ctx context.Context, name string) (*pokeapi.Move, error)
}

// Ability is an ability with its English short effect.
type Ability struct {
	Name   string
	Effect string
	Hidden bool
}

// Stat is one base stat.
type Stat struct {
	Name  string
	Value int
}

// Fraction returns the stat as a share of the bar, in [0, 1].
func (s Stat) Fraction() float64 {
	if s.Value <= 0 {
		return 0
	}
	if s.Value >= maxStat {
		return 1
	}
	return float64(s.Value) / maxStat
}

// Form is one variety of a species.
type Form struct {
	ID      int
	Name    string
	Default bool
}

// View is everything the detail pane shows for one entity.
type View struct {
	ID      int // the species' default entity
	FormID  int // the entity actually shown
	Name    string
	Species string
	Height  int // decimetres
	Weight  int // hectograms
	Types   []string
	Cry     string

	Abilities  []Ability
	Stats      []Stat
	Weaknesses []Weakness
	Flavor     []string
	Evolution  []Stage
	Forms      []Form
	Moves      []pokeapi.PokemonMove
}

// Load fetches entity id (or one of its forms when form is non-zero) and
// builds its view. The species and evolution chain are fetched alongside the
// ability and type lookups; any failure fails the whole view.
func Load(ctx context.Context, c Client, id, form int) (*View, error) {
	base, err := c.Pokemon(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load %d: %w", id, err)
	}
	species, err := c.Species(ctx, base.Species.URL)
	if err != nil {
		return nil, fmt.Errorf("load %d: %w", id, err)
	}

	forms, err := varieties(species)
	if err != nil {
		return nil, fmt.Errorf("load %d: %w", id, err)
	}

	shown := base
	if form != 0 && form != id {
		if !hasForm(forms, form) {
			return nil, fmt.Errorf("%w: %d is not a form of %s", ErrFormNotFound, form, species.Name)
		}
		shown, err = c.Pokemon(ctx, form)
		if err != nil {
			return nil, fmt.Errorf("load form %d: %w", form, err)
		}
	}

	v := &View{
		ID:      id,
		FormID:  shown.ID,
		Name:    shown.Name,
		Species: species.Name,
		Height:  shown.Height,
		Weight:  shown.Weight,
		Cry:     shown.Cries.Latest,
		Flavor:  FlavorTexts(species.FlavorTextEntries),
		Forms:   forms,
		Moves:   shown.Moves,
	}
	for _, t := range shown.Types {
		v.Types = append(v.Types, t.Type.Name)
	}
	for _, s := range shown.Stats {
		v.Stats = append(v.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	g.Go(func() error {
		if species.EvolutionChain.URL == "" {
			return nil
		}
		chain, err := c.EvolutionChain(gctx, species.EvolutionChain.URL)
		if err != nil {
			return err
		}
		stages, err := FlattenChain(chain.Chain)
		if err != nil {
			return err
		}
		v.Evolution = stages
		return nil
	})

	v.Abilities = make([]Ability, len(shown.Abilities))
	for i, a := range shown.Abilities {
		g.Go(func() error {
			ab, err := c.Ability(gctx, a.Ability.Name)
			if err != nil {
				return err
			}
			v.Abilities[i] = Ability{Name: a.Ability.Name, Effect: englishShortEffect(ab), Hidden: a.IsHidden}
			return nil
		})
	}

	relations := make([]pokeapi.DamageRelations, len(v.Types))
	for i, t := range v.Types {
		g.Go(func() error {
			td, err := c.Type(gctx, t)
			if err != nil {
				return err
			}
			relations[i] = td.DamageRelations
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load %d: %w", id, err)
	}
	v.Weaknesses = Weaknesses(relations)
	return v, nil
}

func varieties(s *pokeapi.Species) ([]Form, error) {
	out := make([]Form, 0, len(s.Varieties))
	for _, vr := range s.Varieties {
		id, err := pokeapi.IDFromURL(vr.Pokemon.URL)
		if err != nil {
			return nil, err
		}
		out = append(out, Form{ID: id, Name: vr.Pokemon.Name, Default: vr.IsDefault})
	}
	return out, nil
}

func hasForm(forms []Form, id int) bool {
	for _, f := range forms {
		if f.ID == id {
			return true
		}
	}
	return false
}

func englishShortEffect(a *pokeapi.Ability) string {
	for _, e := range a.EffectEntries {
		if e.Language.Name == "en" {
			return strings.Join(strings.Fields(e.ShortEffect), " ")
		}
	}
	return ""
}

// Weakness is the combined damage multiplier an attacking type deals.
type Weakness struct {
	Type       string
	Multiplier float64
}

// Label renders the multiplier, "immune" for zero.
func (w Weakness) Label() string {
	if w.Multiplier == 0 {
		return "immune"
	}
	return "×" + strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", w.Multiplier), "0"), ".")
}

// Weaknesses multiplies the damage relations of each of the defender's
// types per attacking type. Neutral results (exactly 1) are dropped. The
// result is ordered by multiplier, highest first, then by type name.
func Weaknesses(defenders []pokeapi.DamageRelations) []Weakness {
	product := make(map[string]float64)
	apply := func(refs []pokeapi.NamedResource, m float64) {
		for _, r := range refs {
			cur, ok := product[r.Name]
			if !ok {
				cur = 1
			}
			product[r.Name] = cur * m
		}
	}
	for _, d := range defenders {
		apply(d.DoubleDamageFrom, 2)
		apply(d.HalfDamageFrom, 0.5)
		apply(d.NoDamageFrom, 0)
	}

	out := make([]Weakness, 0, len(product))
	for t, m := range product {
		if m == 1 {
			continue
		}
		out = append(out, Weakness{Type: t, Multiplier: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Multiplier != out[j].Multiplier {
			return out[i].Multiplier > out[j].Multiplier
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// FlavorTexts returns the English entries with line breaks, form feeds and
// repeated spaces collapsed to single spaces. An entry whose first three or last three words match an
// earlier kept entry replaces it in place.
func FlavorTexts(entries []pokeapi.FlavorText) []string {
	var out []string
	for _, e := range entries {
		if e.Language.Name != "en" {
			continue
		}
		text := strings.Join(strings.Fields(e.FlavorText), " ")
		if text == "" {
			continue
		}
		if i := similarText(out, text); i >= 0 {
			out[i] = text
			continue
		}
		out = append(out, text)
	}
	return out
}

func similarText(kept []string, text string) int {
	head, tail := edgeWords(text)
	for i, k := range kept {
		kh, kt := edgeWords(k)
		if kh == head || kt == tail {
			return i
		}
	}
	return -1
}

// edgeWords returns the first three and last three lower-cased words.
func edgeWords(s string) (head, tail string) {
	words := strings.Fields(strings.ToLower(s))
	n := min(3, len(words))
	return strings.Join(words[:n], " "), strings.Join(words[len(words)-n:], " ")
}
