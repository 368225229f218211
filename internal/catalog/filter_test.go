package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/pokeapi/pokeapitest"
)

func names(ids ...int) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = pokeapitest.Name(id)
	}
	return out
}

func typedFixture(t *testing.T) (*pokeapitest.Server, *catalog.APISource) {
	t.Helper()
	ds := pokeapitest.Counts(151, 100)
	ds.Types = map[string][]string{
		// 7 is water only; 130 is water and flying; 200 is outside gen 1.
		"water":  names(7, 8, 9, 54, 130, 131, 200),
		"flying": names(6, 16, 17, 18, 130, 142, 200),
		"fire":   names(4, 5, 6, 37, 38, 155),
	}
	srv := pokeapitest.NewServer(ds)
	t.Cleanup(srv.Close)
	return srv, catalog.NewAPISource(srv.Client())
}

func ids(list []catalog.EntityStub) []int {
	out := make([]int, len(list))
	for i, e := range list {
		out[i] = e.ID
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func facets(t *testing.T, tags ...string) catalog.FacetSelection {
	t.Helper()
	f, err := catalog.NewFacetSelection(tags...)
	if err != nil {
		t.Fatalf("NewFacetSelection(%v) failed: %v", tags, err)
	}
	return f
}

func TestFilterWaterFlyingInGenerationOne(t *testing.T) {
	_, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAll)

	got, err := f.Apply(context.Background(), catalog.Range{Start: 0, End: 151}, facets(t, "water", "flying"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !equalInts(ids(got), []int{130}) {
		t.Errorf("got %v, want [130]", ids(got))
	}
	if len(got) == 1 && (len(got[0].Tags) != 2 || got[0].Tags[0] != "water") {
		t.Errorf("unexpected tags %v", got[0].Tags)
	}
}

func TestFilterSingleFacetPreservesUpstreamOrder(t *testing.T) {
	_, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAll)

	got, err := f.Apply(context.Background(), catalog.Range{Start: 0, End: 151}, facets(t, "water"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !equalInts(ids(got), []int{7, 8, 9, 54, 130, 131}) {
		t.Errorf("got %v", ids(got))
	}
}

func TestFilterIntersectionLaw(t *testing.T) {
	_, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAll)
	ctx := context.Background()
	r := catalog.Range{Start: 0, End: 251}

	both, err := f.Apply(ctx, r, facets(t, "water", "flying"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	reversed, err := f.Apply(ctx, r, facets(t, "flying", "water"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	water, _ := f.Apply(ctx, r, facets(t, "water"))
	flying, _ := f.Apply(ctx, r, facets(t, "flying"))

	inFlying := make(map[int]bool)
	for _, e := range flying {
		inFlying[e.ID] = true
	}
	var want []int
	for _, e := range water {
		if inFlying[e.ID] {
			want = append(want, e.ID)
		}
	}

	if !equalInts(ids(both), want) {
		t.Errorf("apply([water,flying]) = %v, want %v", ids(both), want)
	}
	if !equalInts(ids(reversed), want) {
		t.Errorf("apply([flying,water]) = %v, want %v", ids(reversed), want)
	}
}

func TestFilterMatchAny(t *testing.T) {
	_, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAny)

	got, err := f.Apply(context.Background(), catalog.Range{Start: 0, End: 151}, facets(t, "fire", "flying"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	want := []int{4, 5, 6, 16, 17, 18, 37, 38, 130, 142}
	if !equalInts(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}
	for _, e := range got {
		if e.ID == 6 && len(e.Tags) != 2 {
			t.Errorf("entity 6 should carry both tags, got %v", e.Tags)
		}
	}
}

func TestFilterFailureAbortsWholeOperation(t *testing.T) {
	srv, src := typedFixture(t)
	srv.Fail("/type/flying", http.StatusInternalServerError)
	f := catalog.NewFilterer(src, catalog.MatchAll)

	got, err := f.Apply(context.Background(), catalog.Range{Start: 0, End: 151}, facets(t, "water", "flying"))
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("partial result returned: %v", ids(got))
	}
}

func TestFilterFetchesWholeRangeOnce(t *testing.T) {
	srv, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAll)

	before := srv.Requests("/pokemon/")
	if _, err := f.Apply(context.Background(), catalog.Range{Start: 151, End: 251}, facets(t, "fire")); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := srv.Requests("/pokemon/") - before; got != 1 {
		t.Errorf("expected 1 range request, got %d", got)
	}
}

func TestFilterRejectsEmptySelection(t *testing.T) {
	_, src := typedFixture(t)
	f := catalog.NewFilterer(src, catalog.MatchAll)
	if _, err := f.Apply(context.Background(), catalog.Range{Start: 0, End: 10}, catalog.FacetSelection{}); !errors.Is(err, catalog.ErrNoFacets) {
		t.Errorf("expected ErrNoFacets, got %v", err)
	}
}

func TestFacetsExcludeHiddenTypes(t *testing.T) {
	_, src := typedFixture(t)
	got, err := src.Facets(context.Background())
	if err != nil {
		t.Fatalf("Facets failed: %v", err)
	}
	want := []string{"fire", "flying", "water"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestParseMatchPolicy(t *testing.T) {
	for in, want := range map[string]catalog.MatchPolicy{"": catalog.MatchAll, "and": catalog.MatchAll, "ALL": catalog.MatchAll, "or": catalog.MatchAny, "any": catalog.MatchAny} {
		got, err := catalog.ParseMatchPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseMatchPolicy(%q) = %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := catalog.ParseMatchPolicy("xor"); err == nil {
		t.Error("expected error for xor")
	}
}

func TestFacetSelectionLimit(t *testing.T) {
	var s catalog.FacetSelection
	if !s.Toggle("water") || !s.Toggle("flying") {
		t.Fatal("first two toggles should succeed")
	}
	if s.Toggle("fire") {
		t.Error("third toggle must be rejected")
	}
	if s.Len() != 2 || s.Contains("fire") {
		t.Errorf("selection changed on rejection: %v", s.Tags())
	}
	if err := s.Add("fire"); !errors.Is(err, catalog.ErrFacetLimit) {
		t.Errorf("Add past limit: expected ErrFacetLimit, got %v", err)
	}

	if !s.Toggle("WATER") {
		t.Error("toggle off should succeed")
	}
	if got := s.Tags(); len(got) != 1 || got[0] != "flying" {
		t.Errorf("after removing water: %v", got)
	}
	if !s.Toggle("fire") {
		t.Error("toggle after removal should succeed")
	}
	if got := s.String(); got != "flying,fire" {
		t.Errorf("String() = %q", got)
	}

	if _, err := catalog.NewFacetSelection("a", "b", "c"); !errors.Is(err, catalog.ErrFacetLimit) {
		t.Errorf("NewFacetSelection with 3 tags: expected ErrFacetLimit, got %v", err)
	}
}

func TestFacetSelectionCopiesAreIndependent(t *testing.T) {
	a := facets(t, "water", "flying")
	a.Remove("water")
	b := a
	b.Add("fire")
	a.Add("grass")

	if got := b.Tags(); len(got) != 2 || got[1] != "fire" {
		t.Errorf("b = %v, want [flying fire]", got)
	}
	if got := a.Tags(); len(got) != 2 || got[1] != "grass" {
		t.Errorf("a = %v, want [flying grass]", got)
	}
	if a.Equal(b) {
		t.Error("a and b should differ")
	}
}
