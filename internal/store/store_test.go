package store

import (
	"fmt"
	"sync"
	"testing"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func seed(t *testing.T, st *Store, names ...string) {
	t.Helper()
	list := make([]Species, len(names))
	for i, n := range names {
		list[i] = Species{ID: i + 1, Name: n}
	}
	if err := st.ReplaceSpecies(list); err != nil {
		t.Fatalf("ReplaceSpecies failed: %v", err)
	}
}

func TestOpen(t *testing.T) {
	st := openTest(t)

	// Verify tables exist by querying them
	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='species'").Scan(&name)
	if err != nil {
		t.Fatalf("species table not created: %v", err)
	}
	if name != "species" {
		t.Errorf("expected table name 'species', got %q", name)
	}
}

func TestOpenGivesIndependentDatabases(t *testing.T) {
	a := openTest(t)
	b := openTest(t)
	seed(t, a, "bulbasaur")

	n, err := b.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second in-memory store sees %d rows from the first", n)
	}
}

func TestReplaceSpecies(t *testing.T) {
	st := openTest(t)
	seed(t, st, "bulbasaur", "ivysaur", "venusaur")
	seed(t, st, "pichu", "pikachu")

	n, err := st.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows after replace, got %d", n)
	}
}

func TestSearchSpeciesRanking(t *testing.T) {
	st := openTest(t)
	seed(t, st,
		"raichu",     // 1: contains "chu"
		"pikachu",    // 2
		"pichu",      // 3
		"chuck",      // 4: prefix
		"chu",        // 5: prefix, shortest
		"smoochum",   // 6: contains "chu"
		"chingling",  // 7: no match
		"chimchar",   // 8: no match
		"chuckwalla", // 9: prefix, longest
	)

	got, err := st.SearchSpecies("CHU", 5)
	if err != nil {
		t.Fatalf("SearchSpecies failed: %v", err)
	}
	want := []string{"chu", "chuck", "chuckwalla", "pichu", "raichu"}
	if len(got) != len(want) {
		t.Fatalf("got %d results (%v), want %v", len(got), got, want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}
}

func TestSearchSpeciesTiesBreakByID(t *testing.T) {
	st := openTest(t)
	seed(t, st, "mewb", "mewa")

	got, err := st.SearchSpecies("mew", 5)
	if err != nil {
		t.Fatalf("SearchSpecies failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("unexpected order %v", got)
	}
}

func TestSearchSpeciesEmptyTerm(t *testing.T) {
	st := openTest(t)
	seed(t, st, "abra")
	for _, term := range []string{"", "   "} {
		got, err := st.SearchSpecies(term, 5)
		if err != nil || len(got) != 0 {
			t.Errorf("SearchSpecies(%q) = %v, %v", term, got, err)
		}
	}
}

func TestSpeciesLookups(t *testing.T) {
	st := openTest(t)
	seed(t, st, "bulbasaur", "Mr-Mime")

	sp, ok, err := st.SpeciesByName("mr-mime")
	if err != nil || !ok {
		t.Fatalf("SpeciesByName failed: ok=%v err=%v", ok, err)
	}
	if sp.ID != 2 || sp.Name != "Mr-Mime" {
		t.Errorf("unexpected species %+v", sp)
	}

	if _, ok, err := st.SpeciesByName("missingno"); ok || err != nil {
		t.Errorf("missing name: ok=%v err=%v", ok, err)
	}

	sp, ok, err = st.SpeciesByID(1)
	if err != nil || !ok || sp.Name != "bulbasaur" {
		t.Errorf("SpeciesByID(1) = %+v,%v,%v", sp, ok, err)
	}
}

func TestConcurrentSearches(t *testing.T) {
	st := openTest(t)
	names := make([]string, 200)
	for i := range names {
		names[i] = fmt.Sprintf("species-%d", i+1)
	}
	seed(t, st, names...)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := st.SearchSpecies(fmt.Sprintf("-%d", i), 5); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent search failed: %v", err)
	}
}
