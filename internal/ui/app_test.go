package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/controller"
	"github.com/abelbrown/dex/internal/otel"
	"github.com/abelbrown/dex/internal/pokeapi"
	"github.com/abelbrown/dex/internal/pokeapi/pokeapitest"
	"github.com/abelbrown/dex/internal/route"
	"github.com/abelbrown/dex/internal/search"
	"github.com/abelbrown/dex/internal/store"
)

func ref(name, path string) pokeapi.NamedResource {
	return pokeapi.NamedResource{Name: name, URL: path}
}

func dataset() pokeapitest.Dataset {
	ds := pokeapitest.Counts(151, 100)
	ds.Types = map[string][]string{
		"fire":   {pokeapitest.Name(4), pokeapitest.Name(5), pokeapitest.Name(6), pokeapitest.Name(155)},
		"flying": {pokeapitest.Name(6), pokeapitest.Name(16), pokeapitest.Name(163)},
		"water":  {pokeapitest.Name(7)},
	}
	power, acc, pp := 40, 100, 30
	ds.Pokemon = map[int]pokeapi.Pokemon{
		25: {
			ID: 25, Name: "pikachu", Height: 4, Weight: 60,
			Species: ref("pikachu", "/pokemon-species/25/"),
			Types:   []pokeapi.PokemonType{{Slot: 1, Type: ref("electric", "")}},
			Stats:   []pokeapi.PokemonStat{{BaseStat: 90, Stat: ref("speed", "")}},
			Moves: []pokeapi.PokemonMove{{
				Move: ref("thunder-shock", ""),
				VersionGroupDetails: []pokeapi.VersionGroupDetail{{
					LevelLearnedAt: 1, MoveLearnMethod: ref("level-up", ""), VersionGroup: ref("red-blue", ""),
				}},
			}},
		},
	}
	ds.Species = map[int]pokeapi.Species{
		25: {ID: 25, Name: "pikachu", Varieties: []pokeapi.Variety{{IsDefault: true, Pokemon: ref("pikachu", "/pokemon/25/")}}},
	}
	ds.Relations = map[string]pokeapi.DamageRelations{
		"electric": {DoubleDamageFrom: []pokeapi.NamedResource{{Name: "ground"}}},
	}
	ds.Moves = map[string]pokeapi.Move{
		"thunder-shock": {Name: "thunder-shock", Type: ref("electric", ""), DamageClass: ref("special", ""), Power: &power, Accuracy: &acc, PP: &pp},
	}
	return ds
}

type harness struct {
	t     *testing.T
	srv   *pokeapitest.Server
	index *catalog.RangeIndex
	app   App
}

func newHarness(t *testing.T, cfg AppConfig) *harness {
	t.Helper()
	srv := pokeapitest.NewServer(dataset())
	t.Cleanup(srv.Close)

	client := srv.Client()
	src := catalog.NewAPISource(client)
	idx, err := catalog.BuildIndex(context.Background(), src, 2)
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}

	cfg.Source = src
	if cfg.List.PageSize == 0 {
		cfg.List.PageSize = 20
	}
	h := &harness{t: t, srv: srv, index: idx, app: NewApp(cfg)}
	h.app.box.input.Cursor.SetMode(cursor.CursorStatic)
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// send delivers msg and runs every command it produces, feeding dex
// messages back in until the app is idle.
func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	model, cmd := h.app.Update(msg)
	h.app = model.(App)
	h.drain(cmd)
}

func (h *harness) drain(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.drain(c)
		}
	case IndexReady, FacetsLoaded, SearchReady, ListResult, DetailLoaded, MovesLoaded, SearchResults:
		h.send(msg)
	}
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) typeText(s string) {
	h.t.Helper()
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) ready() {
	h.t.Helper()
	h.send(IndexReady{Index: h.index})
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func ids(entries []catalog.EntityStub) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestIndexReadyLoadsFirstPage(t *testing.T) {
	h := newHarness(t, AppConfig{})
	if !strings.Contains(h.app.View(), "Building generation index") {
		t.Errorf("expected loading screen before the index, got:\n%s", h.app.View())
	}

	h.ready()

	if got := h.app.List().Len(); got != 20 {
		t.Fatalf("Len() = %d, want 20", got)
	}
	if h.app.Route() != (route.Route{}) {
		t.Errorf("Route() = %v", h.app.Route())
	}
	view := h.app.View()
	if !strings.Contains(view, "#001 species-1") {
		t.Errorf("list should pad numbers to three digits, got:\n%s", view)
	}
	if !strings.Contains(view, "/gen/all") {
		t.Errorf("status bar should show the route, got:\n%s", view)
	}
}

func TestNearEndLoadsNextPage(t *testing.T) {
	h := newHarness(t, AppConfig{NearEnd: 5})
	h.ready()

	for i := 0; i < 14; i++ {
		h.press("j")
	}
	if h.app.List().Len() != 20 {
		t.Fatalf("loaded early: Len() = %d at cursor %d", h.app.List().Len(), h.app.Cursor())
	}
	h.press("j")
	if h.app.List().Len() != 40 {
		t.Errorf("Len() = %d after reaching the last 5 rows, want 40", h.app.List().Len())
	}
	if h.app.Cursor() != 15 {
		t.Errorf("Cursor() = %d, want 15", h.app.Cursor())
	}
}

func TestGenerationKeysCycleAndPushRoutes(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.ready()

	h.press("]")
	if h.app.List().Generation() != 1 || h.app.Route() != (route.Route{Gen: 1}) {
		t.Fatalf("after ]: gen=%v route=%v", h.app.List().Generation(), h.app.Route())
	}
	h.press("]")
	if got := h.app.List().Entries()[0].ID; got != 152 {
		t.Errorf("generation 2 starts at %d, want 152", got)
	}
	h.press("]")
	if h.app.List().Generation() != catalog.All {
		t.Errorf("] from the last generation should wrap to all, got %v", h.app.List().Generation())
	}

	h.press("b")
	if h.app.Route() != (route.Route{Gen: 2}) || h.app.List().Generation() != 2 {
		t.Errorf("back: route=%v gen=%v", h.app.Route(), h.app.List().Generation())
	}
	h.press("f")
	if h.app.Route() != (route.Route{}) {
		t.Errorf("forward: route=%v", h.app.Route())
	}
}

func TestStaleListResultIsDropped(t *testing.T) {
	h := newHarness(t, AppConfig{})

	model, first := h.app.Update(IndexReady{Index: h.index})
	h.app = model.(App)
	model, second := h.app.Update(keyMsg("["))
	h.app = model.(App)

	h.drain(first)
	if h.app.List().Len() != 0 {
		t.Fatalf("stale page was applied: %v", ids(h.app.List().Entries()))
	}
	h.drain(second)
	if got := h.app.List().Entries(); len(got) != 20 || got[0].ID != 152 {
		t.Errorf("entries = %v, want generation 2's first page", ids(got))
	}
}

func TestDeepLinkRevealsThroughOwningGeneration(t *testing.T) {
	h := newHarness(t, AppConfig{Route: route.MustParse("/gen/all/200")})
	h.ready()

	if h.app.Route() != (route.Route{Gen: 2, ID: 200}) {
		t.Errorf("Route() = %v, want /gen/2/200", h.app.Route())
	}
	list := h.app.List()
	if list.Generation() != 2 || list.Len() != 60 {
		t.Errorf("gen=%v len=%d, want gen 2 with 60 entries", list.Generation(), list.Len())
	}
	if got := list.Entries()[h.app.Cursor()].ID; got != 200 {
		t.Errorf("cursor on %d, want 200", got)
	}
}

func TestInvalidDeepLinkShowsNotFound(t *testing.T) {
	h := newHarness(t, AppConfig{Route: route.MustParse("/gen/9")})
	h.ready()

	if !errors.Is(h.app.NotFound(), route.ErrGenerationNotFound) {
		t.Fatalf("NotFound() = %v", h.app.NotFound())
	}
	if !strings.Contains(h.app.View(), "Not found") {
		t.Errorf("expected not-found view, got:\n%s", h.app.View())
	}

	h.press("j")
	if h.app.NotFound() == nil {
		t.Error("only back or esc leave the not-found view")
	}
	h.press("esc")
	if h.app.NotFound() != nil || h.app.Route() != (route.Route{}) {
		t.Errorf("after esc: notFound=%v route=%v", h.app.NotFound(), h.app.Route())
	}
	if h.app.List().Len() != 20 {
		t.Errorf("Len() = %d, want the first page of all", h.app.List().Len())
	}
}

func TestEntityOutsideGenerationIsNotFound(t *testing.T) {
	h := newHarness(t, AppConfig{Route: route.MustParse("/gen/1/200")})
	h.ready()
	if !errors.Is(h.app.NotFound(), route.ErrEntityNotFound) {
		t.Errorf("NotFound() = %v, want ErrEntityNotFound", h.app.NotFound())
	}
}

func TestFacetPicker(t *testing.T) {
	ring := otel.NewRingBuffer(64)
	events := otel.NewNullLogger()
	events.SetRingBuffer(ring)

	h := newHarness(t, AppConfig{Events: events})
	h.ready()
	h.send(FacetsLoaded{Tags: []string{"fire", "flying", "water"}})

	h.press("t", " ")
	if h.app.List().Mode() != controller.Filtered {
		t.Fatal("toggling a type should filter the list")
	}
	if got := ids(h.app.List().Entries()); len(got) != 4 || got[3] != 155 {
		t.Errorf("fire = %v", got)
	}

	h.press("j", " ")
	if got := ids(h.app.List().Entries()); len(got) != 1 || got[0] != 6 {
		t.Errorf("fire+flying = %v, want [6]", got)
	}

	h.press("j", " ")
	if h.app.List().Facets().Len() != 2 || h.app.List().Facets().Contains("water") {
		t.Errorf("third type should be rejected, facets = %v", h.app.List().Facets())
	}
	if !strings.Contains(h.app.View(), "Types (2/2)") {
		t.Errorf("picker should show the selection count, got:\n%s", h.app.View())
	}

	h.press("c", "esc")
	if h.app.List().Mode() != controller.Paged || h.app.List().Len() != 20 {
		t.Errorf("clear: mode=%v len=%d", h.app.List().Mode(), h.app.List().Len())
	}

	events.Close()
	if len(ring.Matching(string(otel.KindFacetReject))) != 1 {
		t.Errorf("expected one facet.reject event, got %v", ring.Matching("facet."))
	}
}

func TestSearchNavigatesToResult(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.ready()

	st, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	defer st.Close()
	x := search.New(h.srv.Client(), st, h.index.TotalEntities(), 5)
	if _, err := x.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	h.send(SearchReady{Index: x})

	h.press("/")
	h.typeText("species-20")
	if !strings.Contains(h.app.View(), "#20 species-20") {
		t.Errorf("dropdown should list the prefix match first, got:\n%s", h.app.View())
	}
	h.press("down", "enter")

	// species-20 ranks first, then species-200.
	if h.app.Route() != (route.Route{Gen: 2, ID: 200}) {
		t.Errorf("Route() = %v, want /gen/2/200", h.app.Route())
	}
	if got := h.app.List().Entries()[h.app.Cursor()].ID; got != 200 {
		t.Errorf("cursor on %d, want 200", got)
	}
}

func TestSearchExactLookupOnEnter(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.ready()

	st, _ := store.Open(":memory:")
	defer st.Close()
	x := search.New(h.srv.Client(), st, h.index.TotalEntities(), 5)
	x.Load(context.Background())
	h.send(SearchReady{Index: x})

	h.press("/")
	h.typeText("nothing-like-this")
	h.press("enter")
	if !h.app.box.active || h.app.box.err == nil {
		t.Error("unknown names should keep the box open with an error")
	}
	h.press("esc")
	if h.app.box.active {
		t.Error("esc should close the search box")
	}
}

func TestOpenLoadsDetailAndMoves(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.app.cfg.Detail = h.srv.Client()
	h.app.cfg.Route = route.MustParse("/gen/1/25")
	h.ready()

	if h.app.view == nil {
		t.Fatalf("detail not loaded, err=%v notFound=%v", h.app.err, h.app.notFound)
	}
	if h.app.view.Name != "pikachu" {
		t.Errorf("view name = %q", h.app.view.Name)
	}
	if len(h.app.moves.rows) != 1 || h.app.moves.rows[0].Name != "thunder-shock" {
		t.Errorf("moves = %+v", h.app.moves)
	}
	if !strings.Contains(h.app.View(), "pikachu") {
		t.Errorf("detail pane should render the name, got:\n%s", h.app.View())
	}

	h.press("k", "enter")
	if h.app.Route() != (route.Route{Gen: 1, ID: 24}) {
		t.Errorf("enter should navigate to the highlighted entry, got %v", h.app.Route())
	}
	if !errors.Is(h.app.NotFound(), pokeapi.ErrNotFound) {
		t.Errorf("missing entity should show not found, got %v", h.app.NotFound())
	}
}

func TestBootErrorRetry(t *testing.T) {
	booted := false
	h := newHarness(t, AppConfig{Boot: func() tea.Cmd {
		booted = true
		return nil
	}})

	h.send(IndexReady{Err: errors.New("generation 2: 503")})
	if !strings.Contains(h.app.View(), "Could not build the generation index") {
		t.Errorf("expected blocking error screen, got:\n%s", h.app.View())
	}
	h.press("j")
	if booted {
		t.Error("only r retries")
	}
	h.press("r")
	if !booted {
		t.Error("r should re-run startup")
	}
}

func TestListErrorShowsBarAndRetries(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.srv.Fail("/pokemon", 500)
	h.ready()

	if h.app.err == nil || !strings.Contains(h.app.View(), "Error:") {
		t.Fatalf("expected error bar, got:\n%s", h.app.View())
	}
	h.srv.Heal()
	h.press("r")
	if h.app.List().Len() != 20 || h.app.List().Err() != nil {
		t.Errorf("retry: len=%d err=%v", h.app.List().Len(), h.app.List().Err())
	}
}

func TestHistoryAcrossGenerationsRestoresRange(t *testing.T) {
	h := newHarness(t, AppConfig{})
	h.ready()

	h.press("]", "j", "j", "j", "j", "enter")
	if h.app.Route() != (route.Route{Gen: 1, ID: 5}) {
		t.Fatalf("after open: route=%v", h.app.Route())
	}
	h.press("[")
	if h.app.Route() != (route.Route{}) || h.app.List().Generation() != catalog.All {
		t.Fatalf("after [: route=%v gen=%v", h.app.Route(), h.app.List().Generation())
	}

	for _, step := range []struct {
		key  string
		want route.Route
		gen  catalog.GenID
	}{
		{"b", route.Route{Gen: 1, ID: 5}, 1},
		{"f", route.Route{}, catalog.All},
		{"b", route.Route{Gen: 1, ID: 5}, 1},
	} {
		h.press(step.key)
		if h.app.Route() != step.want || h.app.List().Generation() != step.gen {
			t.Fatalf("after %s: route=%v gen=%v, want %v in %v",
				step.key, h.app.Route(), h.app.List().Generation(), step.want, step.gen)
		}
	}
	if got := h.app.List().Entries()[h.app.Cursor()].ID; got != 5 {
		t.Errorf("cursor on %d, want 5", got)
	}
	h.press("b")
	if h.app.Route() != (route.Route{Gen: 1}) {
		t.Errorf("history was rewritten: route=%v, want /gen/1", h.app.Route())
	}
}

func TestRetryFailedDeepLinkKeepsTarget(t *testing.T) {
	h := newHarness(t, AppConfig{Route: route.MustParse("/gen/all/200")})
	h.srv.Fail("/pokemon", 500)
	h.ready()
	if h.app.List().Err() == nil {
		t.Fatal("expected the deep link fetch to fail")
	}

	h.srv.Heal()
	h.press("r")
	list := h.app.List()
	if list.Err() != nil || list.Generation() != 2 || list.Len() != 60 {
		t.Fatalf("retry: err=%v gen=%v len=%d", list.Err(), list.Generation(), list.Len())
	}
	if got := list.Entries()[h.app.Cursor()].ID; got != 200 {
		t.Errorf("cursor on %d, want 200", got)
	}
	if h.app.Route() != (route.Route{Gen: 2, ID: 200}) {
		t.Errorf("Route() = %v", h.app.Route())
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t, AppConfig{})
	_, cmd := h.app.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
