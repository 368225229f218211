package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/controller"
	"github.com/abelbrown/dex/internal/detail"
	"github.com/abelbrown/dex/internal/otel"
	"github.com/abelbrown/dex/internal/pokeapi"
	"github.com/abelbrown/dex/internal/route"
	"github.com/abelbrown/dex/internal/search"
)

// AppConfig wires the App. Only Source is required for the list; Detail may
// be nil in tests that never open an entry.
type AppConfig struct {
	Source          catalog.Source
	Detail          detail.Client
	List            controller.Options
	NearEnd         int // rows from the bottom that request the next page
	MoveConcurrency int
	Route           route.Route // opened once the index is ready

	// Boot re-runs startup after an index failure.
	Boot func() tea.Cmd

	Context context.Context
	Events  *otel.Logger
	Ring    *otel.RingBuffer
}

// navigator adapts route.History to controller.Navigator. In replace mode
// the current entry is rewritten instead of pushing a new one, so replaying
// history does not fork it.
type navigator struct {
	history *route.History
	replace bool
}

func (n *navigator) navigate(gen catalog.GenID, id int) {
	if !n.replace {
		n.history.Navigate(gen, id)
		return
	}
	r := route.Route{Gen: gen, ID: id}
	if cur := n.history.Current(); cur.ID == id {
		r.Form = cur.Form
	}
	n.history.Replace(r)
}

// App is the root Bubble Tea model.
// IMPORTANT: App never blocks on the network. Every fetch runs in a tea.Cmd
// and comes back as a message.
type App struct {
	cfg    AppConfig
	ctx    context.Context
	events *otel.Logger

	index   *catalog.RangeIndex
	list    *controller.List
	nav     *navigator
	started bool

	search        *search.Index
	searchLoading bool
	facetTags     []string

	picker facetPicker
	box    searchBox

	cursor        int
	shown         route.Route // route the detail pane shows or is loading
	view          *detail.View
	detailLoading bool
	detailErr     error
	moves         moveTable

	viewport viewport.Model
	spinner  spinner.Model

	bootErr      error
	notFound     error
	err          error
	debugVisible bool
	width        int
	height       int
	ready        bool
}

// NewApp creates the App. The list appears once an IndexReady arrives.
func NewApp(cfg AppConfig) App {
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	if cfg.Events == nil {
		cfg.Events = otel.NewNullLogger()
	}
	if cfg.NearEnd <= 0 {
		cfg.NearEnd = 5
	}
	if cfg.MoveConcurrency <= 0 {
		cfg.MoveConcurrency = detail.DefaultMoveConcurrency
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	return App{
		cfg:      cfg,
		ctx:      cfg.Context,
		events:   cfg.Events,
		nav:      &navigator{history: route.NewHistory(route.Route{})},
		box:      newSearchBox(),
		viewport: viewport.New(0, 0),
		spinner:  s,
	}
}

// Init starts the spinner. Startup data arrives from the coordinator.
func (a App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if otel.TraceEnabled() {
			a.emit(otel.Event{Kind: otel.KindKeyPress, Level: otel.LevelDebug, Msg: msg.String()})
		}
		return a.handleKeyMsg(msg)

	case IndexReady:
		if msg.Err != nil {
			a.bootErr = msg.Err
			return a, nil
		}
		a.bootErr = nil
		a.index = msg.Index
		a.list = controller.New(msg.Index, a.cfg.Source, a.nav.navigate, a.cfg.List)
		a.searchLoading = a.search == nil
		a.nav.history.Replace(a.cfg.Route)
		cmd := a.openRoute(a.cfg.Route)
		return a.finish(cmd)

	case FacetsLoaded:
		if msg.Err != nil {
			a.err = fmt.Errorf("type list: %w", msg.Err)
			return a, nil
		}
		a.facetTags = msg.Tags
		a.picker.tags = msg.Tags
		return a, nil

	case SearchReady:
		a.search = msg.Index
		a.searchLoading = false
		if msg.Err != nil {
			a.box.err = msg.Err
			a.emit(otel.Event{Kind: otel.KindSearchError, Level: otel.LevelWarn, Err: msg.Err.Error()})
		}
		return a, nil

	case SearchResults:
		ev := otel.Event{Kind: otel.KindSearchQuery, Query: msg.Term, Count: len(msg.Results)}
		if msg.Err != nil {
			ev.Kind = otel.KindSearchError
			ev.Err = msg.Err.Error()
		}
		a.emit(ev)
		a.box.SetResults(msg)
		return a, nil

	case ListResult:
		cmd := a.handleListResult(msg)
		return a.finish(cmd)

	case DetailLoaded:
		cmd := a.handleDetail(msg)
		return a.finish(cmd)

	case MovesLoaded:
		if a.view == nil || msg.FormID != a.view.FormID || msg.Group != a.moves.current() {
			return a, nil
		}
		a.moves.loading = false
		a.moves.rows = msg.Rows
		a.moves.err = msg.Err
		ev := otel.Event{Kind: otel.KindMoveTable, Count: len(msg.Rows), Msg: msg.Group}
		if msg.Err != nil {
			ev.Level = otel.LevelError
			ev.Err = msg.Err.Error()
		}
		a.emit(ev)
		a.refreshViewport()
		return a, nil
	}

	return a, nil
}

// finish appends any detail load the latest route change requires.
// Pointer receiver so mutations made while computing cmd are kept.
func (a *App) finish(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	load := a.syncDetail()
	return *a, tea.Batch(cmd, load)
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.box.active {
		return a.handleSearchKey(msg)
	}
	if a.picker.active {
		return a.handlePickerKey(msg)
	}

	// Clear any existing error on key press
	a.err = nil

	if key.Matches(msg, keys.Quit) {
		return a, tea.Quit
	}
	if key.Matches(msg, keys.Debug) {
		a.debugVisible = !a.debugVisible
		return a, nil
	}
	if a.debugVisible {
		return a, nil
	}

	if a.bootErr != nil {
		if key.Matches(msg, keys.Retry) && a.cfg.Boot != nil {
			a.bootErr = nil
			return a, a.cfg.Boot()
		}
		return a, nil
	}
	if a.index == nil {
		return a, nil
	}

	if a.notFound != nil {
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Escape) {
			cmd := a.leaveNotFound()
			return a.finish(cmd)
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, keys.Down):
		if a.cursor < a.list.Len()-1 {
			a.cursor++
		}
		cmd := a.maybeLoadMore()
		return a, cmd

	case key.Matches(msg, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case key.Matches(msg, keys.Top):
		a.cursor = 0
		return a, nil

	case key.Matches(msg, keys.Bottom):
		if n := a.list.Len(); n > 0 {
			a.cursor = n - 1
		}
		cmd := a.maybeLoadMore()
		return a, cmd

	case key.Matches(msg, keys.Open):
		entries := a.list.Entries()
		if a.cursor < len(entries) {
			a.nav.navigate(a.list.Generation(), entries[a.cursor].ID)
		}
		return a.finish(nil)

	case key.Matches(msg, keys.NextGen), key.Matches(msg, keys.PrevGen):
		gen := a.index.Next(a.list.Generation())
		if key.Matches(msg, keys.PrevGen) {
			gen = a.index.Prev(a.list.Generation())
		}
		cmd := a.selectGeneration(gen)
		a.nav.history.Push(route.Route{Gen: gen})
		return a.finish(cmd)

	case key.Matches(msg, keys.Facets):
		a.picker.active = true
		a.picker.tags = a.facetTags
		return a, nil

	case key.Matches(msg, keys.Search):
		blink := a.box.Activate()
		load := a.retrySearchLoad()
		return a, tea.Batch(blink, load)

	case key.Matches(msg, keys.Moves):
		if len(a.moves.groups) > 1 {
			a.moves.group = (a.moves.group + 1) % len(a.moves.groups)
			cmd := a.loadMoves()
			return a, cmd
		}
		return a, nil

	case key.Matches(msg, keys.Back):
		if r, ok := a.nav.history.Back(); ok {
			cmd := a.openRoute(r)
			return a.finish(cmd)
		}
		return a, nil

	case key.Matches(msg, keys.Forward):
		if r, ok := a.nav.history.Forward(); ok {
			cmd := a.openRoute(r)
			return a.finish(cmd)
		}
		return a, nil

	case key.Matches(msg, keys.Retry):
		cmd := a.retry()
		return a.finish(cmd)

	case key.Matches(msg, keys.ScrollUp), key.Matches(msg, keys.ScrollDn):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.box.Deactivate()
		return a, nil

	case "enter":
		stub, ok := a.box.Selected()
		if !ok && a.search != nil && a.box.Term() != "" {
			var err error
			stub, ok, err = a.search.Lookup(a.box.Term())
			if err != nil {
				a.box.err = err
				return a, nil
			}
		}
		if !ok {
			if a.box.Term() != "" {
				a.box.err = fmt.Errorf("no species named %q", a.box.Term())
			}
			return a, nil
		}
		a.box.Deactivate()
		cmd := a.reveal(catalog.All, stub.ID)
		return a.finish(cmd)
	}

	var cmd tea.Cmd
	var changed bool
	a.box, cmd, changed = a.box.Update(msg)
	if changed {
		return a, tea.Batch(cmd, a.query(a.box.Term()))
	}
	return a, cmd
}

func (a App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var toggle string
	var clearAll bool
	a.picker, toggle, clearAll = a.picker.Update(msg)

	if clearAll {
		if job := a.list.ClearFacets(); job != nil {
			a.cursor = 0
			cmd := a.runJob(job)
			return a, cmd
		}
		return a, nil
	}
	if toggle == "" {
		return a, nil
	}

	job, ok := a.list.ToggleFacet(toggle)
	if !ok {
		a.emit(otel.Event{Kind: otel.KindFacetReject, Comp: "list", Facets: a.list.Facets().String(), Msg: toggle})
		return a, nil
	}
	a.cursor = 0
	cmd := a.runJob(job)
	return a, cmd
}

func (a *App) handleListResult(msg ListResult) tea.Cmd {
	ev := otel.Event{
		Comp:   "list",
		Token:  msg.Token,
		Gen:    a.list.Generation().String(),
		Offset: msg.Page.Offset,
		Limit:  msg.Page.Limit,
		Count:  len(msg.Entries),
	}
	if !a.list.Apply(msg.Result) {
		ev.Kind = otel.KindJobStale
		ev.Msg = msg.Kind.String()
		a.emit(ev)
		return nil
	}

	if msg.Kind == controller.JobFilter {
		ev.Kind = otel.KindFilterApply
		ev.Facets = a.list.Facets().String()
	} else {
		ev.Kind = otel.KindPageFetch
	}
	if msg.Err != nil {
		ev.Level = otel.LevelError
		ev.Err = msg.Err.Error()
		if msg.Kind == controller.JobFilter {
			ev.Kind = otel.KindFilterError
		} else {
			ev.Kind = otel.KindPageError
		}
		a.err = msg.Err
	}
	a.emit(ev)

	if msg.Kind == controller.JobThrough {
		a.focus(a.nav.history.Current().ID)
	}
	if n := a.list.Len(); a.cursor >= n {
		a.cursor = max(n-1, 0)
	}
	return nil
}

func (a *App) handleDetail(msg DetailLoaded) tea.Cmd {
	if msg.Route != a.shown {
		return nil
	}
	a.detailLoading = false
	if msg.Err != nil {
		a.emit(otel.Event{Kind: otel.KindDetailError, Level: otel.LevelError, Route: msg.Route.String(), Err: msg.Err.Error()})
		if errors.Is(msg.Err, detail.ErrFormNotFound) || errors.Is(msg.Err, pokeapi.ErrNotFound) {
			a.notFound = msg.Err
			return nil
		}
		a.detailErr = msg.Err
		a.err = msg.Err
		return nil
	}

	a.emit(otel.Event{Kind: otel.KindDetailLoad, Route: msg.Route.String()})
	a.detailErr = nil
	a.view = msg.View
	a.moves = moveTable{groups: detail.VersionGroups(msg.View.Moves)}
	if n := len(a.moves.groups); n > 0 {
		a.moves.group = n - 1
	}
	a.refreshViewport()
	a.viewport.GotoTop()
	return a.loadMoves()
}

// openRoute makes the list and selection match r without growing history.
func (a *App) openRoute(r route.Route) tea.Cmd {
	t, err := route.Resolve(r, a.index)
	if err != nil {
		a.notFound = err
		a.emit(otel.Event{Kind: otel.KindRouteError, Route: r.String(), Err: err.Error()})
		return nil
	}
	a.notFound = nil

	a.nav.replace = true
	defer func() { a.nav.replace = false }()

	if !t.Selected() {
		if a.started && t.Gen == a.list.Generation() {
			return nil
		}
		return a.selectGeneration(t.Gen)
	}
	if a.started && t.Gen == a.list.Generation() && a.list.Contains(t.ID) {
		a.focus(t.ID)
		return nil
	}
	return a.reveal(t.Gen, t.ID)
}

// leaveNotFound goes back to the last good route, or to the catalog root.
func (a *App) leaveNotFound() tea.Cmd {
	a.notFound = nil
	if r, ok := a.nav.history.Back(); ok {
		return a.openRoute(r)
	}
	a.nav.history.Replace(route.Route{})
	return a.openRoute(route.Route{})
}

func (a *App) selectGeneration(gen catalog.GenID) tea.Cmd {
	var job *controller.Job
	if !a.started && gen == catalog.All {
		job = a.list.Start()
	} else {
		var err error
		job, err = a.list.SelectGeneration(gen)
		if err != nil {
			a.err = err
			return nil
		}
	}
	a.started = true
	a.cursor = 0
	return a.runJob(job)
}

// reveal brings id into the list and selects it. A numbered gen pins the
// range; catalog.All lets an already listed entity stay where it is.
func (a *App) reveal(gen catalog.GenID, id int) tea.Cmd {
	job, err := a.list.RevealIn(gen, id)
	if err != nil {
		a.err = err
		return nil
	}
	a.started = true
	if job == nil {
		a.focus(id)
		return nil
	}
	a.cursor = 0
	return a.runJob(job)
}

func (a *App) retry() tea.Cmd {
	switch {
	case a.list.Err() != nil:
		return a.runJob(a.list.Retry())
	case a.detailErr != nil:
		a.detailErr = nil
		a.shown = route.Route{}
		return nil // finish reloads the detail
	case a.moves.err != nil:
		return a.loadMoves()
	}
	return nil
}

func (a *App) maybeLoadMore() tea.Cmd {
	if !nearEnd(a.cursor, a.list.Len(), a.cfg.NearEnd) {
		return nil
	}
	return a.runJob(a.list.LoadMore())
}

// focus moves the cursor onto entity id when it is listed.
func (a *App) focus(id int) {
	for i, e := range a.list.Entries() {
		if e.ID == id {
			a.cursor = i
			return
		}
	}
}

func (a *App) runJob(job *controller.Job) tea.Cmd {
	if job == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg {
		return ListResult{job.Run(ctx)}
	}
}

// syncDetail starts loading the detail for the current route when it
// differs from what the pane shows.
func (a *App) syncDetail() tea.Cmd {
	if a.notFound != nil || a.index == nil {
		return nil
	}
	cur := a.nav.history.Current()
	if cur == a.shown {
		return nil
	}
	a.shown = cur
	a.emit(otel.Event{Kind: otel.KindRoute, Route: cur.String()})

	if cur.ID == 0 || a.cfg.Detail == nil {
		a.view = nil
		a.moves = moveTable{}
		a.detailLoading = false
		a.refreshViewport()
		return nil
	}

	a.detailLoading = true
	c, ctx := a.cfg.Detail, a.ctx
	return func() tea.Msg {
		v, err := detail.Load(ctx, c, cur.ID, cur.Form)
		return DetailLoaded{Route: cur, View: v, Err: err}
	}
}

func (a *App) loadMoves() tea.Cmd {
	v, group := a.view, a.moves.current()
	if v == nil || group == "" || a.cfg.Detail == nil {
		return nil
	}
	a.moves.loading = true
	a.moves.rows = nil
	a.moves.err = nil
	a.refreshViewport()

	c, ctx, n := a.cfg.Detail, a.ctx, a.cfg.MoveConcurrency
	return func() tea.Msg {
		rows, err := detail.MoveTable(ctx, c, v.Moves, group, n)
		return MovesLoaded{FormID: v.FormID, Group: group, Rows: rows, Err: err}
	}
}

func (a *App) query(term string) tea.Cmd {
	if term == "" {
		return func() tea.Msg { return SearchResults{Term: term} }
	}
	x := a.search
	if x == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := x.Query(term)
		return SearchResults{Term: term, Results: res, Err: err}
	}
}

// retrySearchLoad reloads a search index whose startup load failed.
func (a *App) retrySearchLoad() tea.Cmd {
	x := a.search
	if x == nil || x.Loaded() || a.searchLoading {
		return nil
	}
	a.searchLoading = true
	a.box.err = nil
	ctx := a.ctx
	return func() tea.Msg {
		n, err := x.Load(ctx)
		return SearchReady{Index: x, Count: n, Err: err}
	}
}

func (a *App) emit(ev otel.Event) {
	if ev.Comp == "" {
		ev.Comp = "ui"
	}
	if ev.Level == "" {
		ev.Level = otel.LevelInfo
	}
	a.events.Emit(ev)
}

func (a *App) resize() {
	a.viewport.Width = max(a.width-listWidth-1, 10)
	a.viewport.Height = max(a.height-2, 1)
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	a.viewport.SetContent(RenderDetail(a.view, a.moves, a.viewport.Width-1))
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}
	if a.debugVisible {
		return debugOverlay(a.cfg.Ring, a.width, a.height-1) + "\n" + debugStatusBar(a.width)
	}
	if a.bootErr != nil {
		msg := ErrorStyle.Render("Could not build the generation index") + "\n\n" +
			a.bootErr.Error() + "\n\n" +
			StatusBarKey.Render("r") + StatusBarText.Render(" retry  ") +
			StatusBarKey.Render("q") + StatusBarText.Render(" quit")
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, NotFoundStyle.Render(msg))
	}
	if a.index == nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			a.spinner.View()+" Building generation index...")
	}
	if a.notFound != nil {
		return a.notFoundView()
	}

	header := a.renderHeader()
	status := a.renderStatusBar()
	var errorBar string
	if a.err != nil {
		errorBar = ErrorStyle.Width(a.width).Render("Error: " + a.err.Error() + " (press any key to dismiss)")
	}

	bodyHeight := a.height - lipgloss.Height(header) - lipgloss.Height(status)
	if errorBar != "" {
		bodyHeight -= lipgloss.Height(errorBar)
	}
	var searchView string
	if a.box.active {
		searchView = a.box.View(a.width, a.searchLoading)
		bodyHeight -= lipgloss.Height(searchView)
	}
	bodyHeight = max(bodyHeight, 1)

	list := RenderList(a.list.Entries(), a.cursor, a.shown.ID, a.index.TotalEntities(),
		listWidth-1, bodyHeight, a.list.Loading())
	left := ListPane.Width(listWidth - 1).Height(bodyHeight).Render(list)

	var right string
	switch {
	case a.picker.active:
		right = a.picker.View(a.list.Facets(), bodyHeight)
	case a.detailLoading:
		right = " " + a.spinner.View() + " loading " + a.shown.String()
	default:
		vp := a.viewport
		vp.Height = bodyHeight
		right = vp.View()
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	parts := []string{header}
	if searchView != "" {
		parts = append(parts, searchView)
	}
	parts = append(parts, body)
	if errorBar != "" {
		parts = append(parts, errorBar)
	}
	parts = append(parts, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a App) renderHeader() string {
	gen := a.list.Generation()
	title := "All generations"
	meta := fmt.Sprintf("%d species", a.index.TotalEntities())
	if g, ok := a.index.Generation(gen); ok {
		title = g.Title
		meta = fmt.Sprintf("%s · %d species", g.Region, g.Members)
	}

	line := Header.Render(title) + HeaderMeta.Render(meta)
	if facets := a.list.Facets(); !facets.Empty() {
		var badges []string
		for _, t := range facets.Tags() {
			badges = append(badges, TypeBadge(t))
		}
		line += strings.Join(badges, " ") + HeaderMeta.Render(fmt.Sprintf("%s · %d found", a.cfg.List.Match, a.list.Len()))
	}
	return line
}

func (a App) renderStatusBar() string {
	left := StatusBarRoute.Render(a.nav.history.Current().String())
	if a.list.Loading() {
		left = a.spinner.View() + " " + left
	}
	count := fmt.Sprintf("  %d/%d", min(a.cursor+1, a.list.Len()), a.list.Len())
	if !a.list.Complete() && a.list.Mode() == controller.Paged {
		count += fmt.Sprintf(" of %d", a.list.Range().Len())
	}
	left += StatusBarText.Render(count)

	hints := []key.Binding{keys.Down, keys.Open, keys.PrevGen, keys.NextGen, keys.Facets, keys.Search, keys.Moves, keys.Back, keys.Debug, keys.Quit}
	var parts []string
	for _, h := range hints {
		parts = append(parts, StatusBarKey.Render(h.Help().Key)+StatusBarText.Render(":"+h.Help().Desc))
	}
	right := strings.Join(parts, " ")

	padding := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		return StatusBar.Width(a.width).Render(left)
	}
	return StatusBar.Width(a.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (a App) notFoundView() string {
	msg := ErrorStyle.Render("Not found") + "\n\n" +
		a.notFound.Error() + "\n" +
		Muted.Render(a.nav.history.Current().String()) + "\n\n" +
		StatusBarKey.Render("b") + StatusBarText.Render(" back  ") +
		StatusBarKey.Render("q") + StatusBarText.Render(" quit")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, NotFoundStyle.Render(msg))
}

// Cursor returns the list cursor (for testing).
func (a App) Cursor() int {
	return a.cursor
}

// Route returns the current route.
func (a App) Route() route.Route {
	return a.nav.history.Current()
}

// List returns the list controller, nil before the index is ready.
func (a App) List() *controller.List {
	return a.list
}

// NotFound returns the error behind the not-found view, if shown.
func (a App) NotFound() error {
	return a.notFound
}
