// Package controller owns the entity list shown by dex and decides how it is
// built: page by page for a generation, or in one pass when type facets are
// selected.
//
// # Architecture
//
//	┌────────────┐     ┌──────────────┐     ┌───────────┐
//	│ RangeIndex │ ──> │     List     │ ──> │  display  │
//	│  (ranges)  │     │ (controller) │     │ (Entries) │
//	└────────────┘     └──────────────┘     └───────────┘
//	                     │          │
//	                 Pager      Filterer
//	                (Paged)    (Filtered)
//
// # Jobs
//
// Every operation that needs the network returns a *Job. The caller runs it
// off the event loop and hands the Result back to Apply on the event loop:
//
//	job := list.SelectGeneration(2)
//	res := job.Run(ctx)      // any goroutine
//	list.Apply(res)          // event loop only
//
// Each job carries the token that was current when it was issued. Changing
// the range or the facets bumps the token, so results of superseded jobs are
// dropped by Apply instead of being mixed into the new list.
//
// # Concurrency
//
// List is not safe for concurrent use. All methods except Job.Run must be
// called from one goroutine (the Bubble Tea update loop in the TUI).
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/abelbrown/dex/internal/catalog"
)

// ErrEntityOutOfRange is returned by Reveal for IDs outside the index.
var ErrEntityOutOfRange = errors.New("entity outside catalog")

// Mode says how the list is built.
type Mode int

const (
	Paged Mode = iota
	Filtered
)

func (m Mode) String() string {
	if m == Filtered {
		return "filtered"
	}
	return "paged"
}

// JobKind identifies what a job fetches.
type JobKind int

const (
	JobPage JobKind = iota
	JobThrough
	JobFilter
)

func (k JobKind) String() string {
	switch k {
	case JobPage:
		return "page"
	case JobThrough:
		return "through"
	case JobFilter:
		return "filter"
	default:
		return fmt.Sprintf("JobKind(%d)", int(k))
	}
}

// Navigator is called when the controller moves the selection to an entity
// in a generation.
type Navigator func(gen catalog.GenID, id int)

// Options configures a List.
type Options struct {
	PageSize int
	Match    catalog.MatchPolicy
}

// Job is one list-building fetch. Run is safe to call from any goroutine.
type Job struct {
	Token  uint64
	Kind   JobKind
	Gen    catalog.GenID
	Range  catalog.Range
	Page   catalog.PageRequest
	Facets catalog.FacetSelection

	pager  *catalog.Pager
	filter *catalog.Filterer
}

// Result is the outcome of a Job, to be passed to List.Apply.
type Result struct {
	Token   uint64
	Kind    JobKind
	Page    catalog.PageRequest
	Entries []catalog.EntityStub
	Err     error
}

// Run performs the job's I/O.
func (j *Job) Run(ctx context.Context) Result {
	res := Result{Token: j.Token, Kind: j.Kind, Page: j.Page}
	switch j.Kind {
	case JobFilter:
		res.Entries, res.Err = j.filter.Apply(ctx, j.Range, j.Facets)
	default:
		res.Entries, res.Err = j.pager.Fetch(ctx, j.Page)
	}
	return res
}

// List is the list controller.
type List struct {
	index    *catalog.RangeIndex
	navigate Navigator
	pager    *catalog.Pager
	filter   *catalog.Filterer

	gen      catalog.GenID
	rng      catalog.Range
	facets   catalog.FacetSelection
	mode     Mode
	filtered []catalog.EntityStub
	loading  bool
	err      error
	token    uint64
	pending  int // Reveal target whose fetch has not yet succeeded
}

// New creates a controller over a built index. navigate may be nil.
func New(index *catalog.RangeIndex, src catalog.Source, navigate Navigator, opts Options) *List {
	if navigate == nil {
		navigate = func(catalog.GenID, int) {}
	}
	l := &List{
		index:    index,
		navigate: navigate,
		pager:    catalog.NewPager(src, opts.PageSize),
		filter:   catalog.NewFilterer(src, opts.Match),
		gen:      catalog.All,
	}
	l.rng, _ = index.RangeFor(catalog.All)
	return l
}

// Start loads the first page of the current range.
func (l *List) Start() *Job {
	return l.rebuild()
}

// SelectGeneration makes gen the active range and rebuilds the list in the
// current mode.
func (l *List) SelectGeneration(gen catalog.GenID) (*Job, error) {
	r, err := l.index.RangeFor(gen)
	if err != nil {
		return nil, err
	}
	l.gen = gen
	l.rng = r
	return l.rebuild(), nil
}

// ToggleFacet adds or removes a facet and rebuilds the list. ok is false
// when the toggle was rejected by the facet limit; the list is untouched.
func (l *List) ToggleFacet(tag string) (job *Job, ok bool) {
	if !l.facets.Toggle(tag) {
		return nil, false
	}
	return l.rebuild(), true
}

// SetFacets replaces the selection. Setting an equal selection is a no-op.
func (l *List) SetFacets(sel catalog.FacetSelection) *Job {
	if sel.Equal(l.facets) {
		return nil
	}
	l.facets = sel
	return l.rebuild()
}

// ClearFacets returns to paged mode.
func (l *List) ClearFacets() *Job {
	return l.SetFacets(catalog.FacetSelection{})
}

// LoadMore is the near-end-of-list signal. It is ignored in Filtered mode,
// while any fetch is outstanding, and once the range is exhausted.
func (l *List) LoadMore() *Job {
	if l.mode == Filtered || l.loading {
		return nil
	}
	req, ok := l.pager.Next()
	if !ok {
		return nil
	}
	l.loading = true
	l.err = nil
	return l.pageJob(JobPage, req)
}

// Retry re-issues the work that last failed. It returns nil when the last
// operation succeeded.
func (l *List) Retry() *Job {
	if l.err == nil || l.loading {
		return nil
	}
	if l.pending != 0 && l.mode == Paged {
		job, err := l.through(l.pending)
		if err != nil {
			l.err = err
			return nil
		}
		return job
	}
	if l.mode == Filtered || l.pager.Len() == 0 {
		return l.rebuild()
	}
	return l.LoadMore()
}

// Reveal brings entity id into the list and selects it. When the entity is
// already listed it only navigates. Otherwise facets are cleared, the owning
// generation becomes the active range, and a single fetch loads every page
// through the entity. The returned job is nil when nothing must be fetched.
func (l *List) Reveal(id int) (*Job, error) {
	if l.Contains(id) {
		l.navigate(l.gen, id)
		return nil, nil
	}
	gen, ok := l.index.GenerationOf(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrEntityOutOfRange, id)
	}
	return l.revealThrough(gen, id)
}

// RevealIn is Reveal pinned to gen: the entity is selected inside gen's
// range even when another range already lists it. catalog.All behaves like
// Reveal.
func (l *List) RevealIn(gen catalog.GenID, id int) (*Job, error) {
	if gen == catalog.All {
		return l.Reveal(id)
	}
	if gen == l.gen && l.Contains(id) {
		l.navigate(l.gen, id)
		return nil, nil
	}
	r, err := l.index.RangeFor(gen)
	if err != nil {
		return nil, err
	}
	if !r.ContainsID(id) {
		return nil, fmt.Errorf("%w: %d in generation %s", ErrEntityOutOfRange, id, gen)
	}
	return l.revealThrough(gen, id)
}

func (l *List) revealThrough(gen catalog.GenID, id int) (*Job, error) {
	r, err := l.index.RangeFor(gen)
	if err != nil {
		return nil, err
	}
	l.gen = gen
	l.rng = r
	l.facets = catalog.FacetSelection{}
	job, err := l.through(id)
	if err != nil {
		return nil, err
	}
	l.navigate(gen, id)
	return job, nil
}

// through restarts the paged list for the current range with one fetch that
// ends past id. id stays pending until that fetch succeeds, so Retry can
// repeat it.
func (l *List) through(id int) (*Job, error) {
	l.token++
	l.mode = Paged
	l.filtered = nil
	l.err = nil
	l.pager.Reset(l.rng)

	req, err := l.pager.Through(id)
	if err != nil {
		l.pending = 0
		return nil, err
	}
	l.pending = id
	l.loading = true
	return l.pageJob(JobThrough, req), nil
}

// Apply folds a job result into the list. It returns false when the result
// was stale and has been dropped.
func (l *List) Apply(res Result) bool {
	if res.Token != l.token {
		return false
	}

	switch res.Kind {
	case JobFilter:
		if l.mode != Filtered {
			return false
		}
		l.loading = false
		if res.Err != nil {
			l.err = res.Err
			l.filtered = nil
			return true
		}
		l.filtered = res.Entries
		return true

	default:
		if l.mode != Paged {
			return false
		}
		err := l.pager.Complete(res.Page, res.Entries, res.Err)
		if errors.Is(err, catalog.ErrStalePage) {
			return false
		}
		l.loading = false
		l.err = err
		if err == nil && res.Kind == JobThrough {
			l.pending = 0
		}
		return true
	}
}

// Run runs job synchronously and applies its result. A nil job is a no-op.
func (l *List) Run(ctx context.Context, job *Job) bool {
	if job == nil {
		return false
	}
	return l.Apply(job.Run(ctx))
}

// rebuild supersedes any in-flight job and starts the list over for the
// current range and facets.
func (l *List) rebuild() *Job {
	l.token++
	l.pending = 0
	l.err = nil
	l.filtered = nil
	l.pager.Reset(l.rng)

	if l.facets.Empty() {
		l.mode = Paged
		req, ok := l.pager.Next()
		if !ok {
			l.loading = false
			return nil
		}
		l.loading = true
		return l.pageJob(JobPage, req)
	}

	l.mode = Filtered
	l.loading = true
	return &Job{
		Token:  l.token,
		Kind:   JobFilter,
		Gen:    l.gen,
		Range:  l.rng,
		Facets: l.facets,
		filter: l.filter,
	}
}

func (l *List) pageJob(kind JobKind, req catalog.PageRequest) *Job {
	return &Job{
		Token: l.token,
		Kind:  kind,
		Gen:   l.gen,
		Range: l.rng,
		Page:  req,
		pager: l.pager,
	}
}

// Entries returns the current list in display order.
func (l *List) Entries() []catalog.EntityStub {
	if l.mode == Filtered {
		out := make([]catalog.EntityStub, len(l.filtered))
		copy(out, l.filtered)
		return out
	}
	return l.pager.List()
}

// Len returns the number of listed entities.
func (l *List) Len() int {
	if l.mode == Filtered {
		return len(l.filtered)
	}
	return l.pager.Len()
}

// Contains reports whether entity id is in the current list.
func (l *List) Contains(id int) bool {
	if l.mode == Filtered {
		for _, e := range l.filtered {
			if e.ID == id {
				return true
			}
		}
		return false
	}
	r := l.pager.Range()
	return r.ContainsID(id) && id-r.Start <= l.pager.Len()
}

// Complete reports whether the whole list for the current range and facets
// is loaded.
func (l *List) Complete() bool {
	if l.mode == Filtered {
		return !l.loading && l.err == nil
	}
	return l.pager.State() == catalog.Exhausted
}

func (l *List) Mode() Mode                     { return l.mode }
func (l *List) Loading() bool                  { return l.loading }
func (l *List) Err() error                     { return l.err }
func (l *List) Generation() catalog.GenID      { return l.gen }
func (l *List) Range() catalog.Range           { return l.rng }
func (l *List) Facets() catalog.FacetSelection { return l.facets }
func (l *List) Offset() int                    { return l.pager.Offset() }
func (l *List) Token() uint64                  { return l.token }
func (l *List) Index() *catalog.RangeIndex     { return l.index }
