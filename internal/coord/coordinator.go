// Package coord runs dex's startup work off the UI goroutine.
//
// Startup is two phases. The generation index is built first because every
// list, route and search operation needs it. Once it exists, the facet
// catalog and the search name index load concurrently. Each result reaches
// the UI as its own message, so the list becomes usable before search does.
package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/logging"
	"github.com/abelbrown/dex/internal/otel"
	"github.com/abelbrown/dex/internal/search"
	"github.com/abelbrown/dex/internal/store"
	"github.com/abelbrown/dex/internal/ui"
)

// bootTimeout bounds each startup phase.
const bootTimeout = 60 * time.Second

// Sender delivers messages to the running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// FacetLister lists the selectable facets. *catalog.APISource satisfies it.
type FacetLister interface {
	Facets(ctx context.Context) ([]string, error)
}

// Config wires a Coordinator.
type Config struct {
	Source      catalog.Source
	Facets      FacetLister
	Names       search.Loader
	Store       *store.Store // session store for the name index
	SearchLimit int
	Concurrency int         // parallel generation fetches
	Events      *otel.Logger // optional
}

// Coordinator manages startup loading.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	cfg Config
	wg  sync.WaitGroup
}

// New creates a Coordinator.
func New(cfg Config) *Coordinator {
	if cfg.Events == nil {
		cfg.Events = otel.NewNullLogger()
	}
	return &Coordinator{cfg: cfg}
}

// Start runs Boot in the background. It may be called again after an index
// failure to retry. A nil sender discards the messages.
func (c *Coordinator) Start(ctx context.Context, sender Sender) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.Boot(ctx, func(msg tea.Msg) {
			if sender != nil {
				sender.Send(msg)
			}
		})
	}()
}

// Wait blocks until every started Boot has returned.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Boot builds the index and then loads facets and search. Messages are
// delivered through send in this order: ui.IndexReady, then ui.FacetsLoaded
// and ui.SearchReady in either order. Nothing follows a failed IndexReady.
func (c *Coordinator) Boot(ctx context.Context, send func(tea.Msg)) {
	idx, err := c.buildIndex(ctx)
	send(ui.IndexReady{Index: idx, Err: err})
	if err != nil {
		return
	}

	var g errgroup.Group
	g.Go(func() error {
		send(c.loadFacets(ctx))
		return nil
	})
	g.Go(func() error {
		send(c.loadSearch(ctx, idx.TotalEntities()))
		return nil
	})
	_ = g.Wait() // both goroutines report through send
}

func (c *Coordinator) buildIndex(ctx context.Context) (*catalog.RangeIndex, error) {
	ctx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()

	span := c.cfg.Events.Start(otel.Event{Kind: otel.KindIndexBuild, Comp: "coord"})
	idx, err := catalog.BuildIndex(ctx, c.cfg.Source, c.cfg.Concurrency)
	if err != nil {
		span.End(0, err, otel.KindIndexError)
		logging.Error("index build failed", "err", err)
		return nil, err
	}
	span.End(idx.TotalEntities(), nil, "")
	logging.Info("index built", "generations", idx.TotalGenerations(), "entities", idx.TotalEntities())
	return idx, nil
}

func (c *Coordinator) loadFacets(ctx context.Context) ui.FacetsLoaded {
	if c.cfg.Facets == nil {
		return ui.FacetsLoaded{}
	}
	ctx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()

	span := c.cfg.Events.Start(otel.Event{Kind: otel.KindFacetList, Comp: "coord"})
	tags, err := c.cfg.Facets.Facets(ctx)
	span.End(len(tags), err, otel.KindError)
	if err != nil {
		logging.Warn("facet catalog unavailable", "err", err)
	}
	return ui.FacetsLoaded{Tags: tags, Err: err}
}

func (c *Coordinator) loadSearch(ctx context.Context, total int) ui.SearchReady {
	x := search.New(c.cfg.Names, c.cfg.Store, total, c.cfg.SearchLimit)

	ctx, cancel := context.WithTimeout(ctx, bootTimeout)
	defer cancel()

	span := c.cfg.Events.Start(otel.Event{Kind: otel.KindSearchLoad, Comp: "coord"})
	n, err := x.Load(ctx)
	span.End(n, err, otel.KindSearchError)
	if err != nil {
		logging.Warn("search index unavailable", "err", err)
	}
	return ui.SearchReady{Index: x, Count: n, Err: err}
}
