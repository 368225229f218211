// Command dex is a terminal Pokedex over PokeAPI.
//
// Usage:
//
//	dex                     Open the catalog at /gen/all
//	dex --route /gen/2/200  Open a deep link
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/config"
	"github.com/abelbrown/dex/internal/controller"
	"github.com/abelbrown/dex/internal/coord"
	"github.com/abelbrown/dex/internal/logging"
	"github.com/abelbrown/dex/internal/otel"
	"github.com/abelbrown/dex/internal/pokeapi"
	"github.com/abelbrown/dex/internal/route"
	"github.com/abelbrown/dex/internal/store"
	"github.com/abelbrown/dex/internal/ui"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dex: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	routeFlag := flag.String("route", "/gen/all", "Route to open at startup, e.g. /gen/1/25")
	flag.Parse()

	start, err := route.Parse(*routeFlag)
	if err != nil {
		fatalf("%v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("load config: %v", err)
	}

	if err := logging.Init(); err != nil {
		fatalf("init logging: %v", err)
	}
	defer logging.Close()
	logging.Info("config loaded", "config", cfg.String())

	events, err := otel.OpenFile(config.Dir())
	if err != nil {
		logging.Warn("event log unavailable, discarding events", "error", err)
		events = otel.NewNullLogger()
	}
	defer events.Close()
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	events.Info(otel.KindStartup, "main", start.String())

	// The name index lives for the session only.
	st, err := store.Open(":memory:")
	if err != nil {
		fatalf("open store: %v", err)
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())

	client := pokeapi.NewClient(cfg.ClientOptions())
	src := catalog.NewAPISource(client)

	coordinator := coord.New(coord.Config{
		Source:      src,
		Facets:      src,
		Names:       client,
		Store:       st,
		SearchLimit: cfg.Search.Results,
		Concurrency: cfg.API.IndexConcurrency,
		Events:      events,
	})

	var program *tea.Program
	app := ui.NewApp(ui.AppConfig{
		Source: src,
		Detail: client,
		List: controller.Options{
			PageSize: cfg.List.PageSize,
			Match:    cfg.MatchPolicy(),
		},
		NearEnd:         cfg.List.NearEndRows,
		MoveConcurrency: cfg.API.MoveConcurrency,
		Route:           start,
		Boot: func() tea.Cmd {
			coordinator.Start(ctx, program)
			return nil
		},
		Context: ctx,
		Events:  events,
		Ring:    ring,
	})

	program = tea.NewProgram(app, tea.WithAltScreen())
	coordinator.Start(ctx, program)

	if _, err := program.Run(); err != nil {
		logging.Error("program exited", "error", err)
		events.Error(otel.KindError, "main", err)
	}

	cancel()
	coordinator.Wait()
	events.Info(otel.KindShutdown, "main", fmt.Sprintf("dropped=%d", events.Dropped()))
}
