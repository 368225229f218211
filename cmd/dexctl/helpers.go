package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/config"
	"github.com/abelbrown/dex/internal/pokeapi"
)

// timeout bounds a single subcommand run.
const timeout = 2 * time.Minute

// logger reports progress on stderr so stdout stays pipeable.
var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "dexctl"})

// session is what every networked subcommand needs.
type session struct {
	cfg    *config.Config
	client *pokeapi.Client
	src    *catalog.APISource
}

func newSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	client := pokeapi.NewClient(cfg.ClientOptions())
	return &session{cfg: cfg, client: client, src: catalog.NewAPISource(client)}, nil
}

func (s *session) index(ctx context.Context) (*catalog.RangeIndex, error) {
	logger.Info("building generation index", "api", s.cfg.API.BaseURL)
	idx, err := catalog.BuildIndex(ctx, s.src, s.cfg.API.IndexConcurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to build generation index: %w", err)
	}
	return idx, nil
}

// rangeFor resolves a --gen value against idx.
func rangeFor(idx *catalog.RangeIndex, gen string) (catalog.Range, error) {
	id, err := catalog.ParseGenID(gen)
	if err != nil {
		return catalog.Range{}, err
	}
	return idx.RangeFor(id)
}

// digits is the zero-pad width for entity numbers.
func digits(idx *catalog.RangeIndex) int {
	return len(fmt.Sprint(idx.TotalEntities()))
}
