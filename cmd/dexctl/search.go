package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abelbrown/dex/internal/search"
	"github.com/abelbrown/dex/internal/store"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Ranked species name search",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Max results (default: config search.results)")
}

func runSearch(_ *cobra.Command, args []string) error {
	term := strings.Join(args, " ")

	s, err := newSession()
	if err != nil {
		return err
	}
	if searchLimit <= 0 {
		searchLimit = s.cfg.Search.Results
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	idx, err := s.index(ctx)
	if err != nil {
		return err
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	x := search.New(s.client, st, idx.TotalEntities(), searchLimit)
	n, err := x.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load name index: %w", err)
	}
	logger.Info("name index loaded", "names", n)

	if exact, ok, err := x.Lookup(term); err == nil && ok {
		fmt.Printf("exact: #%d %s\n\n", exact.ID, exact.Name)
	}

	res, err := x.Query(term)
	if err != nil {
		return fmt.Errorf("query %q: %w", term, err)
	}
	for i, e := range res {
		gen, _ := idx.GenerationOf(e.ID)
		fmt.Printf("%2d. #%-5d %-24s /gen/%s/%d\n", i+1, e.ID, e.Name, gen, e.ID)
	}
	fmt.Printf("\n%d results for %q\n", len(res), term)
	return nil
}
