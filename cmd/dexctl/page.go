package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abelbrown/dex/internal/catalog"
)

var (
	pageGen   string
	pageCount int
	pageSize  int
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Page through a generation (or all)",
	Args:  cobra.NoArgs,
	RunE:  runPage,
}

func init() {
	pageCmd.Flags().StringVar(&pageGen, "gen", "all", "Generation number or 'all'")
	pageCmd.Flags().IntVar(&pageCount, "pages", 1, "Number of pages to fetch")
	pageCmd.Flags().IntVar(&pageSize, "size", 0, "Page size (default: config list.page_size)")
}

func runPage(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if pageSize <= 0 {
		pageSize = s.cfg.List.PageSize
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	idx, err := s.index(ctx)
	if err != nil {
		return err
	}
	rng, err := rangeFor(idx, pageGen)
	if err != nil {
		return err
	}

	p := catalog.NewPager(s.src, pageSize)
	p.Reset(rng)
	for i := 0; i < pageCount && p.State() != catalog.Exhausted; i++ {
		before := p.Len()
		if err := p.LoadNext(ctx); err != nil {
			return fmt.Errorf("page at offset %d: %w", p.Offset(), err)
		}
		logger.Info("page loaded", "page", i+1, "entries", p.Len()-before, "offset", p.Offset())
	}

	w := digits(idx)
	for _, e := range p.List() {
		fmt.Printf("  #%0*d %s\n", w, e.ID, e.Name)
	}
	fmt.Printf("\n%d of %d in %s (%s)\n", p.Len(), rng.Len(), pageGen, p.State())
	return nil
}
