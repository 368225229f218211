package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abelbrown/dex/internal/catalog"
)

var (
	filterTypes []string
	filterGen   string
	filterAny   bool
	filterList  bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a type filter to a generation",
	Long:  `Filter a generation by up to two types. Types combine with AND unless --any is set.`,
	Args:  cobra.NoArgs,
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringSliceVar(&filterTypes, "types", nil, "Type names (at most 2)")
	filterCmd.Flags().StringVar(&filterGen, "gen", "all", "Generation number or 'all'")
	filterCmd.Flags().BoolVar(&filterAny, "any", false, "Match any type instead of all")
	filterCmd.Flags().BoolVar(&filterList, "list", false, "List the selectable types and exit")
}

func runFilter(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if filterList {
		tags, err := s.src.Facets(ctx)
		if err != nil {
			return fmt.Errorf("failed to list types: %w", err)
		}
		fmt.Fprintln(w, strings.Join(tags, "\n"))
		return nil
	}

	sel, err := catalog.NewFacetSelection(filterTypes...)
	if err != nil {
		return fmt.Errorf("--types: %w", err)
	}
	if sel.Empty() {
		return errors.New("--types is required")
	}

	idx, err := s.index(ctx)
	if err != nil {
		return err
	}
	rng, err := rangeFor(idx, filterGen)
	if err != nil {
		return err
	}

	policy := s.cfg.MatchPolicy()
	if filterAny {
		policy = catalog.MatchAny
	}

	start := time.Now()
	out, err := catalog.NewFilterer(s.src, policy).Apply(ctx, rng, sel)
	if err != nil {
		return fmt.Errorf("filter %s: %w", sel, err)
	}
	logger.Info("filter applied", "types", sel.String(), "match", policy, "dur", time.Since(start).Round(time.Millisecond))

	pad := digits(idx)
	for _, e := range out {
		fmt.Fprintf(w, "  #%0*d %-20s %s\n", pad, e.ID, e.Name, strings.Join(e.Tags, ","))
	}
	fmt.Fprintf(w, "\n%d matches for %s (%s) in %s\n", len(out), sel, policy, filterGen)
	return nil
}
