package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var rangesCmd = &cobra.Command{
	Use:   "ranges",
	Short: "Print the generation table",
	Args:  cobra.NoArgs,
	RunE:  runRanges,
}

func runRanges(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	idx, err := s.index(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%-4s %-18s %-8s %7s  %s\n", "GEN", "TITLE", "REGION", "MEMBERS", "IDS")
	for _, g := range idx.Generations() {
		fmt.Printf("%-4d %-18s %-8s %7d  #%d-#%d\n",
			g.ID, g.Title, g.Region, g.Members, g.Range.Start+1, g.Range.End)
	}
	fmt.Printf("\nTotal: %d generations, %d species\n", idx.TotalGenerations(), idx.TotalEntities())
	return nil
}
