package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abelbrown/dex/internal/route"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <route>",
	Short: "Validate a route against the generation index",
	Long: `Parse and resolve a route such as /gen/2/200 or /25. Prints the range
the route lists and, when an entity is selected, the generation that owns it.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	r, err := route.Parse(args[0])
	if err != nil {
		return err
	}

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

	t, err := route.Resolve(r, idx)
	if err != nil {
		return fmt.Errorf("%s: %w", r, err)
	}

	fmt.Fprintf(w, "route:  %s\n", t.Route)
	fmt.Fprintf(w, "range:  %s (%d species)\n", t.Range, t.Range.Len())
	if t.Selected() {
		fmt.Fprintf(w, "owner:  generation %s\n", t.Owner)
		if t.Owner != t.Gen {
			fmt.Fprintf(w, "reveal: %s\n", route.Route{Gen: t.Owner, ID: t.ID, Form: t.Form})
		}
	}
	return nil
}
