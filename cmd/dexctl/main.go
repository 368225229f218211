// Command dexctl is the debugging CLI for dex. Every subcommand talks to
// PokeAPI directly and prints plain text.
//
// Usage:
//
//	dexctl ranges                       Generation table
//	dexctl page --gen 2 --pages 3       Page through a range
//	dexctl filter --types fire,flying   Type filter
//	dexctl search <term>                Ranked name search
//	dexctl resolve <route>              Validate a route
//	dexctl events                       JSONL event log viewer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dexctl",
	Short: "dex debug CLI",
	Long: `dexctl exercises dex's catalog layers against PokeAPI without the TUI.

Environment:
  DEX_HOME     State directory (default: ~/.dex)
  DEX_API_URL  PokeAPI base URL (default: https://pokeapi.co/api/v2)`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(rangesCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(eventsCmd)
}
