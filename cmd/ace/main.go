// Package main provides the ace CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Credentials may live in a local .env file; absence is fine.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ace",
	Short: "Validated reference-driven chapter drafting",
	Long: `ace drafts technical chapter sections from a validated bibliography.

It validates a Word template's paragraph styles and a tabular reference
list, generates a draft through a text-generation service constrained to
the confirmed references, matches the citations the draft actually uses,
and exports the result as a Word document. All commands output JSON by
default for easy scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
