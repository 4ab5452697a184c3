package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(refsCmd)
}

var refsCmd = &cobra.Command{
	Use:   "refs",
	Short: "Import, inspect, select, and repair bibliography references",
}

// RefRow is the per-row view shared by refs subcommand output.
type RefRow struct {
	Row              int      `json:"row"`
	Reference        string   `json:"reference"`
	Status           string   `json:"status"`
	MissingCritical  []string `json:"missing_critical,omitempty"`
	MissingSecondary []string `json:"missing_secondary,omitempty"`
	Selected         bool     `json:"selected,omitempty"`
}
