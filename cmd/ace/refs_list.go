package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	refsCmd.AddCommand(refsListCmd)
}

var refsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported references with their classification",
	Args:  cobra.NoArgs,
	RunE:  runRefsList,
}

// ListResult is the response for refs list.
type ListResult struct {
	Total   int      `json:"total"`
	Working int      `json:"working"`
	Rows    []RefRow `json:"rows"`
}

func runRefsList(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	recs, err := store.References()
	if err != nil {
		exitWithError(ExitError, "reading references: %v", err)
	}

	working, err := store.Working()
	if err != nil {
		exitWithError(ExitError, "reading working list: %v", err)
	}
	selected := make(map[int]bool, len(working))
	for _, rec := range working {
		selected[rec.Index] = true
	}

	result := ListResult{
		Total:   len(recs),
		Working: len(working),
		Rows:    refRows(recs, selected),
	}

	if humanOutput {
		fmt.Printf("References: %d total, %d in working list\n\n", result.Total, result.Working)
		printRefRows(result.Rows)
	} else {
		outputJSON(result)
	}
	return nil
}
