package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var (
	selectRows string
	selectAll  bool
)

func init() {
	refsSelectCmd.Flags().StringVar(&selectRows, "rows", "", "Comma-separated 1-based row numbers to accept (e.g. 2,5)")
	refsSelectCmd.Flags().BoolVar(&selectAll, "all", false, "Accept every needs-review row")
	refsCmd.AddCommand(refsSelectCmd)
}

var refsSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Accept needs-review rows into the working reference list",
	Long: `Accept needs-review rows into the working reference list.

Complete and incomplete-secondary rows are always included; rows flagged
needs-review take part in generation only after being accepted here.
Selection replaces any previous selection and is idempotent.`,
	Args: cobra.NoArgs,
	RunE: runRefsSelect,
}

// SelectResult is the response for refs select.
type SelectResult struct {
	Accepted []int `json:"accepted"`
	Working  int   `json:"working"`
}

func runRefsSelect(cmd *cobra.Command, args []string) error {
	if !selectAll && selectRows == "" {
		exitWithError(ExitError, "either --rows or --all is required")
	}

	rows, err := parseRowList(selectRows)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	if err := store.SetSelection(rows, selectAll); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	working, err := store.Working()
	if err != nil {
		exitWithError(ExitError, "reading working list: %v", err)
	}

	accepted := rows
	if selectAll {
		accepted = nil
		for _, rec := range working {
			if !rec.Citable() {
				accepted = append(accepted, rec.Index)
			}
		}
	}
	if accepted == nil {
		accepted = []int{}
	}

	result := SelectResult{Accepted: accepted, Working: len(working)}
	if humanOutput {
		fmt.Printf("Accepted %d needs-review rows; working list has %d references\n",
			len(result.Accepted), result.Working)
	} else {
		outputJSON(result)
	}
	return nil
}

// parseRowList parses "2,5,7" into sorted-as-given row indices.
func parseRowList(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid row number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
