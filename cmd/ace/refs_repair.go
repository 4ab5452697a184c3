package main

import (
	"fmt"
	"strconv"

	"github.com/acewriter/ace/internal/bibliography"
	"github.com/acewriter/ace/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	refsCmd.AddCommand(refsRepairCmd)
}

var refsRepairCmd = &cobra.Command{
	Use:   "repair <row> <file.pdf>",
	Short: "Fill a reference's missing DOI from its article PDF",
	Long: `Extract a DOI from the article PDF and store it on the given row,
reclassifying the reference. Useful for rows flagged needs-review only
because the DOI/URL column was blank.`,
	Args: cobra.ExactArgs(2),
	RunE: runRefsRepair,
}

// RepairResult is the response for refs repair.
type RepairResult struct {
	Row       int    `json:"row"`
	DOI       string `json:"doi"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func runRefsRepair(cmd *cobra.Command, args []string) error {
	row, err := strconv.Atoi(args[0])
	if err != nil || row < 1 {
		exitWithError(ExitError, "invalid row number %q", args[0])
	}
	pdfPath := args[1]

	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	recs, err := store.References()
	if err != nil {
		exitWithError(ExitError, "reading references: %v", err)
	}

	var found bool
	for _, rec := range recs {
		if rec.Index != row {
			continue
		}
		found = true

		if rec.DOI != "" {
			exitWithError(ExitDataError, "row %d already has DOI %s", row, rec.DOI)
		}

		doi, err := pdf.ExtractDOI(pdfPath)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", pdfPath, err)
		}
		if doi == "" {
			exitWithError(ExitDataError, "no DOI found in %s", pdfPath)
		}

		oldStatus := rec.Status
		rec.DOI = doi
		bibliography.Reclassify(&rec)

		if err := store.UpdateReference(rec); err != nil {
			exitWithError(ExitError, "%v", err)
		}

		result := RepairResult{
			Row:       row,
			DOI:       doi,
			OldStatus: string(oldStatus),
			NewStatus: string(rec.Status),
		}
		if humanOutput {
			fmt.Printf("Row %d: DOI %s (%s -> %s)\n", row, doi, result.OldStatus, result.NewStatus)
		} else {
			outputJSON(result)
		}
		break
	}

	if !found {
		exitWithError(ExitDataError, "no reference at row %d", row)
	}
	return nil
}
