package main

import (
	"fmt"

	"github.com/acewriter/ace/internal/template"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template <file.dotx>",
	Short: "Validate a Word template's paragraph styles",
	Long: `Validate a Word template against the required paragraph style set:
Heading 1-3, Normal, Quote, Reference, List Bullet, and List Number.

The template is never modified and the report is recomputed on every run.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplate,
}

// TemplateResult is the response for the template command.
type TemplateResult struct {
	Template string                `json:"template"`
	Valid    bool                  `json:"valid"`
	Styles   []template.StyleCheck `json:"styles"`
	Missing  []string              `json:"missing,omitempty"`
}

func runTemplate(cmd *cobra.Command, args []string) error {
	path := args[0]

	report, err := template.Validate(path)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	result := TemplateResult{
		Template: path,
		Valid:    report.Valid(),
		Styles:   report.Styles,
		Missing:  report.Missing(),
	}

	if humanOutput {
		fmt.Printf("Template: %s\n\n", path)
		for _, s := range report.Styles {
			mark := "ok"
			if !s.Present {
				mark = "MISSING"
			}
			fmt.Printf("  %-12s %s\n", mark, s.Name)
		}
		if result.Valid {
			fmt.Printf("\nTemplate valid: all %d required styles present\n", len(report.Styles))
		} else {
			fmt.Printf("\nTemplate invalid: %d styles missing\n", len(result.Missing))
		}
	} else {
		outputJSON(result)
	}
	return nil
}
