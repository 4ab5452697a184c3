package main

import (
	"fmt"
	"os"

	"github.com/acewriter/ace/internal/docx"
	"github.com/acewriter/ace/internal/template"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportTemplate string
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: sanitized subject)")
	exportCmd.Flags().StringVar(&exportTemplate, "template", "", "Word template whose styles the document should carry")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the draft and its reference list as a Word document",
	Long: `Export the session draft as a .docx file: subject heading, body
paragraphs, a page break, and the matched reference list.

Without a template the document carries a built-in style set; with one
(--template or the workspace template_path) the template's styles are
embedded. A failed export leaves the draft and citations untouched.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// ExportResult is the response for the export command.
type ExportResult struct {
	File      string `json:"file"`
	Bytes     int    `json:"bytes"`
	Citations int    `json:"citations"`
}

func runExport(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	store := mustOpenStore(root)
	defer store.Close()

	sess, err := store.Current()
	if err != nil {
		exitWithError(ExitError, "loading session: %v", err)
	}
	if sess.Draft == "" {
		exitWithError(ExitDataError, "no draft in session; run 'ace draft' first")
	}

	cites, err := store.Citations()
	if err != nil {
		exitWithError(ExitError, "reading citations: %v", err)
	}
	formatted := make([]string, len(cites))
	for i, c := range cites {
		formatted[i] = c.Formatted
	}

	templatePath := exportTemplate
	if templatePath == "" {
		templatePath = cfg.TemplatePath
	}

	var styles []byte
	if templatePath != "" {
		styles, err = template.StylesPart(templatePath)
		if err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
	}

	data, err := docx.Export(docx.Document{
		Heading:   sess.Subject,
		Body:      sess.Draft,
		Citations: formatted,
		Styles:    styles,
	})
	if err != nil {
		exitWithError(ExitExportError, "%v", err)
	}

	out := exportOutput
	if out == "" {
		out = docx.SafeFileName(sess.Subject) + ".docx"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		exitWithError(ExitExportError, "writing %s: %v", out, err)
	}

	result := ExportResult{File: out, Bytes: len(data), Citations: len(formatted)}
	if humanOutput {
		fmt.Printf("Exported %s (%d bytes, %d citations)\n", result.File, result.Bytes, result.Citations)
	} else {
		outputJSON(result)
	}
	return nil
}
