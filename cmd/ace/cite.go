package main

import (
	"fmt"

	"github.com/acewriter/ace/internal/citation"
	"github.com/acewriter/ace/internal/session"
	"github.com/spf13/cobra"
)

var citeLoose bool

func init() {
	citeCmd.Flags().BoolVar(&citeLoose, "loose", false, "Also match bare surnames (over-matches; off by default)")
	rootCmd.AddCommand(citeCmd)
}

var citeCmd = &cobra.Command{
	Use:   "cite",
	Short: "Match the draft's citations against the reference table",
	Long: `Scan the current draft for parenthetical author-year citations such as
(Smith, 2020), map them back to the imported reference table, and store
the matched list as APA-style reference strings for export.`,
	Args: cobra.NoArgs,
	RunE: runCite,
}

// CiteResult is the response for the cite command.
type CiteResult struct {
	Matched    int      `json:"matched"`
	References []string `json:"references"`
}

func runCite(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	sess, err := store.Current()
	if err != nil {
		exitWithError(ExitError, "loading session: %v", err)
	}
	if sess.Draft == "" {
		exitWithError(ExitDataError, "no draft in session; run 'ace draft' first")
	}

	// Matching runs against the full imported table, not just the working
	// list, so citations of manually-typed references still resolve.
	recs, err := store.References()
	if err != nil {
		exitWithError(ExitError, "reading references: %v", err)
	}

	var opts []citation.Option
	if citeLoose {
		opts = append(opts, citation.WithLooseMatching())
	}
	matched := citation.NewMatcher(opts...).Match(sess.Draft, recs)

	formatted := citation.FormatAPAList(matched)
	cites := make([]session.Citation, len(matched))
	for i, rec := range matched {
		cites[i] = session.Citation{RefIndex: rec.Index, Formatted: formatted[i]}
	}
	if err := store.SaveCitations(cites); err != nil {
		exitWithError(ExitError, "storing citations: %v", err)
	}

	result := CiteResult{Matched: len(matched), References: formatted}
	if result.References == nil {
		result.References = []string{}
	}

	if humanOutput {
		fmt.Printf("Matched %d references\n\n", result.Matched)
		for _, ref := range result.References {
			fmt.Printf("  %s\n", ref)
		}
	} else {
		outputJSON(result)
	}
	return nil
}
