package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	sessionCmd.AddCommand(sessionResetCmd)
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show or reset the workflow session",
	Args:  cobra.NoArgs,
	RunE:  runSessionShow,
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear subject, draft, citations, and references atomically",
	Long: `Clear the whole session in a single transaction: subject, draft,
citation list, imported references, and selection. The session is never
left with a stale draft paired against a new subject.`,
	Args: cobra.NoArgs,
	RunE: runSessionReset,
}

// SessionResult is the response for the session command.
type SessionResult struct {
	ID         string `json:"id"`
	Subject    string `json:"subject,omitempty"`
	Chapter    string `json:"chapter,omitempty"`
	DraftWords int    `json:"draft_words"`
	Extended   bool   `json:"extended,omitempty"`
	References int    `json:"references"`
	Citations  int    `json:"citations"`
	UpdatedAt  string `json:"updated_at"`
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	sess, err := store.Current()
	if err != nil {
		exitWithError(ExitError, "loading session: %v", err)
	}
	recs, err := store.References()
	if err != nil {
		exitWithError(ExitError, "reading references: %v", err)
	}
	cites, err := store.Citations()
	if err != nil {
		exitWithError(ExitError, "reading citations: %v", err)
	}

	result := SessionResult{
		ID:         sess.ID,
		Subject:    sess.Subject,
		Chapter:    sess.Chapter,
		DraftWords: sess.DraftWords,
		Extended:   sess.Extended,
		References: len(recs),
		Citations:  len(cites),
		UpdatedAt:  sess.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if humanOutput {
		fmt.Printf("Session %s\n", result.ID)
		fmt.Printf("  subject:    %s\n", orDash(result.Subject))
		fmt.Printf("  chapter:    %s\n", orDash(result.Chapter))
		fmt.Printf("  draft:      %d words\n", result.DraftWords)
		fmt.Printf("  references: %d\n", result.References)
		fmt.Printf("  citations:  %d\n", result.Citations)
	} else {
		outputJSON(result)
	}
	return nil
}

func runSessionReset(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	store := mustOpenStore(root)
	defer store.Close()

	if err := store.Reset(); err != nil {
		exitWithError(ExitError, "resetting session: %v", err)
	}

	if humanOutput {
		fmt.Println("Session reset")
	} else {
		outputJSON(StatusResponse{Status: "reset"})
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
