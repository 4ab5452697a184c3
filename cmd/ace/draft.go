package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/acewriter/ace/internal/config"
	"github.com/acewriter/ace/internal/generate"
	"github.com/spf13/cobra"
)

var (
	draftSubject string
	draftChapter string
)

func init() {
	draftCmd.Flags().StringVar(&draftSubject, "subject", "", "Subject of the section to draft")
	draftCmd.Flags().StringVar(&draftChapter, "chapter", "", "Chapter or context label")
	draftCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(draftCmd)
}

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Generate a draft constrained to the working reference list",
	Long: `Generate a technical draft for the subject, constrained to cite only
the working reference list. When the first response falls short of the
word target, exactly one follow-up continuation request is issued; its
failure falls back to the short draft rather than failing the command.

The draft and subject are stored in the session, replacing any previous
draft and invalidating its citation list.`,
	Args: cobra.NoArgs,
	RunE: runDraft,
}

// DraftResult is the response for the draft command.
type DraftResult struct {
	Subject      string `json:"subject"`
	Chapter      string `json:"chapter,omitempty"`
	Words        int    `json:"words"`
	TargetWords  int    `json:"target_words"`
	References   int    `json:"references"`
	Extended     bool   `json:"extended"`
	ExtendFailed bool   `json:"extend_failed,omitempty"`
	Deduplicated bool   `json:"deduplicated,omitempty"`
	Text         string `json:"text"`
}

func runDraft(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	store := mustOpenStore(root)
	defer store.Close()

	working, err := store.Working()
	if err != nil {
		exitWithError(ExitError, "reading working list: %v", err)
	}
	if len(working) == 0 {
		exitWithError(ExitDataError, "working reference list is empty; run 'ace refs import' first")
	}

	apiKey := config.GetAPIKey()
	if apiKey == "" {
		exitWithError(ExitConfigError, "no API key configured (set %s or api_key in %s)",
			config.APIKeyEnv, config.GlobalConfigPath())
	}
	if !generate.PlausibleKey(apiKey) {
		// Advisory only; the service is the authority on the credential.
		warn("API key does not start with %q; the generation call may fail", generate.KeyScheme)
	}

	model := cfg.Model
	if model == "" {
		model = config.GetModel()
	}
	target := cfg.TargetWords
	if target == 0 {
		target = config.GetTargetWords()
	}

	client := generate.NewClient(apiKey,
		generate.WithModel(model),
		generate.WithBaseURL(config.GetBaseURL()),
	)
	gen := generate.NewGenerator(client, generate.WithTargetWords(target))

	draft, err := gen.Generate(context.Background(), generate.Request{
		Subject:    draftSubject,
		Chapter:    draftChapter,
		References: working,
	})
	if err != nil {
		// Session state is untouched: the previous draft remains usable.
		var svcErr *generate.ServiceError
		if errors.As(err, &svcErr) {
			exitWithError(ExitGenerationError, "%v", svcErr)
		}
		exitWithError(ExitError, "%v", err)
	}

	if err := store.SaveDraft(draftSubject, draftChapter, draft.Text, draft.Words, draft.Extended); err != nil {
		exitWithError(ExitError, "storing draft: %v", err)
	}

	result := DraftResult{
		Subject:      draftSubject,
		Chapter:      draftChapter,
		Words:        draft.Words,
		TargetWords:  gen.TargetWords(),
		References:   len(working),
		Extended:     draft.Extended,
		ExtendFailed: draft.ExtendFailed,
		Deduplicated: draft.Deduplicated,
		Text:         draft.Text,
	}

	if humanOutput {
		fmt.Printf("Draft for %q: %d words (target %d)\n", result.Subject, result.Words, result.TargetWords)
		if result.Extended {
			fmt.Println("One continuation request was issued to reach the target.")
		}
		if result.ExtendFailed {
			fmt.Println("The continuation request failed; kept the short draft.")
		}
		fmt.Printf("\n%s\n", result.Text)
	} else {
		outputJSON(result)
	}
	return nil
}
