package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get or set workspace configuration",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show workspace configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a workspace configuration value",
	Long: `Set a workspace configuration value.

Keys:
  template_path  - Default Word template used by export
  model          - Chat model for draft generation
  target_words   - Soft minimum draft length`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	if humanOutput {
		fmt.Printf("template_path: %s\nmodel: %s\ntarget_words: %d\n",
			cfg.TemplatePath, cfg.Model, cfg.TargetWords)
	} else {
		outputJSON(cfg)
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	key, value := args[0], args[1]
	switch key {
	case "template_path":
		cfg.TemplatePath = value
	case "model":
		cfg.Model = value
	case "target_words":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			exitWithError(ExitError, "target_words must be a positive integer, got %q", value)
		}
		cfg.TargetWords = n
	default:
		exitWithError(ExitError, "unknown config key %q", key)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s\n", key, value)
	} else {
		outputJSON(StatusResponse{Status: "updated"})
	}
	return nil
}
