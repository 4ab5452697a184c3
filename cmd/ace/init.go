package main

import (
	"fmt"
	"os"

	"github.com/acewriter/ace/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize an ace workspace in the current directory",
	Long:  `Initialize an ace workspace: creates the .ace directory, a default config, and the session cache.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	if config.IsWorkspace(cwd) {
		exitWithError(ExitConfigError, "workspace already initialized at %s", config.AcePath(cwd))
	}

	if err := os.MkdirAll(config.CachePath(cwd), 0755); err != nil {
		exitWithError(ExitError, "creating workspace: %v", err)
	}

	cfg := &config.Config{}
	if err := cfg.Save(cwd); err != nil {
		exitWithError(ExitError, "writing config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Initialized ace workspace in %s\n", config.AcePath(cwd))
	} else {
		outputJSON(StatusResponse{Status: "initialized", Path: config.AcePath(cwd)})
	}
	return nil
}
