package main

import (
	"os"

	"github.com/acewriter/ace/internal/config"
	"github.com/acewriter/ace/internal/session"
)

// mustFindWorkspace locates the enclosing workspace or exits.
func mustFindWorkspace() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	// ACE_ROOT overrides workspace discovery.
	if root := os.Getenv("ACE_ROOT"); root != "" {
		cwd = root
	}

	root, err := config.FindWorkspace(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return root
}

// mustLoadConfig loads the workspace config or exits.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenStore opens the workspace session store or exits.
func mustOpenStore(root string) *session.Store {
	store, err := session.Open(config.DBPath(root))
	if err != nil {
		exitWithError(ExitConfigError, "opening session store: %v", err)
	}
	return store
}
