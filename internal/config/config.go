// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents workspace configuration stored in .ace/config.json.
type Config struct {
	TemplatePath string `json:"template_path,omitempty"` // Default Word template for export
	Model        string `json:"model,omitempty"`         // Chat model override
	TargetWords  int    `json:"target_words,omitempty"`  // Soft minimum draft length override
}

const (
	AceDir     = ".ace"
	ConfigFile = "config.json"
	CacheDir   = "cache"
	DBFile     = "session.db"
)

// AcePath returns the path to the .ace directory from a root path.
func AcePath(root string) string {
	return filepath.Join(root, AceDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, AceDir, ConfigFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, AceDir, CacheDir)
}

// DBPath returns the path to session.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, AceDir, CacheDir, DBFile)
}

// IsWorkspace checks if the given path contains an ace workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(AcePath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find an ace workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in an ace workspace (no .ace directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
