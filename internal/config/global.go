package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/ace/config.yml.
type GlobalConfig struct {
	APIKey      string `yaml:"api_key,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Model       string `yaml:"model,omitempty"`
	TargetWords int    `yaml:"target_words,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ace"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// APIKeyEnv overrides the configured credential when set.
	APIKeyEnv = "OPENAI_API_KEY"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ace/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// GetAPIKey returns the generation-service credential. The environment
// variable wins over the global config file; an empty string means no
// credential is configured.
func GetAPIKey() string {
	if key := os.Getenv(APIKeyEnv); key != "" {
		return key
	}
	cfg, _ := LoadGlobalConfig()
	return cfg.APIKey
}

// GetBaseURL returns the configured API endpoint override, if any.
func GetBaseURL() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.BaseURL
}

// GetModel returns the globally configured chat model, if any.
func GetModel() string {
	cfg, _ := LoadGlobalConfig()
	return cfg.Model
}

// GetTargetWords returns the globally configured word target, or 0.
func GetTargetWords() int {
	cfg, _ := LoadGlobalConfig()
	return cfg.TargetWords
}
