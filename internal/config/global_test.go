package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestGlobalConfigPath(t *testing.T) {
	// Save and restore XDG_CONFIG_HOME
	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	// Test with custom XDG_CONFIG_HOME
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/ace/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Test with empty XDG_CONFIG_HOME (should use ~/.config)
	os.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "ace", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func writeGlobalConfig(t *testing.T, dir string, cfg GlobalConfig) {
	t.Helper()
	configDir := filepath.Join(dir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	// Point to a non-existent directory
	os.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadGlobalConfig() returned nil")
	}
	if cfg.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.APIKey)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	writeGlobalConfig(t, tmpDir, GlobalConfig{
		APIKey:      "sk-test",
		BaseURL:     "https://example.com/v1",
		Model:       "gpt-4o",
		TargetWords: 1800,
	})
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.APIKey)
	}
	if cfg.BaseURL != "https://example.com/v1" {
		t.Errorf("BaseURL = %q, want https://example.com/v1", cfg.BaseURL)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", cfg.Model)
	}
	if cfg.TargetWords != 1800 {
		t.Errorf("TargetWords = %d, want 1800", cfg.TargetWords)
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte("api_key: [broken"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestGetAPIKey(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	origKey := os.Getenv(APIKeyEnv)
	origXDG := os.Getenv("XDG_CONFIG_HOME")
	defer func() {
		os.Setenv(APIKeyEnv, origKey)
		os.Setenv("XDG_CONFIG_HOME", origXDG)
	}()

	tmpDir := t.TempDir()
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	// Env var takes priority
	os.Setenv(APIKeyEnv, "sk-env-key")
	if got := GetAPIKey(); got != "sk-env-key" {
		t.Errorf("GetAPIKey() = %q, want sk-env-key", got)
	}

	// Without env var, falls back to config
	os.Setenv(APIKeyEnv, "")
	ResetGlobalConfigCache()
	writeGlobalConfig(t, tmpDir, GlobalConfig{APIKey: "sk-config-key"})

	if got := GetAPIKey(); got != "sk-config-key" {
		t.Errorf("GetAPIKey() = %q, want sk-config-key", got)
	}
}

func TestGlobalConfigCache(t *testing.T) {
	ResetGlobalConfigCache()
	defer ResetGlobalConfigCache()

	orig := os.Getenv("XDG_CONFIG_HOME")
	defer os.Setenv("XDG_CONFIG_HOME", orig)

	tmpDir := t.TempDir()
	writeGlobalConfig(t, tmpDir, GlobalConfig{Model: "cached-model"})
	os.Setenv("XDG_CONFIG_HOME", tmpDir)

	cfg1, _ := LoadGlobalConfig()
	if cfg1.Model != "cached-model" {
		t.Errorf("First load: Model = %q, want cached-model", cfg1.Model)
	}

	// Modify file; cached value should still be returned
	writeGlobalConfig(t, tmpDir, GlobalConfig{Model: "modified-model"})
	cfg2, _ := LoadGlobalConfig()
	if cfg2.Model != "cached-model" {
		t.Errorf("Second load: Model = %q, want cached-model (cached)", cfg2.Model)
	}

	// Reset cache, the modified file is read
	ResetGlobalConfigCache()
	cfg3, _ := LoadGlobalConfig()
	if cfg3.Model != "modified-model" {
		t.Errorf("Third load: Model = %q, want modified-model", cfg3.Model)
	}
}
