package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DefaultModel != "gemini-2.5-flash" {
		t.Errorf("Expected default model to be 'gemini-2.5-flash', got '%s'", cfg.DefaultModel)
	}
	if cfg.Verbose {
		t.Errorf("Expected Verbose to be false, got %v", cfg.Verbose)
	}
	if cfg.RequestTimeoutSeconds != 300 {
		t.Errorf("Expected RequestTimeoutSeconds 300, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.TUITheme != "tokyonight" {
		t.Errorf("Expected TUITheme 'tokyonight', got '%s'", cfg.TUITheme)
	}
	if cfg.Markdown.Style != "" {
		t.Errorf("Expected markdown style to follow the theme, got '%s'", cfg.Markdown.Style)
	}
}

func TestGetConfigDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() returned error: %v", err)
	}
	if dir != filepath.Join(home, ".geminichat") {
		t.Errorf("GetConfigDir() = %s", dir)
	}
}

func TestGetLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GetLogPath(DefaultConfig())
	if err != nil {
		t.Fatalf("GetLogPath() returned error: %v", err)
	}
	if path != filepath.Join(home, ".geminichat", "geminichat.log") {
		t.Errorf("GetLogPath() = %s", path)
	}

	cfg := DefaultConfig()
	cfg.LogFile = "/tmp/custom.log"
	path, _ = GetLogPath(cfg)
	if path != "/tmp/custom.log" {
		t.Errorf("GetLogPath() with LogFile = %s", path)
	}
}

func TestLoadConfig_FileNotExists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.DefaultModel = "gemini-2.5-pro"
	cfg.Verbose = true
	cfg.Markdown.Style = "light"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() returned error: %v", err)
	}

	path, _ := GetConfigPath()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if loaded.DefaultModel != "gemini-2.5-pro" || !loaded.Verbose || loaded.Markdown.Style != "light" {
		t.Errorf("loaded config mismatch: %+v", loaded)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := EnsureConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	data, _ := json.Marshal(map[string]any{"default_model": "lite"})
	if err := os.WriteFile(filepath.Join(dir, "config.json"), data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}
	if cfg.DefaultModel != "lite" {
		t.Errorf("DefaultModel = %s", cfg.DefaultModel)
	}
	if cfg.RequestTimeoutSeconds != 300 {
		t.Errorf("RequestTimeoutSeconds should keep its default, got %d", cfg.RequestTimeoutSeconds)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, _ := EnsureConfigDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err == nil {
		t.Fatal("Expected parse error")
	}
	if !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("unexpected error: %v", err)
	}
	if cfg.DefaultModel != DefaultConfig().DefaultModel {
		t.Error("Expected defaults on parse error")
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		wantErr bool
		check   func(Config) bool
	}{
		{"default_model", "pro", false, func(c Config) bool { return c.DefaultModel == "pro" }},
		{"verbose", "true", false, func(c Config) bool { return c.Verbose }},
		{"VERBOSE", "false", false, func(c Config) bool { return !c.Verbose }},
		{"verbose", "maybe", true, nil},
		{"request_timeout_seconds", "60", false, func(c Config) bool { return c.RequestTimeoutSeconds == 60 }},
		{"request_timeout_seconds", "-1", true, nil},
		{"markdown.style", "dracula", false, func(c Config) bool { return c.Markdown.Style == "dracula" }},
		{"copy_to_clipboard", "1", false, func(c Config) bool { return c.CopyToClipboard }},
		{"nope", "x", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.Set(tt.key, tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() returned error: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%s, %s) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestKeys_Sorted(t *testing.T) {
	keys := Keys()
	if len(keys) == 0 {
		t.Fatal("Keys() returned nothing")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("Keys() not sorted at %d: %s > %s", i, keys[i-1], keys[i])
		}
	}
}
