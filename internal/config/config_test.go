package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"cache_path": "/tmp/profiles.json",
		"api_base_url": "http://localhost:8080",
		"debounce_millis": 500
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CachePath != "/tmp/profiles.json" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DebounceMillis != 500 {
		t.Errorf("DebounceMillis = %d", cfg.DebounceMillis)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected an error for an empty path")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RESUME_CACHE_PATH", "/env/profiles.json")
	t.Setenv("RESUME_API_URL", "http://env:8080")
	t.Setenv("GEMINI_API_KEY", "key-from-env")

	cfg := FromEnv()
	if cfg.CachePath != "/env/profiles.json" {
		t.Errorf("CachePath = %q", cfg.CachePath)
	}
	if cfg.APIBaseURL != "http://env:8080" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APIKey != "key-from-env" {
		t.Errorf("APIKey = %q", cfg.APIKey)
	}
}

func TestValidate(t *testing.T) {
	good := &Config{DebounceMillis: 1000}
	if err := good.Validate(); err != nil {
		t.Errorf("Validate failed on a valid config: %v", err)
	}

	bad := &Config{DebounceMillis: -1}
	if err := bad.Validate(); err == nil {
		t.Error("negative debounce should be rejected")
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{APIBaseURL: "http://explicit:8080"}
	defaults := Config{
		CachePath:      "/default/profiles.json",
		APIBaseURL:     "http://default:8080",
		DebounceMillis: 1000,
	}

	merged := cfg.MergeWithDefaults(defaults)

	if merged.APIBaseURL != "http://explicit:8080" {
		t.Errorf("explicit value overwritten: %q", merged.APIBaseURL)
	}
	if merged.CachePath != "/default/profiles.json" {
		t.Errorf("default not applied: %q", merged.CachePath)
	}
	if merged.DebounceMillis != 1000 {
		t.Errorf("default debounce not applied: %d", merged.DebounceMillis)
	}
}
