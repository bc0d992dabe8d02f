// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty directory so no config file is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Search.TotalLimit != 20 {
		t.Errorf("Search.TotalLimit = %d, want 20", cfg.Search.TotalLimit)
	}
	if cfg.Search.DedupThreshold != 0.80 {
		t.Errorf("Search.DedupThreshold = %f, want 0.80", cfg.Search.DedupThreshold)
	}
	if cfg.Search.Timeout != 30*time.Second {
		t.Errorf("Search.Timeout = %v, want 30s", cfg.Search.Timeout)
	}
	if cfg.Search.InterClientDelay != time.Second {
		t.Errorf("Search.InterClientDelay = %v, want 1s", cfg.Search.InterClientDelay)
	}
	if !cfg.Search.EnableArxiv || !cfg.Search.EnableSemanticScholar || !cfg.Search.EnableCrossRef {
		t.Error("free sources should be enabled by default")
	}
	if cfg.LLM.Model != "anthropic/claude-sonnet-4" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.Temperature != 0.3 || cfg.LLM.MaxTokens != 5000 {
		t.Errorf("LLM defaults = temp %f tokens %d", cfg.LLM.Temperature, cfg.LLM.MaxTokens)
	}
	if cfg.Visual.MaxPages != 5 || cfg.Visual.MaxExtractions != 3 {
		t.Errorf("Visual defaults = %+v", cfg.Visual)
	}
	if cfg.History.Window != 5 {
		t.Errorf("History.Window = %d, want 5", cfg.History.Window)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "research-assistant.yaml")
	content := []byte(`search:
  total_limit: 5
  enable_crossref: false
llm:
  model: openai/gpt-4o
server:
  addr: ":9999"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Search.TotalLimit != 5 {
		t.Errorf("Search.TotalLimit = %d, want 5", cfg.Search.TotalLimit)
	}
	if cfg.Search.EnableCrossRef {
		t.Error("Search.EnableCrossRef = true, want false")
	}
	if cfg.LLM.Model != "openai/gpt-4o" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	// Untouched keys keep their defaults.
	if cfg.Search.PerSourceLimit != 10 {
		t.Errorf("Search.PerSourceLimit = %d, want default 10", cfg.Search.PerSourceLimit)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadAPIKeysFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "or-test-key")
	t.Setenv("SERPER_API_KEY", "serper-test-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "or-test-key" {
		t.Errorf("LLM.APIKey = %q", cfg.LLM.APIKey)
	}
	if cfg.Search.SerperAPIKey != "serper-test-key" {
		t.Errorf("Search.SerperAPIKey = %q", cfg.Search.SerperAPIKey)
	}
}

func TestLoadSecretsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, ".secrets"), 0o755); err != nil {
		t.Fatalf("creating .secrets: %v", err)
	}
	write := func(name, val string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, ".secrets", name), []byte(val+"\n"), 0o600); err != nil {
			t.Fatalf("writing secret %s: %v", name, err)
		}
	}
	write("openrouter-api-key", "or-from-file")
	write("serper-api-key", "serper-from-file")

	// The environment still wins over a key file. Empty values are
	// ignored by viper, so this also shields the test from a key
	// exported in the developer's shell.
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("SERPER_API_KEY", "serper-from-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "or-from-file" {
		t.Errorf("LLM.APIKey = %q, want key file value", cfg.LLM.APIKey)
	}
	if cfg.Search.SerperAPIKey != "serper-from-env" {
		t.Errorf("Search.SerperAPIKey = %q, want env to override key file", cfg.Search.SerperAPIKey)
	}
}

func TestValidate(t *testing.T) {
	base := func() types.Config {
		return types.Config{
			Search: types.SearchConfig{
				EnableArxiv:    true,
				DedupThreshold: 0.8,
			},
			LLM: types.LLMConfig{APIKey: "or-key"},
		}
	}

	if err := Validate(base(), true); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg := base()
	cfg.LLM.APIKey = ""
	if err := Validate(cfg, true); err == nil {
		t.Error("missing LLM key should fail when required")
	}
	if err := Validate(cfg, false); err != nil {
		t.Errorf("missing LLM key should pass when not required: %v", err)
	}

	cfg = base()
	cfg.LLM.APIKey = "your-api-key-here"
	if err := Validate(cfg, true); err == nil {
		t.Error("placeholder LLM key should fail")
	}

	cfg = base()
	cfg.Search.EnableArxiv = false
	if err := Validate(cfg, false); err == nil {
		t.Error("no enabled sources should fail")
	}

	cfg = base()
	cfg.Search.DedupThreshold = 1.5
	if err := Validate(cfg, false); err == nil {
		t.Error("out-of-range threshold should fail")
	}
}
