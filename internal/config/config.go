// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads the assistant configuration from YAML, the
// environment, .env files, and a .secrets/ key directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

const (
	configName = "research-assistant"
	envPrefix  = "RESEARCH_ASSISTANT"
	secretsDir = ".secrets"
)

// secretKeys maps config keys to their secret file names under secretsDir.
var secretKeys = map[string]string{
	"llm.api_key":                     "openrouter-api-key",
	"search.serper_api_key":           "serper-api-key",
	"search.semantic_scholar_api_key": "semantic-scholar-api-key",
	"search.openalex_mailto":          "openalex-mailto",
}

// Load reads configuration in precedence order: explicit config file,
// ./research-assistant.yaml, ~/.config/research-assistant/config.yaml,
// then environment variables (RESEARCH_ASSISTANT_* and the well-known
// API key names). A .env file in the working directory is loaded first
// when present, and key files under .secrets/ act as last-resort
// defaults.
func Load(cfgFile string) (types.Config, error) {
	// Missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys users already have exported under their conventional names.
	_ = v.BindEnv("llm.api_key", "OPENROUTER_API_KEY")
	_ = v.BindEnv("search.serper_api_key", "SERPER_API_KEY")
	_ = v.BindEnv("search.semantic_scholar_api_key", "SEMANTIC_SCHOLAR_API_KEY")

	setDefaults(v)

	// Key files beat nothing but lose to config files and the environment.
	sec, err := secrets.Load(secretsDir)
	if err != nil {
		return types.Config{}, err
	}
	for key, name := range secretKeys {
		if val := sec[name]; val != "" {
			v.SetDefault(key, val)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return types.Config{}, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("search.timeout", "30s")
	v.SetDefault("search.user_agent", "research-assistant/0.1")
	v.SetDefault("search.total_limit", 20)
	v.SetDefault("search.per_source_limit", 10)
	v.SetDefault("search.dedup_threshold", 0.80)
	v.SetDefault("search.enable_arxiv", true)
	v.SetDefault("search.enable_semantic_scholar", true)
	v.SetDefault("search.enable_crossref", true)
	v.SetDefault("search.enable_openalex", false)
	v.SetDefault("search.inter_client_delay", "1s")

	v.SetDefault("visual.timeout", "30s")
	v.SetDefault("visual.user_agent", "research-assistant/0.1")
	v.SetDefault("visual.max_extractions", 3)
	v.SetDefault("visual.max_visuals_per_paper", 3)
	v.SetDefault("visual.max_pages", 5)

	v.SetDefault("llm.model", "anthropic/claude-sonnet-4")
	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 5000)
	v.SetDefault("llm.timeout", "30s")
	v.SetDefault("llm.max_papers", 3)

	v.SetDefault("history.path", filepath.Join("data", "history.db"))
	v.SetDefault("history.window", 5)

	v.SetDefault("server.addr", ":8080")
}

// Validate checks the configuration. requireLLM fails fast when the
// OpenRouter key is missing, for commands that will call the LLM.
func Validate(cfg types.Config, requireLLM bool) error {
	if requireLLM {
		if cfg.LLM.APIKey == "" || strings.HasPrefix(cfg.LLM.APIKey, "your-") {
			return fmt.Errorf("OPENROUTER_API_KEY is required: set it in the environment or a .env file")
		}
	}
	if !cfg.Search.EnableArxiv && !cfg.Search.EnableSemanticScholar &&
		!cfg.Search.EnableCrossRef && !cfg.Search.EnableOpenAlex &&
		cfg.Search.SerperAPIKey == "" {
		return fmt.Errorf("no search sources enabled")
	}
	if cfg.Search.DedupThreshold < 0 || cfg.Search.DedupThreshold > 1 {
		return fmt.Errorf("dedup threshold %.2f out of range [0, 1]", cfg.Search.DedupThreshold)
	}
	return nil
}
