// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config turns viper settings, the environment, and the secrets
// directory into a types.Config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// EnvPrefix is the viper environment prefix (RESEARCH_ASSISTANT_SOURCES_PARALLEL, ...).
const EnvPrefix = "RESEARCH_ASSISTANT"

// OpenAIKeyEnv is the conventional environment variable for the credential.
const OpenAIKeyEnv = "OPENAI_API_KEY"

// ErrMissingCredential means no language-model API key could be found.
var ErrMissingCredential = errors.New("OpenAI API key not found: set OPENAI_API_KEY in the environment or a .env file, or add .secrets/openai-api-key")

// defaults are the values used when neither a config file nor the
// environment sets a key.
var defaults = map[string]any{
	"http.timeout":                     30 * time.Second,
	"http.user_agent":                  "research-assistant/0.1 (+https://github.com/pdiddy/research-assistant)",
	"sources.encyclopedia_results":     2,
	"sources.web_results":              3,
	"sources.paper_results":            2,
	"sources.encyclopedia_excerpt":     1000,
	"sources.wikipedia_language":       "en",
	"sources.paper_backend":            string(types.PaperBackendArxiv),
	"sources.parallel":                 false,
	"sources.semantic_scholar_api_key": "",
	"sources.openalex_email":           "",
	"prompt.excerpt_length":            400,
	"prompt.system_prompt":             "",
	"summarizer.base_url":              "https://api.openai.com/v1",
	"summarizer.model":                 "gpt-4o-mini",
	"summarizer.temperature":           0.3,
	"summarizer.max_tokens":            400,
	"summarizer.api_key":               "",
	"log.level":                        "warn",
	"log.format":                       "console",
	"serve.addr":                       ":8080",
}

// SetDefaults registers defaults and environment binding on v.
func SetDefaults(v *viper.Viper) {
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it. It does not resolve the
// credential; see ResolveCredential.
func Load(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func Validate(cfg types.Config) error {
	switch cfg.Sources.PaperBackend {
	case types.PaperBackendArxiv, types.PaperBackendSemanticScholar, types.PaperBackendOpenAlex:
	default:
		return fmt.Errorf("sources.paper_backend: unknown backend %q (want arxiv, semantic_scholar, or openalex)", cfg.Sources.PaperBackend)
	}
	if cfg.Sources.EncyclopediaResults < 0 || cfg.Sources.WebResults < 0 || cfg.Sources.PaperResults < 0 {
		return fmt.Errorf("sources: result caps must not be negative")
	}
	if cfg.Summarizer.Model == "" {
		return fmt.Errorf("summarizer.model must be set")
	}
	if cfg.Summarizer.MaxTokens < 0 {
		return fmt.Errorf("summarizer.max_tokens must not be negative")
	}
	if cfg.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive")
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ResolveCredential fills cfg.Summarizer.APIKey and the optional source keys.
// The API key comes from, in order: the configured value, the OPENAI_API_KEY
// environment variable, and the openai-api-key secret file. It returns
// ErrMissingCredential when none is set.
func ResolveCredential(cfg *types.Config, loaded map[string]string) error {
	if cfg.Summarizer.APIKey == "" {
		cfg.Summarizer.APIKey = strings.TrimSpace(os.Getenv(OpenAIKeyEnv))
	}
	if cfg.Summarizer.APIKey == "" {
		cfg.Summarizer.APIKey = loaded[secrets.OpenAIAPIKey]
	}
	if cfg.Sources.SemanticScholarAPIKey == "" {
		cfg.Sources.SemanticScholarAPIKey = loaded[secrets.SemanticScholarAPIKey]
	}
	if cfg.Sources.OpenAlexEmail == "" {
		cfg.Sources.OpenAlexEmail = loaded[secrets.OpenAlexEmail]
	}
	if cfg.Summarizer.APIKey == "" {
		return ErrMissingCredential
	}
	return nil
}
