package types

import "time"

// HTTPConfig holds shared HTTP settings used by every outbound call.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "research-assistant/0.1"). Wikipedia rejects requests without one.
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// PaperBackend selects the academic search API behind the papers source.
type PaperBackend string

const (
	PaperBackendArxiv           PaperBackend = "arxiv"
	PaperBackendSemanticScholar PaperBackend = "semantic_scholar"
	PaperBackendOpenAlex        PaperBackend = "openalex"
)

// SourcesConfig holds settings for the three source adapters and the aggregator.
type SourcesConfig struct {
	// EncyclopediaResults caps the number of encyclopedia pages (default 2).
	EncyclopediaResults int `json:"encyclopedia_results" yaml:"encyclopedia_results" mapstructure:"encyclopedia_results"`

	// WebResults caps the number of web search hits (default 3).
	WebResults int `json:"web_results" yaml:"web_results" mapstructure:"web_results"`

	// PaperResults caps the number of papers (default 2).
	PaperResults int `json:"paper_results" yaml:"paper_results" mapstructure:"paper_results"`

	// EncyclopediaExcerpt is the character length of encyclopedia excerpts (default 1000).
	EncyclopediaExcerpt int `json:"encyclopedia_excerpt" yaml:"encyclopedia_excerpt" mapstructure:"encyclopedia_excerpt"`

	// WikipediaLanguage is the Wikipedia language edition (default "en").
	WikipediaLanguage string `json:"wikipedia_language" yaml:"wikipedia_language" mapstructure:"wikipedia_language"`

	// PaperBackend selects arxiv, semantic_scholar, or openalex (default arxiv).
	PaperBackend PaperBackend `json:"paper_backend" yaml:"paper_backend" mapstructure:"paper_backend"`

	// Parallel runs the adapters concurrently. Output order is unchanged.
	Parallel bool `json:"parallel" yaml:"parallel" mapstructure:"parallel"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`

	// OpenAlexEmail is sent as the mailto parameter for polite pool access.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty" mapstructure:"openalex_email"`
}

// PromptConfig holds settings for prompt assembly.
type PromptConfig struct {
	// ExcerptLength is the number of characters of each document's text
	// included in the prompt (default 400). Zero or negative disables truncation.
	ExcerptLength int `json:"excerpt_length" yaml:"excerpt_length" mapstructure:"excerpt_length"`

	// SystemPrompt is an optional system message sent ahead of the prompt.
	SystemPrompt string `json:"system_prompt,omitempty" yaml:"system_prompt,omitempty" mapstructure:"system_prompt"`
}

// SummarizerConfig holds settings for the hosted language-model call.
type SummarizerConfig struct {
	// BaseURL is the OpenAI-compatible API root (default "https://api.openai.com/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Model is the model identifier (default "gpt-4o-mini").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// Temperature is the sampling temperature (default 0.3).
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens caps the response length (default 400). Zero omits the cap.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// APIKey is the credential for the completion API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default warn).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "json" or "console" (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// ServeConfig holds settings for the interactive form server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`
}

// Config groups all settings for one process.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Sources    SourcesConfig    `json:"sources" yaml:"sources" mapstructure:"sources"`
	Prompt     PromptConfig     `json:"prompt" yaml:"prompt" mapstructure:"prompt"`
	Summarizer SummarizerConfig `json:"summarizer" yaml:"summarizer" mapstructure:"summarizer"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	Serve      ServeConfig      `json:"serve" yaml:"serve" mapstructure:"serve"`
}
