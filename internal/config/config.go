package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the proposal service.
// Environment variables are parsed from the PROPOSAL_BACKEND_ prefix.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Weaviate vector store. URL is host:port without scheme.
	WeaviateURL    string `envconfig:"WEAVIATE_URL" default:"localhost:8081"`
	WeaviateAPIKey string `envconfig:"WEAVIATE_API_KEY"`

	// OpenAI embeddings and chat completion.
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY"`
	OpenAIBaseURL string `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1"`
	EmbedModel    string `envconfig:"EMBED_MODEL" default:"text-embedding-ada-002"`
	ChatModel     string `envconfig:"CHAT_MODEL" default:"gpt-3.5-turbo"`

	// EmbedDimension must match the vector index dimension.
	EmbedDimension int `envconfig:"EMBED_DIMENSION" default:"1536"`

	// Retrieval sizes: plain search vs question-answering context.
	SearchTopK int `envconfig:"SEARCH_TOP_K" default:"2"`
	AskTopK    int `envconfig:"ASK_TOP_K" default:"3"`

	// Health checker cadence
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`

	// Startup bootstrap window for index schema creation.
	BootstrapTimeoutSeconds int `envconfig:"BOOTSTRAP_TIMEOUT_SECONDS" default:"15"`
}

// Validate enforces fail-fast startup requirements.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("PROPOSAL_BACKEND_OPENAI_API_KEY is required")
	}
	if c.WeaviateAPIKey == "" {
		return fmt.Errorf("PROPOSAL_BACKEND_WEAVIATE_API_KEY is required")
	}
	if c.WeaviateURL == "" {
		return fmt.Errorf("PROPOSAL_BACKEND_WEAVIATE_URL is required")
	}
	if c.EmbedDimension <= 0 {
		return fmt.Errorf("embed dimension must be positive, got %d", c.EmbedDimension)
	}
	if c.SearchTopK <= 0 || c.AskTopK <= 0 {
		return fmt.Errorf("topK values must be positive")
	}
	return nil
}

// New creates a Config by parsing environment variables prefixed with
// PROPOSAL_BACKEND_, e.g. PROPOSAL_BACKEND_HTTP_PORT.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("PROPOSAL_BACKEND", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Int("port", cfg.HTTPPort).
		Str("weaviate_url", cfg.WeaviateURL).
		Str("embed_model", cfg.EmbedModel).
		Str("chat_model", cfg.ChatModel).
		Int("embed_dimension", cfg.EmbedDimension).
		Int("search_top_k", cfg.SearchTopK).
		Int("ask_top_k", cfg.AskTopK).
		Msg("Configuration loaded")

	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
