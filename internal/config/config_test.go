package config

import (
	"os"
	"testing"
)

func setRequiredKeys(t *testing.T) {
	t.Helper()
	t.Setenv("PROPOSAL_BACKEND_OPENAI_API_KEY", "test-openai-key")
	t.Setenv("PROPOSAL_BACKEND_WEAVIATE_API_KEY", "test-weaviate-key")
}

func TestConfigLoad_Defaults(t *testing.T) {
	setRequiredKeys(t)
	_ = os.Unsetenv("PROPOSAL_BACKEND_EMBED_MODEL")
	_ = os.Unsetenv("PROPOSAL_BACKEND_CHAT_MODEL")
	_ = os.Unsetenv("PROPOSAL_BACKEND_HTTP_PORT")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.EmbedModel != "text-embedding-ada-002" || cfg.ChatModel != "gpt-3.5-turbo" {
		t.Fatalf("unexpected default model config: %+v", cfg)
	}
	if cfg.EmbedDimension != 1536 {
		t.Fatalf("unexpected default embed dimension: %d", cfg.EmbedDimension)
	}
	if cfg.SearchTopK != 2 || cfg.AskTopK != 3 {
		t.Fatalf("unexpected default topK config: search=%d ask=%d", cfg.SearchTopK, cfg.AskTopK)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.HTTPPort)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	setRequiredKeys(t)
	t.Setenv("PROPOSAL_BACKEND_CHAT_MODEL", "test-model")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.ChatModel != "test-model" {
		t.Fatalf("chat model env override failed, got %s", cfg.ChatModel)
	}
}

func TestConfigLoad_MissingOpenAIKeyFails(t *testing.T) {
	t.Setenv("PROPOSAL_BACKEND_WEAVIATE_API_KEY", "test-weaviate-key")
	t.Setenv("PROPOSAL_BACKEND_OPENAI_API_KEY", "")

	if _, err := New(); err == nil {
		t.Fatalf("expected error for missing OpenAI API key")
	}
}

func TestConfigLoad_MissingWeaviateKeyFails(t *testing.T) {
	t.Setenv("PROPOSAL_BACKEND_OPENAI_API_KEY", "test-openai-key")
	t.Setenv("PROPOSAL_BACKEND_WEAVIATE_API_KEY", "")

	if _, err := New(); err == nil {
		t.Fatalf("expected error for missing Weaviate API key")
	}
}

func TestGetHTTPAddr(t *testing.T) {
	cfg := &Config{HTTPPort: 9999}
	if addr := cfg.GetHTTPAddr(); addr != ":9999" {
		t.Fatalf("unexpected addr: %s", addr)
	}
}
