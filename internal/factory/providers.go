package factory

import (
	"github.com/civicgrid/proposal-service/internal/config"
	emb "github.com/civicgrid/proposal-service/internal/embeddings"
	embopenai "github.com/civicgrid/proposal-service/internal/embeddings/openai"
	"github.com/civicgrid/proposal-service/internal/llm"
	llmopenai "github.com/civicgrid/proposal-service/internal/llm/openai"
)

// NewEmbeddingProvider creates the OpenAI embeddings client from config.
func NewEmbeddingProvider(cfg *config.Config) emb.EmbeddingProvider {
	return embopenai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbedModel, cfg.EmbedDimension)
}

// NewCompletionProvider creates the OpenAI chat completion client from config.
func NewCompletionProvider(cfg *config.Config) llm.Provider {
	return llmopenai.New(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel)
}
