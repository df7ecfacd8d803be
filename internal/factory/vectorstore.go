package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/civicgrid/proposal-service/internal/config"
	"github.com/civicgrid/proposal-service/internal/vectorstore"
)

// NewVectorStore creates the Weaviate-backed store and runs the idempotent
// schema bootstrap synchronously. Serving starts only after the index exists.
func NewVectorStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (vectorstore.Store, error) {
	if cfg.WeaviateURL == "" {
		return nil, fmt.Errorf("vector store URL not configured - required for service operation")
	}

	st, err := vectorstore.NewWeaviateNativeStore(cfg.WeaviateURL, cfg.WeaviateAPIKey)
	if err != nil {
		return nil, err
	}

	bootstrapCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.BootstrapTimeoutSeconds)*time.Second)
	defer cancel()
	if err := vectorstore.Bootstrap(bootstrapCtx, cfg.WeaviateURL, cfg.WeaviateAPIKey); err != nil {
		return nil, fmt.Errorf("vector store bootstrap: %w", err)
	}
	log.Debug().Str("url", cfg.WeaviateURL).Msg("vector store bootstrap completed")

	return st, nil
}
