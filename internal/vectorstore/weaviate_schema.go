package vectorstore

import (
	"context"
	"fmt"
	"time"

	weaviate "github.com/weaviate/weaviate-go-client/v5/weaviate"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/auth"
	"github.com/weaviate/weaviate/entities/models"
)

// Bootstrap ensures the CivicProposal class exists. Idempotent; intended to
// run once at startup before traffic is served. Vectors are supplied by the
// service (vectorizer "none") and ranked by euclidean distance, matching the
// embedding provider's 1536-dimension output.
func Bootstrap(ctx context.Context, baseURL, apiKey string) error {
	cfg := weaviate.Config{Scheme: "http", Host: baseURL}
	if apiKey != "" {
		cfg.AuthConfig = auth.ApiKey{Value: apiKey}
	}
	cl, err := weaviate.NewClient(cfg)
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	proposal := &models.Class{
		Class:      className,
		Vectorizer: "none",
		VectorIndexConfig: map[string]interface{}{
			"distance": "l2-squared",
		},
		Properties: []*models.Property{
			{Name: "proposalId", DataType: []string{"text"}},
			{Name: "vectorId", DataType: []string{"text"}},
			{Name: "text", DataType: []string{"text"}},
			{Name: "summary", DataType: []string{"text"}},
			{Name: "category", DataType: []string{"text"}},
			{Name: "submitter", DataType: []string{"text"}},
			// opaque caller-supplied string, never parsed
			{Name: "timestamp", DataType: []string{"text"}},
			{Name: "likes", DataType: []string{"int"}},
			{Name: "dislikes", DataType: []string{"int"}},
			{Name: "hasVoted", DataType: []string{"boolean"}},
			{Name: "userVote", DataType: []string{"boolean"}},
		},
	}

	if err := ensureClass(cctx, cl, proposal); err != nil {
		return fmt.Errorf("bootstrap %s: %w", className, err)
	}
	return nil
}

func ensureClass(ctx context.Context, cl *weaviate.Client, desired *models.Class) error {
	ex, err := cl.Schema().ClassGetter().WithClassName(desired.Class).Do(ctx)
	if err == nil && ex != nil {
		return nil
	}
	if err := cl.Schema().ClassCreator().WithClass(desired).Do(ctx); err != nil {
		return fmt.Errorf("create class %s: %w", desired.Class, err)
	}
	return nil
}
