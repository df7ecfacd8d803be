package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider calls the OpenAI embeddings API (or any compatible endpoint).

type Provider struct {
	client    *resty.Client
	model     string
	dimension int
}

// New creates a Provider against baseURL (e.g. https://api.openai.com/v1).
// dimension is the expected vector length; a mismatch surfaces as an error
// rather than a silent index corruption.
func New(baseURL, apiKey, model string, dimension int) *Provider {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)

	return &Provider{client: c, model: model, dimension: dimension}
}

type embedRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Embed generates a dense vector for the given text.
func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("empty text")
	}

	reqBody := embedRequest{Input: []string{text}, Model: p.model}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/embeddings")
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("openai embeddings status %d: %s", resp.StatusCode(), resp.String())
	}

	var er embedResponse
	if err := json.Unmarshal(resp.Body(), &er); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if er.Error != nil {
		return nil, fmt.Errorf("openai embeddings error: %s", er.Error.Message)
	}
	if len(er.Data) == 0 {
		return nil, fmt.Errorf("openai embeddings returned no data")
	}

	vec := er.Data[0].Embedding
	if p.dimension > 0 && len(vec) != p.dimension {
		return nil, fmt.Errorf("embedding dimension %d does not match index dimension %d", len(vec), p.dimension)
	}
	return vec, nil
}

// HealthPing implements health.HealthPinger. It lists models, which
// exercises connectivity and the API key without spending tokens.
func (p *Provider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/models")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("openai status %d", resp.StatusCode())
	}
	return nil
}
