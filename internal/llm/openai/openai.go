package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/civicgrid/proposal-service/internal/llm"
)

// Provider calls the OpenAI chat completions API.

type Provider struct {
	client *resty.Client
	model  string
}

// New creates a Provider against baseURL (e.g. https://api.openai.com/v1).
func New(baseURL, apiKey, model string) *Provider {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &Provider{client: c, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Complete runs a single-turn chat completion and returns the trimmed text.
func (p *Provider) Complete(ctx context.Context, req llm.Request) (string, error) {
	msgs := make([]chatMessage, 0, 2)
	if req.System != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.System})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	body := chatRequest{
		Model:       p.model,
		Messages:    msgs,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai chat request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("openai chat status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("openai chat error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("openai chat returned no choices")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// HealthPing implements health.HealthPinger by listing models.
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
