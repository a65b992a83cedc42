package search

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	openRouterURL = "https://openrouter.ai/api/v1"
	// Deep-research capable default.
	openRouterModel = "anthropic/claude-3-opus:beta"
)

// OpenRouter is a client for the OpenRouter chat-completions API.
type OpenRouter struct {
	apiKey string
	model  string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func NewOpenRouter(apiKey, model string, logger *zap.Logger) *OpenRouter {
	if strings.TrimSpace(model) == "" {
		model = openRouterModel
	}

	return &OpenRouter{
		apiKey: apiKey,
		model:  model,
		logger: logger,
		APIURL: openRouterURL,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (o *OpenRouter) Name() string { return "openrouter" }

func (o *OpenRouter) Search(ctx context.Context, query string) (*Result, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": query},
		},
	}

	raw, err := postJSON(ctx, o.HTTPClient, o.logger, o.APIURL+"/chat/completions", o.apiKey, payload)
	if err != nil {
		return nil, err
	}

	return Extract(raw), nil
}

// GenerateContent lets the client double as a text generator for the cover
// letter.
func (o *OpenRouter) GenerateContent(ctx context.Context, prompt string) (string, error) {
	result, err := o.Search(ctx, prompt)
	if err != nil {
		return "", err
	}
	if !result.HasText() {
		return "", errors.New("openrouter returned no text")
	}
	return result.Text, nil
}
