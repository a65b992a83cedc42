package search

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const perplexityURL = "https://api.perplexity.ai"

// Perplexity is a client for the Perplexity search API.
type Perplexity struct {
	apiKey string
	logger *zap.Logger

	HTTPClient *http.Client
	APIURL     string
}

func NewPerplexity(apiKey string, logger *zap.Logger) *Perplexity {
	return &Perplexity{
		apiKey: apiKey,
		logger: logger,
		APIURL: perplexityURL,
		HTTPClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (p *Perplexity) Name() string { return "perplexity" }

func (p *Perplexity) Search(ctx context.Context, query string) (*Result, error) {
	payload := map[string]any{
		"query": query,
		"options": map[string]any{
			"include_citations": true,
		},
	}

	raw, err := postJSON(ctx, p.HTTPClient, p.logger, p.APIURL+"/search", p.apiKey, payload)
	if err != nil {
		return nil, err
	}

	return Extract(raw), nil
}

// GenerateContent lets the client double as a text generator for the cover
// letter. An empty text shape in the response is an error here, not "no data".
func (p *Perplexity) GenerateContent(ctx context.Context, prompt string) (string, error) {
	result, err := p.Search(ctx, prompt)
	if err != nil {
		return "", err
	}
	if !result.HasText() {
		return "", errors.New("perplexity returned no text")
	}
	return result.Text, nil
}
