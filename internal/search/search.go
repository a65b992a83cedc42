// Package search talks to the web-search/LLM providers used for company
// research and normalizes their loosely-typed responses into one Result shape.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	contentType    = "application/json"
	requestTimeout = 60 * time.Second
)

// Provider performs a single blocking search round-trip. A nil Result with a
// nil error is never returned; callers treat an error as "no data for this
// query" and continue.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) (*Result, error)
}

// Result is the normalized outcome of one search call. Text and Citations are
// filled when the payload matched a known shape; Raw always keeps the decoded
// payload so unknown shapes can still be rendered as-is.
type Result struct {
	Text      string
	Citations []string
	Raw       map[string]any
}

// HasText reports whether a known text shape was extracted.
func (r *Result) HasText() bool {
	return r != nil && r.Text != ""
}

// Extract normalizes a decoded provider payload. Two shapes are recognized:
// a flat {"text": ..., "citations": [...]} document and a chat-completions
// {"choices": [{"message": {"content": ...}}]} document.
func Extract(raw map[string]any) *Result {
	result := &Result{Raw: raw}
	if raw == nil {
		return result
	}

	if text, ok := raw["text"].(string); ok && text != "" {
		result.Text = text
		if citations, ok := raw["citations"].([]any); ok {
			for _, c := range citations {
				if s, ok := c.(string); ok && s != "" {
					result.Citations = append(result.Citations, s)
				}
			}
		}
		return result
	}

	if choices, ok := raw["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					result.Text = content
				}
			}
		}
	}

	return result
}

// postJSON sends the payload and decodes the response body into a generic
// document. Any non-2xx status is an error.
func postJSON(ctx context.Context, hc *http.Client, logger *zap.Logger, url, apiKey string, payload any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", apiKey))
	req.Header.Set("Content-Type", contentType)

	logger.Debug("make request", zap.String("url", url))

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return decoded, nil
}
