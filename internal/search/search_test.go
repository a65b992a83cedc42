package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
)

func TestExtractFlatTextShape(t *testing.T) {
	raw := map[string]any{
		"text":      "Acme is a robotics company.",
		"citations": []any{"https://acme.example", 42, "https://news.example"},
	}

	result := Extract(raw)

	if result.Text != "Acme is a robotics company." {
		t.Fatalf("unexpected text: %q", result.Text)
	}

	want := []string{"https://acme.example", "https://news.example"}
	if diff := cmp.Diff(want, result.Citations); diff != "" {
		t.Fatalf("citations mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractChatCompletionsShape(t *testing.T) {
	raw := map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"role":    "assistant",
					"content": "Acme builds robots.",
				},
			},
		},
	}

	result := Extract(raw)

	if result.Text != "Acme builds robots." {
		t.Fatalf("unexpected text: %q", result.Text)
	}
	if len(result.Citations) != 0 {
		t.Fatalf("expected no citations, got %v", result.Citations)
	}
}

func TestExtractUnknownShape(t *testing.T) {
	raw := map[string]any{"status": "queued"}

	result := Extract(raw)

	if result.HasText() {
		t.Fatalf("expected no text, got %q", result.Text)
	}
	if result.Raw == nil {
		t.Fatal("expected raw payload to be preserved")
	}
}

func TestExtractNil(t *testing.T) {
	result := Extract(nil)
	if result == nil || result.HasText() {
		t.Fatal("expected empty result for nil payload")
	}
}

func TestPerplexitySearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "remote-first company", "citations": ["https://a.example"]}`))
	}))
	defer srv.Close()

	client := NewPerplexity("test-key", zap.NewNop())
	client.APIURL = srv.URL

	result, err := client.Search(context.Background(), "Remote work policies at Acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Text != "remote-first company" {
		t.Fatalf("unexpected text: %q", result.Text)
	}
}

func TestOpenRouterSearchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOpenRouter("test-key", "", zap.NewNop())
	client.APIURL = srv.URL

	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestOpenRouterGenerateContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "Dear team,"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenRouter("test-key", "", zap.NewNop())
	client.APIURL = srv.URL

	text, err := client.GenerateContent(context.Background(), "write a letter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "Dear team," {
		t.Fatalf("unexpected text: %q", text)
	}
}
