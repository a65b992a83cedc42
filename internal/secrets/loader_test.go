package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Name: "hunter api key", Value: "  abc123  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestLoadFileTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(Source{Name: "perplexity api key", Value: "inline", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(Source{Name: "openrouter api key"}); err == nil {
		t.Fatal("expected error for unconfigured secret")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("   "), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(Source{Name: "key", File: path}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}

func TestLoadOptional(t *testing.T) {
	got, err := LoadOptional(Source{Name: "gemini api key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}

	if _, err := LoadOptional(Source{Name: "gemini api key", File: "/nonexistent/path"}); err == nil {
		t.Fatal("expected error for unreadable file")
	}
}
