package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spigell/company-scout/internal/research"
	"go.uber.org/zap"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme", "Acme"},
		{"Acme Inc.", "Acme_Inc"},
		{"Big Co / Subsidiary", "Big_Co__Subsidiary"},
		{"under_score-dash", "under_score-dash"},
		{"weird!@#chars", "weirdchars"},
	}

	for _, tc := range cases {
		if got := SanitizeName(tc.in); got != tc.want {
			t.Fatalf("SanitizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSaveWritesMarkdownAndSidecar(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, zap.NewNop())

	restriction := &research.LocationRestriction{
		HasRestrictions:  true,
		RestrictedTo:     []string{"United States"},
		RestrictionLevel: research.LevelHigh,
		Description:      "Restricted to: United States",
		CompanyURL:       "https://acme.com",
	}

	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	saved, err := writer.Save(context.Background(), "Acme Inc.", "# report body\n", restriction, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved.Stem != "Acme_Inc_20250314_093000" {
		t.Fatalf("unexpected stem: %q", saved.Stem)
	}

	body, err := os.ReadFile(saved.MarkdownPath)
	if err != nil {
		t.Fatalf("markdown not written: %v", err)
	}
	if string(body) != "# report body\n" {
		t.Fatalf("unexpected markdown content: %q", body)
	}

	wantJSON := filepath.Join(dir, "json", "Acme_Inc_20250314_093000_location.json")
	if saved.JSONPath != wantJSON {
		t.Fatalf("unexpected sidecar path: %q", saved.JSONPath)
	}

	data, err := os.ReadFile(saved.JSONPath)
	if err != nil {
		t.Fatalf("sidecar not written: %v", err)
	}

	var decoded research.LocationRestriction
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sidecar not valid json: %v", err)
	}
	if decoded.CompanyURL != "https://acme.com" || decoded.RestrictionLevel != research.LevelHigh {
		t.Fatalf("sidecar content mismatch: %+v", decoded)
	}
}

func TestSaveWithoutRestriction(t *testing.T) {
	writer := NewWriter(t.TempDir(), zap.NewNop())

	saved, err := writer.Save(context.Background(), "Acme", "body", nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.JSONPath != "" {
		t.Fatalf("expected no sidecar, got %q", saved.JSONPath)
	}
}

func TestSaveInterruptedRunPersistsNothing(t *testing.T) {
	dir := t.TempDir()
	writer := NewWriter(dir, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	restriction := &research.LocationRestriction{HasRestrictions: true}

	if _, err := writer.Save(ctx, "Acme", "body", restriction, time.Now()); err == nil {
		t.Fatal("expected error for canceled context")
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("interrupted save must leave no files, found %d", len(entries))
	}
}
