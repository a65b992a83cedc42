package viewer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func writeReportFiles(t *testing.T, dir string) {
	t.Helper()

	files := map[string]string{
		"Acme_Inc_20250314_093000.md":  "# Company Research Report: Acme Inc\n\nbody\n",
		"Globex_20250201_120000.md":    "# Company Research Report: Globex\n",
		"scratchpad.md":                "not a report\n",
		"Acme_Inc_20250314_093000.txt": "ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.MkdirAll(filepath.Join(dir, "json"), 0o755); err != nil {
		t.Fatal(err)
	}
	sidecar := `{"has_restrictions": true, "restricted_to": ["United States"], "restriction_level": "high", "description": "Restricted to: United States"}`
	if err := os.WriteFile(filepath.Join(dir, "json", "Acme_Inc_20250314_093000_location.json"), []byte(sidecar), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListReports(t *testing.T) {
	dir := t.TempDir()
	writeReportFiles(t, dir)

	reports, err := ListReports(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}

	byName := make(map[string]Report)
	for _, r := range reports {
		byName[r.Filename] = r
	}

	acme := byName["Acme_Inc_20250314_093000.md"]
	if acme.CompanyName != "Acme Inc" {
		t.Fatalf("unexpected company name: %q", acme.CompanyName)
	}
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	if !acme.Timestamp.Equal(want) {
		t.Fatalf("unexpected timestamp: %v", acme.Timestamp)
	}
	if acme.Restriction == nil || !acme.Restriction.HasRestrictions {
		t.Fatalf("expected restriction sidecar to be loaded: %+v", acme.Restriction)
	}

	globex := byName["Globex_20250201_120000.md"]
	if globex.Restriction != nil {
		t.Fatal("expected no restriction without sidecar")
	}

	// Non-conforming names stay listed with fallback metadata.
	scratch, ok := byName["scratchpad.md"]
	if !ok {
		t.Fatal("expected non-conforming report to be listed")
	}
	if scratch.CompanyName != "scratchpad" {
		t.Fatalf("unexpected fallback name: %q", scratch.CompanyName)
	}
}

func TestListReportsMissingDir(t *testing.T) {
	reports, err := ListReports(filepath.Join(t.TempDir(), "nope"))
	if err != nil || reports != nil {
		t.Fatalf("missing dir must yield empty list, got %v, %v", reports, err)
	}
}

func TestSortReports(t *testing.T) {
	reports := []Report{
		{CompanyName: "Globex", Timestamp: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{CompanyName: "acme", Timestamp: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
	}

	SortReports(reports, "date", true)
	if reports[0].CompanyName != "acme" {
		t.Fatalf("expected newest first, got %q", reports[0].CompanyName)
	}

	SortReports(reports, "company", false)
	if reports[0].CompanyName != "acme" {
		t.Fatalf("expected case-insensitive company sort, got %q", reports[0].CompanyName)
	}
}

func TestServerIndexAndReport(t *testing.T) {
	dir := t.TempDir()
	writeReportFiles(t, dir)

	srv := NewServer(dir, zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("index status: %d", resp.StatusCode)
	}

	index, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(index), "Acme Inc") {
		t.Fatalf("index missing report:\n%s", index)
	}

	resp, err = http.Get(ts.URL + "/report/Acme_Inc_20250314_093000.md")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("report status: %d", resp.StatusCode)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<h1>Company Research Report: Acme Inc</h1>") {
		t.Fatalf("report not rendered as html:\n%s", page)
	}
}

func TestServerRejectsBadFilenames(t *testing.T) {
	srv := NewServer(t.TempDir(), zap.NewNop())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	for _, path := range []string{
		"/report/missing_20250101_000000.md",
		"/report/notareport.md",
		"/report/..%2Fsecrets.md",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s: expected 404, got %d", path, resp.StatusCode)
		}
	}
}
