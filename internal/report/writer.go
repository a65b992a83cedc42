package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/spigell/company-scout/internal/research"
	"go.uber.org/zap"
)

// Stem timestamp layout; the viewer parses filenames against it.
const stampLayout = "20060102_150405"

// Writer persists one report per run under the output directory.
type Writer struct {
	outputDir string
	logger    *zap.Logger
}

// Saved describes where a report run landed on disk.
type Saved struct {
	Stem         string
	MarkdownPath string
	JSONPath     string
}

func NewWriter(outputDir string, logger *zap.Logger) *Writer {
	return &Writer{outputDir: outputDir, logger: logger}
}

// SanitizeName makes a company name filesystem-safe: alphanumerics, spaces,
// hyphens, and underscores are kept, spaces become underscores, everything
// else is dropped.
func SanitizeName(company string) string {
	var b strings.Builder
	for _, r := range company {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Save writes the markdown report and, when a restriction record is present,
// its JSON side-car under json/. The stem is unique per run by construction
// (sanitized name + timestamp), so concurrent runs never race on one file.
// A canceled context refuses to persist anything; an interrupted run must
// leave no partial report behind.
func (w *Writer) Save(ctx context.Context, company, report string, restriction *research.LocationRestriction, generatedAt time.Time) (*Saved, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stem := fmt.Sprintf("%s_%s", SanitizeName(company), generatedAt.Format(stampLayout))
	saved := &Saved{
		Stem:         stem,
		MarkdownPath: filepath.Join(w.outputDir, stem+".md"),
	}

	if err := os.WriteFile(saved.MarkdownPath, []byte(report), 0o644); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	w.logger.Info("report saved", zap.String("path", saved.MarkdownPath))

	if restriction == nil {
		return saved, nil
	}

	jsonDir := filepath.Join(w.outputDir, "json")
	if err := os.MkdirAll(jsonDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating json directory: %w", err)
	}

	saved.JSONPath = filepath.Join(jsonDir, stem+"_location.json")

	data, err := json.MarshalIndent(restriction, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal location restrictions: %w", err)
	}

	if err := os.WriteFile(saved.JSONPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing location restrictions: %w", err)
	}

	w.logger.Info("location restrictions saved", zap.String("path", saved.JSONPath))

	return saved, nil
}
