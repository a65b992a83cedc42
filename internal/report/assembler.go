// Package report assembles the final research document and persists it as
// markdown with a location-restriction JSON side-car and an optional PDF.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spigell/company-scout/internal/hunter"
	"github.com/spigell/company-scout/internal/research"
	"github.com/spigell/company-scout/internal/search"
)

const noDataPlaceholder = "_No data available for this query._"

// Params carries everything one report is built from. Results are paired
// positionally with Queries; Emails, Warning, and CoverLetter are optional.
type Params struct {
	Company        string
	CompanyURL     string
	AdditionalInfo string
	GeneratedAt    time.Time

	Queries     []research.Query
	Results     []*search.Result
	Restriction *research.LocationRestriction
	Warning     string
	Emails      *hunter.Classification
	CoverLetter string
}

// Assemble renders the full report in fixed order: header, location
// restrictions, contacts, research findings, optional cover letter.
func Assemble(p Params) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Company Research Report: %s\n\n", p.Company)
	fmt.Fprintf(&b, "*Generated: %s*\n", p.GeneratedAt.Format("2006-01-02 15:04:05"))
	if p.CompanyURL != "" {
		fmt.Fprintf(&b, "*Website: %s*\n", p.CompanyURL)
	}
	if p.AdditionalInfo != "" {
		fmt.Fprintf(&b, "*Context: %s*\n", p.AdditionalInfo)
	}
	b.WriteString("\n")

	writeRestrictionSection(&b, p.Restriction, p.Warning)
	writeContactSection(&b, p.Emails)
	writeResearchSection(&b, p.Queries, p.Results)

	if p.CoverLetter != "" {
		b.WriteString("\n\n")
		b.WriteString(strings.TrimRight(p.CoverLetter, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func writeRestrictionSection(b *strings.Builder, r *research.LocationRestriction, warning string) {
	b.WriteString("## Location Restrictions\n\n")
	if r == nil {
		b.WriteString("No location restrictions found.\n\n")
		return
	}

	fmt.Fprintf(b, "%s\n", r.Description)
	if warning != "" {
		fmt.Fprintf(b, "\n> %s\n", warning)
	}
	b.WriteString("\n")
}

func writeContactSection(b *strings.Builder, emails *hunter.Classification) {
	if emails == nil || emails.Empty() {
		return
	}

	b.WriteString("## Contact Information\n\n")

	buckets := []struct {
		title   string
		records []*hunter.EmailRecord
	}{
		{"Career-related emails", emails.Career},
		{"Founder emails", emails.Founder},
		{"Generic emails", emails.Generic},
		{"Named contacts", emails.Named},
	}

	for _, bucket := range buckets {
		if len(bucket.records) == 0 {
			continue
		}
		fmt.Fprintf(b, "**%s:**\n\n", bucket.title)
		for _, record := range bucket.records {
			fmt.Fprintf(b, "%s\n", formatEmailEntry(record))
		}
		b.WriteString("\n")
	}
}

// formatEmailEntry renders "- address (First Last, position)", dropping the
// parenthetical parts that are missing.
func formatEmailEntry(record *hunter.EmailRecord) string {
	name := strings.TrimSpace(strings.TrimSpace(record.FirstName) + " " + strings.TrimSpace(record.LastName))

	var details []string
	if name != "" {
		details = append(details, name)
	}
	if record.Position != "" {
		details = append(details, record.Position)
	}

	if len(details) == 0 {
		return fmt.Sprintf("- %s", record.Address)
	}

	return fmt.Sprintf("- %s (%s)", record.Address, strings.Join(details, ", "))
}

func writeResearchSection(b *strings.Builder, queries []research.Query, results []*search.Result) {
	b.WriteString("## Research Findings\n")

	for i, query := range queries {
		fmt.Fprintf(b, "\n### %s\n\n", query.Title)

		var result *search.Result
		if i < len(results) {
			result = results[i]
		}

		if result == nil {
			b.WriteString(noDataPlaceholder + "\n")
			continue
		}

		if result.HasText() {
			fmt.Fprintf(b, "%s\n", strings.TrimSpace(result.Text))
			if len(result.Citations) > 0 {
				b.WriteString("\nSources:\n")
				for _, citation := range result.Citations {
					fmt.Fprintf(b, "- %s\n", citation)
				}
			}
			continue
		}

		// Unknown shape: render the payload as-is.
		fmt.Fprintf(b, "%s\n", stringifyRaw(result.Raw))
	}
}

func stringifyRaw(raw map[string]any) string {
	if raw == nil {
		return noDataPlaceholder
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(data)
}
