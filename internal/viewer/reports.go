// Package viewer serves saved research reports as browsable HTML.
package viewer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/spigell/company-scout/internal/research"
)

// Report filenames follow <sanitized company>_<YYYYMMDD_HHMMSS>.md.
var reportNamePattern = regexp.MustCompile(`^(.+)_(\d{8}_\d{6})\.md$`)

const stampLayout = "20060102_150405"

// Report is one saved run discovered in the output directory.
type Report struct {
	Filename    string
	CompanyName string
	Timestamp   time.Time
	Path        string
	Restriction *research.LocationRestriction
}

// ListReports scans the output directory for saved reports and their
// location-restriction side-cars. Files that do not match the naming scheme
// fall back to file metadata instead of being dropped.
func ListReports(outputDir string) ([]Report, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var reports []Report
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		report := Report{
			Filename: entry.Name(),
			Path:     filepath.Join(outputDir, entry.Name()),
		}

		if match := reportNamePattern.FindStringSubmatch(entry.Name()); match != nil {
			if ts, err := time.Parse(stampLayout, match[2]); err == nil {
				report.CompanyName = strings.ReplaceAll(match[1], "_", " ")
				report.Timestamp = ts
				report.Restriction = loadRestriction(outputDir, strings.TrimSuffix(entry.Name(), ".md"))
			}
		}

		if report.CompanyName == "" {
			report.CompanyName = strings.ReplaceAll(strings.TrimSuffix(entry.Name(), ".md"), "_", " ")
			if info, err := entry.Info(); err == nil {
				report.Timestamp = info.ModTime()
			}
		}

		reports = append(reports, report)
	}

	return reports, nil
}

func loadRestriction(outputDir, stem string) *research.LocationRestriction {
	data, err := os.ReadFile(filepath.Join(outputDir, "json", stem+"_location.json"))
	if err != nil {
		return nil
	}

	var restriction research.LocationRestriction
	if err := json.Unmarshal(data, &restriction); err != nil {
		return nil
	}

	return &restriction
}

// SortReports orders the list by date or company name.
func SortReports(reports []Report, by string, reverse bool) {
	sort.SliceStable(reports, func(i, j int) bool {
		var less bool
		if by == "company" {
			less = strings.ToLower(reports[i].CompanyName) < strings.ToLower(reports[j].CompanyName)
		} else {
			less = reports[i].Timestamp.Before(reports[j].Timestamp)
		}
		if reverse {
			return !less
		}
		return less
	})
}
