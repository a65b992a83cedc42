package research

import (
	"strings"

	"github.com/spigell/company-scout/internal/search"
	"go.uber.org/zap"
)

// Level is the ordinal severity of a detected hiring-location constraint.
type Level string

const (
	LevelNone   Level = "none"
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

func (l Level) rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	default:
		return 0
	}
}

// raise escalates the level. It never downgrades within an extraction pass.
func (l Level) raise(to Level) Level {
	if to.rank() > l.rank() {
		return to
	}
	return l
}

const noRestrictionsFound = "No location restrictions found."

// LocationRestriction is the structured record distilled from research text.
// CompanyURL is appended before persistence; everything else is fixed once
// the extraction pass finishes.
type LocationRestriction struct {
	HasRestrictions     bool     `json:"has_restrictions"`
	RestrictedTo        []string `json:"restricted_to"`
	ExcludedRegions     []string `json:"excluded_regions"`
	TimeZoneRequirement string   `json:"time_zone_requirement,omitempty"`
	RestrictionLevel    Level    `json:"restriction_level"`
	Description         string   `json:"description"`
	CompanyURL          string   `json:"company_url,omitempty"`
}

// regionRule flags a geographic hiring restriction. A rule fires when any of
// anyOf is present, or when every phrase in allOf is present.
type regionRule struct {
	anyOf  []string
	allOf  []string
	region string
}

var regionRules = []regionRule{
	{anyOf: []string{"us only", "united states only"}, region: "United States"},
	{anyOf: []string{"eu only", "europe only"}, region: "European Union"},
	{allOf: []string{"north america", "only"}, region: "North America"},
}

// zoneRule flags a time-zone overlap requirement. It fires only when the text
// also talks about time zones and overlap/hours; see scanZones.
type zoneRule struct {
	markers []string
	zone    string
}

var zoneRules = []zoneRule{
	{markers: []string{"est", "edt"}, zone: "Eastern Time (ET)"},
	{markers: []string{"pst", "pdt"}, zone: "Pacific Time (PT)"},
	{markers: []string{"cet", "central european"}, zone: "Central European Time (CET)"},
}

// ExtractRestrictions scans each result's text independently against the rule
// tables and folds the matches into one restriction record. Results without a
// known text shape are skipped with a warning; they never abort the scan.
func ExtractRestrictions(results []*search.Result, logger *zap.Logger) *LocationRestriction {
	restriction := &LocationRestriction{RestrictionLevel: LevelNone}

	for i, result := range results {
		if result == nil {
			continue
		}
		if !result.HasText() {
			if result.Raw != nil && logger != nil {
				logger.Warn("skipping research item without recognizable text", zap.Int("index", i))
			}
			continue
		}

		text := strings.ToLower(result.Text)
		scanRegions(restriction, text)
		scanZones(restriction, text)
	}

	restriction.Description = describe(restriction)

	return restriction
}

func scanRegions(r *LocationRestriction, text string) {
	for _, rule := range regionRules {
		if !rule.matches(text) {
			continue
		}
		r.HasRestrictions = true
		r.RestrictedTo = appendUnique(r.RestrictedTo, rule.region)
		r.RestrictionLevel = r.RestrictionLevel.raise(LevelHigh)
	}
}

func scanZones(r *LocationRestriction, text string) {
	if !strings.Contains(text, "time zone") {
		return
	}
	if !strings.Contains(text, "overlap") && !strings.Contains(text, "hours") {
		return
	}

	for _, rule := range zoneRules {
		for _, marker := range rule.markers {
			if !strings.Contains(text, marker) {
				continue
			}
			r.HasRestrictions = true
			r.TimeZoneRequirement = rule.zone
			r.RestrictionLevel = r.RestrictionLevel.raise(LevelMedium)
			return
		}
	}
}

func (rule regionRule) matches(text string) bool {
	for _, phrase := range rule.anyOf {
		if strings.Contains(text, phrase) {
			return true
		}
	}

	if len(rule.allOf) == 0 {
		return false
	}
	for _, phrase := range rule.allOf {
		if !strings.Contains(text, phrase) {
			return false
		}
	}
	return true
}

func describe(r *LocationRestriction) string {
	if !r.HasRestrictions {
		return noRestrictionsFound
	}

	var parts []string
	if len(r.RestrictedTo) > 0 {
		parts = append(parts, "Restricted to: "+strings.Join(r.RestrictedTo, ", "))
	}
	if len(r.ExcludedRegions) > 0 {
		parts = append(parts, "Excluded regions: "+strings.Join(r.ExcludedRegions, ", "))
	}
	if r.TimeZoneRequirement != "" {
		parts = append(parts, "Time zone requirements: "+r.TimeZoneRequirement)
	}

	return strings.Join(parts, " | ")
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
