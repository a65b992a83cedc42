package research

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spigell/company-scout/internal/candidate"
)

// warningMarker prefixes the verdict warning whenever the candidate is
// incompatible with the detected restrictions.
const warningMarker = "LOCATION COMPATIBILITY WARNING"

const undeterminedWarning = "Could not determine location compatibility: candidate location and time zone are unknown."

// Verdict is the outcome of comparing a restriction record against the
// candidate profile. Transient; never persisted.
type Verdict struct {
	IsCompatible bool
	Warning      string
}

// CheckCompatibility compares the restriction record with the candidate's
// declared location and time zone. A nil profile or an unrestricted record is
// always compatible. A profile without location and time zone is treated as
// compatible but flagged, never silently approved.
func CheckCompatibility(r *LocationRestriction, profile *candidate.Profile) Verdict {
	if r == nil || !r.HasRestrictions || profile == nil {
		return Verdict{IsCompatible: true}
	}

	location := strings.TrimSpace(profile.Personal.Location)
	timeZone := strings.TrimSpace(profile.Personal.TimeZone)

	if location == "" && timeZone == "" {
		return Verdict{IsCompatible: true, Warning: undeterminedWarning}
	}

	var reasons []string

	locationLower := strings.ToLower(location)
	for _, region := range r.RestrictedTo {
		if !strings.Contains(locationLower, strings.ToLower(region)) {
			reasons = append(reasons, fmt.Sprintf("hiring is restricted to %q but the candidate is located in %q", region, location))
		}
	}

	for _, region := range r.ExcludedRegions {
		if strings.Contains(locationLower, strings.ToLower(region)) {
			reasons = append(reasons, fmt.Sprintf("candidate location %q falls into excluded region %q", location, region))
		}
	}

	if r.TimeZoneRequirement != "" && timeZone != "" && !zoneMatches(r.TimeZoneRequirement, timeZone) {
		reasons = append(reasons, fmt.Sprintf("required time zone %q does not match candidate time zone %q", r.TimeZoneRequirement, timeZone))
	}

	if len(reasons) == 0 {
		return Verdict{IsCompatible: true}
	}

	return Verdict{
		IsCompatible: false,
		Warning:      fmt.Sprintf("%s: %s", warningMarker, strings.Join(reasons, "; ")),
	}
}

// zoneMatches reports whether the candidate zone satisfies a requirement like
// "Central European Time (CET)": the full requirement or its base name appears
// in the candidate zone, or the candidate zone carries the requirement's
// abbreviation as a standalone token. Plain containment of the candidate zone
// inside the requirement is deliberately not enough; a one-letter zone must
// not satisfy everything.
func zoneMatches(requirement, zone string) bool {
	req := strings.ToLower(strings.TrimSpace(requirement))
	candidate := strings.ToLower(zone)

	base, abbr := splitZone(req)
	if strings.Contains(candidate, req) || (base != "" && strings.Contains(candidate, base)) {
		return true
	}

	if abbr == "" {
		return false
	}
	for _, token := range strings.FieldsFunc(candidate, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if token == abbr {
			return true
		}
	}

	return false
}

// splitZone splits "Central European Time (CET)" into "central european time"
// and "cet". A requirement without a parenthesized abbreviation is all base.
func splitZone(req string) (base, abbr string) {
	start := strings.LastIndex(req, "(")
	end := strings.LastIndex(req, ")")
	if start == -1 || end <= start+1 {
		return req, ""
	}

	return strings.TrimSpace(req[:start]), strings.TrimSpace(req[start+1 : end])
}
