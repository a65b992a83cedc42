package research

import (
	"strings"
	"testing"

	"github.com/spigell/company-scout/internal/candidate"
)

func profileAt(location, timeZone string) *candidate.Profile {
	return &candidate.Profile{
		Personal: candidate.PersonalInformation{
			Name:     "Jane Doe",
			Location: location,
			TimeZone: timeZone,
		},
	}
}

func TestCheckCompatibilityNoRestrictions(t *testing.T) {
	verdict := CheckCompatibility(&LocationRestriction{}, profileAt("Berlin, Germany", "CET"))

	if !verdict.IsCompatible {
		t.Fatal("expected compatible")
	}
	if verdict.Warning != "" {
		t.Fatalf("expected empty warning, got %q", verdict.Warning)
	}
}

func TestCheckCompatibilityNilProfile(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, RestrictedTo: []string{"United States"}}

	verdict := CheckCompatibility(r, nil)

	if !verdict.IsCompatible || verdict.Warning != "" {
		t.Fatalf("nil profile must be compatible with no warning, got %+v", verdict)
	}
}

func TestCheckCompatibilityRestrictedRegionMismatch(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, RestrictedTo: []string{"United States"}}

	verdict := CheckCompatibility(r, profileAt("Berlin, Germany", ""))

	if verdict.IsCompatible {
		t.Fatal("expected incompatible")
	}
	if verdict.Warning == "" {
		t.Fatal("expected non-empty warning")
	}
	if !strings.HasPrefix(verdict.Warning, "LOCATION COMPATIBILITY WARNING") {
		t.Fatalf("warning missing marker: %q", verdict.Warning)
	}
	if !strings.Contains(verdict.Warning, "United States") || !strings.Contains(verdict.Warning, "Berlin, Germany") {
		t.Fatalf("warning missing context: %q", verdict.Warning)
	}
}

func TestCheckCompatibilityRestrictedRegionMatch(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, RestrictedTo: []string{"United States"}}

	verdict := CheckCompatibility(r, profileAt("Austin, United States", ""))

	if !verdict.IsCompatible {
		t.Fatalf("expected compatible, got %+v", verdict)
	}
}

func TestCheckCompatibilityExcludedRegion(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, ExcludedRegions: []string{"Germany"}}

	verdict := CheckCompatibility(r, profileAt("Berlin, Germany", ""))

	if verdict.IsCompatible {
		t.Fatal("expected incompatible for excluded region")
	}
	if !strings.Contains(verdict.Warning, "Germany") {
		t.Fatalf("warning missing region: %q", verdict.Warning)
	}
}

func TestCheckCompatibilityTimeZoneMismatch(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, TimeZoneRequirement: "Eastern Time (ET)"}

	verdict := CheckCompatibility(r, profileAt("", "Central European Time (CET)"))

	if verdict.IsCompatible {
		t.Fatal("expected incompatible for time zone mismatch")
	}
}

func TestCheckCompatibilityTimeZoneSubstringMatch(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, TimeZoneRequirement: "Central European Time (CET)"}

	verdict := CheckCompatibility(r, profileAt("", "CET"))

	if !verdict.IsCompatible {
		t.Fatalf("expected compatible for matching zone, got %+v", verdict)
	}
}

func TestCheckCompatibilityTimeZoneBaseNameMatch(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, TimeZoneRequirement: "Eastern Time (ET)"}

	verdict := CheckCompatibility(r, profileAt("", "Eastern Time"))

	if !verdict.IsCompatible {
		t.Fatalf("expected compatible for base name match, got %+v", verdict)
	}
}

func TestCheckCompatibilityDegenerateZoneNotWildcard(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, TimeZoneRequirement: "Eastern Time (ET)"}

	for _, zone := range []string{"E", "T", "e"} {
		verdict := CheckCompatibility(r, profileAt("", zone))
		if verdict.IsCompatible {
			t.Fatalf("one-letter zone %q must not satisfy the requirement", zone)
		}
	}
}

func TestCheckCompatibilityAbbreviationIsTokenMatched(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, TimeZoneRequirement: "Eastern Time (ET)"}

	// "cet" contains "et" as a substring but is a different zone.
	verdict := CheckCompatibility(r, profileAt("", "CET"))
	if verdict.IsCompatible {
		t.Fatal("CET must not satisfy an ET requirement")
	}

	verdict = CheckCompatibility(r, profileAt("", "ET"))
	if !verdict.IsCompatible {
		t.Fatalf("expected compatible for exact abbreviation, got %+v", verdict)
	}
}

func TestCheckCompatibilityUnknownCandidateLocation(t *testing.T) {
	r := &LocationRestriction{HasRestrictions: true, RestrictedTo: []string{"United States"}}

	verdict := CheckCompatibility(r, profileAt("", ""))

	if !verdict.IsCompatible {
		t.Fatal("unknown location must stay compatible")
	}
	if verdict.Warning == "" {
		t.Fatal("unknown location must be flagged, not silently approved")
	}
}
