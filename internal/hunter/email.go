package hunter

import "strings"

// KindGeneric marks role-based addresses (info@, jobs@) not tied to a
// named individual.
const KindGeneric = "generic"

// Caps for the generic and named buckets. First-found order is preserved.
const maxBucketSize = 3

type DomainSearchResponse struct {
	Emails []*EmailRecord
}

// EmailRecord is sourced verbatim from the email-lookup service; read-only.
type EmailRecord struct {
	Address    string `json:"value,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	Kind       string `json:"type,omitempty"`
}

// Classification partitions discovered emails into four non-exclusive
// buckets. Career and founder may share entries; generic and named are
// mutually exclusive by kind.
type Classification struct {
	Career  []*EmailRecord
	Founder []*EmailRecord
	Generic []*EmailRecord
	Named   []*EmailRecord
}

// Empty reports whether no bucket holds any record.
func (c Classification) Empty() bool {
	return len(c.Career) == 0 && len(c.Founder) == 0 && len(c.Generic) == 0 && len(c.Named) == 0
}

var careerKeywords = []string{"career", "recruit", "hr", "hiring", "talent", "job", "human resource"}

var founderKeywords = []string{"founder", "ceo", "chief executive", "president", "owner"}

// Classify partitions the response's email records. A nil or malformed
// response yields four empty buckets, never an error. Classification is
// idempotent and order-preserving.
func Classify(resp *DomainSearchResponse) Classification {
	var result Classification
	if resp == nil {
		return result
	}

	for _, record := range resp.Emails {
		if record == nil {
			continue
		}

		address := strings.ToLower(record.Address)
		position := strings.ToLower(record.Position)
		department := strings.ToLower(record.Department)
		kind := strings.ToLower(record.Kind)

		if containsAny(position, careerKeywords) ||
			containsAny(department, careerKeywords) ||
			containsAny(address, careerKeywords) {
			result.Career = append(result.Career, record)
		}

		if containsAny(position, founderKeywords) {
			result.Founder = append(result.Founder, record)
		}

		switch {
		case kind == KindGeneric:
			if len(result.Generic) < maxBucketSize {
				result.Generic = append(result.Generic, record)
			}
		case record.FirstName != "" && record.LastName != "":
			if len(result.Named) < maxBucketSize {
				result.Named = append(result.Named, record)
			}
		}
	}

	return result
}

func containsAny(s string, keywords []string) bool {
	if s == "" {
		return false
	}
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
