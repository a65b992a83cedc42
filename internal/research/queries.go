// Package research plans company research queries and classifies the
// free-text results into structured location findings. All text analysis is
// deliberate keyword matching, kept in explicit rule tables.
package research

import (
	"fmt"
	"strings"
)

// Query is one titled research question. Planner output order determines
// report section order.
type Query struct {
	Title string
	Text  string
}

// PlanQueries produces the fixed ordered list of research questions for a
// company. The optional info string disambiguates companies with similar
// names. Deterministic, no I/O.
func PlanQueries(company, info string) []Query {
	subject := strings.TrimSpace(company)
	if info = strings.TrimSpace(info); info != "" {
		subject = subject + " " + info
	}

	return []Query{
		{
			Title: "Company Overview",
			Text:  fmt.Sprintf("Detailed company information for %s including size, headquarters, founding date, and description", subject),
		},
		{
			Title: "Remote Work Policies",
			Text:  fmt.Sprintf("Remote work policies and culture at %s, including location restrictions and time zone expectations", subject),
		},
		{
			Title: "Leadership and Funding",
			Text:  fmt.Sprintf("Leadership team and funding history of %s, including VCs and backers", subject),
		},
		{
			Title: "Career Opportunities",
			Text:  fmt.Sprintf("Career opportunities and hiring process at %s, including salary transparency and compensation strategy", subject),
		},
		{
			Title: "Company Culture and Values",
			Text:  fmt.Sprintf("Company values, mission, and culture at %s, especially regarding remote work", subject),
		},
		{
			Title: "Market Positioning",
			Text:  fmt.Sprintf("Competitors of %s and how they compare in terms of remote work policies", subject),
		},
		{
			Title: "Company Reputation",
			Text:  fmt.Sprintf("Any controversies or red flags related to %s, especially regarding treatment of employees", subject),
		},
	}
}
