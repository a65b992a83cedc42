package research

import "github.com/spigell/company-scout/internal/search"

// RemoteClassifier decides whether the company looks remote-friendly from the
// collected research. It gates cover-letter generation and is intentionally
// pluggable; no real heuristic ships yet.
type RemoteClassifier func(results []*search.Result) bool

// AlwaysRemote is the default classifier. It treats every company as
// remote-friendly so the cover letter is always offered.
func AlwaysRemote(_ []*search.Result) bool { return true }
