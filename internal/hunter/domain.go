package hunter

import "strings"

// NormalizeDomain turns a URL-like or bare-domain string into a lowercase
// registrable domain: scheme, www. prefix, path, and trailing dots stripped.
// The second return value reports a malformed-looking result (no dot left
// after stripping); the domain is still returned so callers can warn and
// proceed.
func NormalizeDomain(website string) (string, bool) {
	domain := strings.ToLower(strings.TrimSpace(website))
	if domain == "" {
		return "", false
	}

	for _, prefix := range []string{"https://", "http://", "www."} {
		domain = strings.TrimPrefix(domain, prefix)
	}

	if idx := strings.Index(domain, "/"); idx != -1 {
		domain = domain[:idx]
	}

	domain = strings.TrimRight(domain, ".")

	return domain, domain != "" && !strings.Contains(domain, ".")
}
