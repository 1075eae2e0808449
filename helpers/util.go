package helpers

import (
	"net/url"
	"strings"
)

// CollapseWhitespace trims a string and collapses internal whitespace runs
// into single spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ResolveURL resolves href against base, returning an absolute URL.
// Returns an empty string when the result is not an absolute http(s) URL.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	if !u.IsAbs() {
		b, err := url.Parse(base)
		if err != nil {
			return ""
		}
		u = b.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return ""
	}

	return u.String()
}
