package helpers

import (
	"net/url"
	"strings"
)

// ResolveURL resolves href against base. Scheme-relative links get an https
// prefix; relative paths use standard URL-join semantics. Unresolvable input
// is returned as-is.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() || base == "" {
		return href
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
