package model

import "strings"

// NormalizeDOI lowers a DOI and strips resolver prefixes so that the same
// work always yields the same identifier string.
func NormalizeDOI(doi string) string {
	d := strings.ToLower(strings.TrimSpace(doi))
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "doi:"} {
		if strings.HasPrefix(d, prefix) {
			d = d[len(prefix):]
			break
		}
	}
	return strings.TrimSpace(d)
}

// NormalizeURL canonicalizes a URL for equality checks: lower-case, trailing
// slashes stripped, query string dropped. Dropping the whole query is
// deliberately blunt; it collapses tracking parameters, which is what note
// comparison needs.
func NormalizeURL(url string) string {
	u := strings.ToLower(strings.TrimSpace(url))
	u = strings.TrimRight(u, "/")
	if i := strings.Index(u, "?"); i >= 0 {
		u = u[:i]
	}
	return u
}

// URLsMatch reports whether two URLs refer to the same page after
// normalization. Empty URLs never match.
func URLsMatch(url1, url2 string) bool {
	if url1 == "" || url2 == "" {
		return false
	}
	return NormalizeURL(url1) == NormalizeURL(url2)
}
