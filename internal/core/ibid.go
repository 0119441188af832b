package core

import (
	"regexp"
	"strings"
)

// ibidPattern recognizes explicit ibid markers: "ibid", "ibid.", "ibidem",
// and Bluebook "Id.", optionally followed by a page or range introduced by
// "at", "pp.", a comma, or a period.
var ibidPattern = regexp.MustCompile(`(?i)^(?:ibid\.?|ibidem\.?|id\.?)(?:\s*(?:at\s+|[,.]?\s*)?(?:pp?\.?\s*)?(\d+[\-–]?\d*)?)?\.?$`)

// IsIbid reports whether a note's text is an explicit ibid reference.
func IsIbid(text string) bool {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return false
	}
	return ibidPattern.MatchString(cleaned)
}

// ExtractIbidPage returns the page number or range carried by an ibid
// reference, or "" when none is present.
func ExtractIbidPage(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}
	m := ibidPattern.FindStringSubmatch(cleaned)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
