package router

import (
	"regexp"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
	"github.com/citeflex/citeflex/internal/providers"
)

// Detection is the result of pattern-based type classification. Query
// carries the trimmed text that routing should use.
type Detection struct {
	Type       model.CitationType
	Confidence float64
	Query      string
}

var (
	urlPattern       = regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`)
	legalCitePattern = regexp.MustCompile(`\b\d+\s+(?:U\.?S\.?|S\.?\s?Ct\.?|F\.(?:2d|3d|4th)?|F\.\s?Supp\.?)\s+\d+`)
	interviewPattern = regexp.MustCompile(`(?i)\binterview(?:\s+(?:with|by))?\b|\bpersonal communication\b`)
	volIssuePattern  = regexp.MustCompile(`(?i)\bvol\.?\s*\d+|\bno\.?\s*\d+\s*[,(]|\b\d+\s*\(\d{4}\)\s*:`)
	editionPattern   = regexp.MustCompile(`(?i)\b(?:\d+(?:st|nd|rd|th)\s+ed\.|eds?\.\s)`)
)

var newspaperDomains = []string{
	"nytimes.com", "washingtonpost.com", "wsj.com", "theguardian.com",
	"latimes.com", "reuters.com", "apnews.com", "bbc.co", "bbc.com",
	"economist.com", "ft.com", "usatoday.com", "bloomberg.com",
}

var newspaperNames = []string{
	"new york times", "washington post", "wall street journal",
	"the guardian", "los angeles times", "the economist",
	"financial times", "usa today", "associated press",
}

var governmentMarkers = []string{
	"department of", "u.s. congress", "congressional", "federal register",
	"government accountability office", "gao report", "cong. rec.",
	"h.r. rep.", "s. rep.", "bureau of", "census bureau",
}

var medicalMarkers = []string{
	"pubmed", "pmid", "clinical trial", "randomized", "cohort study",
	"meta-analysis", "patients", "lancet", "nejm", "jama",
	"new england journal of medicine",
}

var journalMarkers = []string{
	"journal of", "quarterly", "review of", "annals of", "proceedings of",
}

var medicalDomains = []string{
	"pubmed", "ncbi.nlm.nih.gov", "nih.gov/health", "medlineplus",
}

// Detect buckets a query by surface patterns alone. It never consults the
// network, so routing can always fall back on it when the classification
// oracle is not configured.
func Detect(query string) Detection {
	q := strings.TrimSpace(query)
	lower := strings.ToLower(q)

	switch {
	case urlPattern.MatchString(q):
		return Detection{Type: model.TypeURL, Confidence: 0.95, Query: q}

	case providers.IsLegalCitation(q) || legalCitePattern.MatchString(q):
		return Detection{Type: model.TypeLegal, Confidence: 0.9, Query: q}

	case interviewPattern.MatchString(q):
		return Detection{Type: model.TypeInterview, Confidence: 0.85, Query: q}

	case providers.ExtractPMID(q) != "" || containsAny(lower, medicalMarkers):
		return Detection{Type: model.TypeMedical, Confidence: 0.8, Query: q}

	case containsAny(lower, governmentMarkers) || strings.Contains(lower, ".gov"):
		return Detection{Type: model.TypeGovernment, Confidence: 0.75, Query: q}

	case containsAny(lower, newspaperDomains) || containsAny(lower, newspaperNames):
		return Detection{Type: model.TypeNewspaper, Confidence: 0.8, Query: q}

	case providers.ExtractDOI(q) != "" || volIssuePattern.MatchString(q) || containsAny(lower, journalMarkers):
		return Detection{Type: model.TypeJournal, Confidence: 0.8, Query: q}

	case providers.ExtractISBN(q) != "" || strings.Contains(lower, "university press") ||
		strings.Contains(lower, " press,") || editionPattern.MatchString(q):
		return Detection{Type: model.TypeBook, Confidence: 0.75, Query: q}
	}

	return Detection{Type: model.TypeUnknown, Confidence: 0.3, Query: q}
}

// IsMedicalURL reports whether a URL points at a medical domain. Medical
// .gov hosts route to the medical bucket, not the government one.
func IsMedicalURL(rawURL string) bool {
	return containsAny(strings.ToLower(rawURL), medicalDomains)
}

// IsNewspaperURL reports whether a URL belongs to a known newspaper domain.
func IsNewspaperURL(rawURL string) bool {
	return containsAny(strings.ToLower(rawURL), newspaperDomains)
}

// IsGovernmentURL reports whether a URL is a non-medical .gov address.
func IsGovernmentURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.Contains(lower, ".gov") && !IsMedicalURL(rawURL)
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}
