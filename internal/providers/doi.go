package providers

import (
	"regexp"
	"strings"
)

var (
	doiPattern  = regexp.MustCompile(`(10\.\d{4,}/[^\s'"<>]+)`)
	pmidPattern = regexp.MustCompile(`(?i)(?:pmid:?\s*|pubmed:?\s*)(\d+)`)
	isbnPattern = regexp.MustCompile(`(?i)(?:isbn[-:\s]*)?((?:97[89][-\s]?)?\d{1,5}[-\s]?\d{1,7}[-\s]?\d{1,7}[-\s]?[\dXx])\b`)
)

// ExtractDOI pulls a literal DOI out of free text, trimming trailing
// sentence punctuation. Returns "" if none is present.
func ExtractDOI(text string) string {
	m := doiPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimRight(m[1], ".,;")
}

// ExtractPMID pulls an explicit "PMID: 12345" style identifier out of free
// text. Returns "" if none is present.
func ExtractPMID(text string) string {
	m := pmidPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractISBN pulls an ISBN-10 or ISBN-13 out of text that mentions one
// explicitly ("ISBN 978-...") and returns it with separators stripped.
func ExtractISBN(text string) string {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, "isbn")
	if idx < 0 {
		return ""
	}
	m := isbnPattern.FindStringSubmatch(text[idx:])
	if m == nil {
		return ""
	}
	isbn := strings.NewReplacer("-", "", " ", "").Replace(m[1])
	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}

// academicPublisherDomains are hosts whose article URLs usually embed a DOI
// in the path.
var academicPublisherDomains = []string{
	"doi.org",
	"link.springer.com",
	"onlinelibrary.wiley.com",
	"sciencedirect.com",
	"tandfonline.com",
	"journals.sagepub.com",
	"academic.oup.com",
	"cambridge.org",
	"nature.com",
	"jstor.org",
	"pnas.org",
	"frontiersin.org",
	"mdpi.com",
	"plos.org",
}

// IsAcademicPublisherURL reports whether the URL belongs to a publisher whose
// links are worth mining for a DOI.
func IsAcademicPublisherURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, domain := range academicPublisherDomains {
		if strings.Contains(lower, domain) {
			return true
		}
	}
	return false
}

// ExtractDOIFromURL pulls a DOI out of a publisher URL. doi.org links carry
// the DOI as their path; other publishers embed it after /doi/ segments.
func ExtractDOIFromURL(rawURL string) string {
	lower := strings.ToLower(rawURL)
	if i := strings.Index(lower, "doi.org/"); i >= 0 {
		return strings.TrimRight(rawURL[i+len("doi.org/"):], "/.,;")
	}
	return ExtractDOI(rawURL)
}
