package router

import (
	"regexp"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

var (
	interviewSubject = regexp.MustCompile(`(?i)^interview\s+(?:with|by)\s+([^,.]+)`)
	yearInText       = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)
)

// looseMetadata builds a best-effort record from the query text alone.
// It backs the government, newspaper, and interview buckets when the
// query is not a URL and no structured provider applies.
func looseMetadata(query string, citationType model.CitationType) *model.CitationMetadata {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil
	}

	meta := &model.CitationMetadata{
		Type:         citationType,
		RawSource:    q,
		SourceEngine: "Text Extraction",
		Title:        strings.TrimRight(q, ".,;"),
		Confidence:   0.4,
	}
	if year := yearInText.FindString(q); year != "" {
		meta.Year = year
	}
	return meta
}

// interviewMetadata parses the interviewee out of "Interview with X"
// phrasing when present.
func interviewMetadata(query string) *model.CitationMetadata {
	meta := looseMetadata(query, model.TypeInterview)
	if meta == nil {
		return nil
	}
	if m := interviewSubject.FindStringSubmatch(query); m != nil {
		meta.Authors = []string{strings.TrimSpace(m[1])}
	}
	return meta
}

var noiseWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"that": true, "this": true, "none": true, "could": true, "would": true,
	"put": true,
}

// stripNoiseWords keeps the first few significant words of a messy query
// for a relaxed retry against Semantic Scholar.
func stripNoiseWords(query string, limit int) string {
	var kept []string
	for _, word := range strings.Fields(query) {
		if len(word) > 3 && !noiseWords[strings.ToLower(word)] {
			kept = append(kept, word)
			if len(kept) == limit {
				break
			}
		}
	}
	return strings.Join(kept, " ")
}
