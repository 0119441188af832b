package model

import "strings"

// SourceKey derives a stable identity string for a resolved source. Two
// records with equal non-empty keys denote the same work.
//
// Priority, first match wins:
//  1. doi:<normalized doi>
//  2. url:<normalized url>
//  3. legal:<case name>|<citation>   (both present)
//  4. title:<title>[|author:<first author>]
//  5. case:<case name>               (legal without a reporter citation)
//
// Returns "" when none apply. Note the title+first-author key treats two
// records with the same title and lead author as the same work even when
// they are different editions; callers live with that.
func SourceKey(m *CitationMetadata) string {
	if m == nil {
		return ""
	}

	if m.DOI != "" {
		if norm := NormalizeDOI(m.DOI); norm != "" {
			return "doi:" + norm
		}
	}

	if m.URL != "" {
		return "url:" + NormalizeURL(m.URL)
	}

	if m.CaseName != "" && m.Citation != "" {
		return "legal:" + fold(m.CaseName) + "|" + fold(m.Citation)
	}

	if m.Title != "" {
		key := "title:" + fold(m.Title)
		if first := m.FirstAuthor(); first != "" {
			key += "|author:" + fold(first)
		}
		return key
	}

	if m.CaseName != "" {
		return "case:" + fold(m.CaseName)
	}

	return ""
}

// SourcesMatch reports whether two metadata records describe the same work.
// A record with no derivable key matches nothing, not even an identical
// keyless record.
func SourcesMatch(a, b *CitationMetadata) bool {
	ka, kb := SourceKey(a), SourceKey(b)
	if ka == "" || kb == "" {
		return false
	}
	return ka == kb
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
