package providers

import (
	"regexp"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// LandmarkCase is one entry in the curated table of cases cited often enough
// that a network lookup is a waste.
type LandmarkCase struct {
	Name     string
	Citation string
	Year     string
}

// landmarkCases is keyed by the folded query form, with and without the
// period after "v", since authors type both.
var landmarkCases = map[string]LandmarkCase{
	"roe v. wade":                 {"Roe v. Wade", "410 U.S. 113", "1973"},
	"brown v. board of education": {"Brown v. Board of Education", "347 U.S. 483", "1954"},
	"loving v. virginia":          {"Loving v. Virginia", "388 U.S. 1", "1967"},
	"miranda v. arizona":          {"Miranda v. Arizona", "384 U.S. 436", "1966"},
	"marbury v. madison":          {"Marbury v. Madison", "5 U.S. 137", "1803"},
	"gideon v. wainwright":        {"Gideon v. Wainwright", "372 U.S. 335", "1963"},
	"plessy v. ferguson":          {"Plessy v. Ferguson", "163 U.S. 537", "1896"},
	"griswold v. connecticut":     {"Griswold v. Connecticut", "381 U.S. 479", "1965"},
	"obergefell v. hodges":        {"Obergefell v. Hodges", "576 U.S. 644", "2015"},
	"citizens united v. fec":      {"Citizens United v. FEC", "558 U.S. 310", "2010"},
	"osheroff v. chestnut lodge":  {"Osheroff v. Chestnut Lodge, Inc.", "490 A.2d 720 (Md. Ct. Spec. App.)", "1985"},
	"tarasoff v. regents":         {"Tarasoff v. Regents of the University of California", "17 Cal. 3d 425", "1976"},
}

var caseNamePattern = regexp.MustCompile(`\b[A-Z][\w.'-]*(?:\s+[\w.'&-]+)*\s+v\.?\s+[A-Z]`)

// IsLegalCitation reports whether a query looks like a legal case reference:
// either a "X v. Y" case-name shape or a hit in the landmark table. The
// table check catches bare names ("Roe v Wade") that looser regexes miss.
func IsLegalCitation(query string) bool {
	if _, ok := LookupLandmark(query); ok {
		return true
	}
	return caseNamePattern.MatchString(query)
}

// LookupLandmark checks the curated table for a case matching the query.
func LookupLandmark(query string) (LandmarkCase, bool) {
	lookup := strings.ToLower(strings.TrimSpace(query))
	lookup = strings.TrimRight(lookup, ".")
	if c, ok := landmarkCases[lookup]; ok {
		return c, true
	}
	// Tolerate the period-less "v" spelling.
	if c, ok := landmarkCases[strings.Replace(lookup, " v ", " v. ", 1)]; ok {
		return c, true
	}
	return LandmarkCase{}, false
}

// Metadata converts a landmark entry to a resolved record.
func (c LandmarkCase) Metadata(rawSource string) *model.CitationMetadata {
	return &model.CitationMetadata{
		Type:         model.TypeLegal,
		RawSource:    rawSource,
		SourceEngine: "Landmark Cases",
		CaseName:     c.Name,
		Citation:     c.Citation,
		Year:         c.Year,
		Jurisdiction: "US",
		Confidence:   0.99,
	}
}
