package model

// CitationType is the coarse classification of a source, used to pick
// which providers to query and which formatting rules apply.
type CitationType string

const (
	TypeLegal      CitationType = "legal"
	TypeBook       CitationType = "book"
	TypeJournal    CitationType = "journal"
	TypeNewspaper  CitationType = "newspaper"
	TypeGovernment CitationType = "government"
	TypeMedical    CitationType = "medical"
	TypeInterview  CitationType = "interview"
	TypeURL        CitationType = "url"
	TypeUnknown    CitationType = "unknown"
)

// ParseCitationType maps a provider- or classifier-supplied type label to a
// CitationType. Unrecognized labels map to TypeUnknown.
func ParseCitationType(s string) CitationType {
	switch CitationType(s) {
	case TypeLegal, TypeBook, TypeJournal, TypeNewspaper, TypeGovernment,
		TypeMedical, TypeInterview, TypeURL:
		return CitationType(s)
	default:
		return TypeUnknown
	}
}

// CitationMetadata is the resolved description of a source as produced by a
// single provider. It is immutable once produced: results from different
// providers are never merged into one record.
type CitationMetadata struct {
	Type      CitationType `json:"citation_type"`
	RawSource string       `json:"raw_source"`

	// SourceEngine names the provider that produced this record.
	SourceEngine string `json:"source_engine"`

	Title     string   `json:"title,omitempty"`
	Authors   []string `json:"authors,omitempty"`
	Year      string   `json:"year,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	Place     string   `json:"place,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Volume    string   `json:"volume,omitempty"`
	Issue     string   `json:"issue,omitempty"`
	Pages     string   `json:"pages,omitempty"`

	DOI  string `json:"doi,omitempty"`
	ISBN string `json:"isbn,omitempty"`
	PMID string `json:"pmid,omitempty"`
	URL  string `json:"url,omitempty"`

	// Legal fields.
	CaseName        string `json:"case_name,omitempty"`
	Citation        string `json:"citation,omitempty"`
	NeutralCitation string `json:"neutral_citation,omitempty"`
	Court           string `json:"court,omitempty"`
	Jurisdiction    string `json:"jurisdiction,omitempty"`

	Confidence float64 `json:"confidence,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

// HasMinimumData reports whether the record carries enough fields to be worth
// formatting. Legal records need a case name or a reporter citation; every
// other type needs a title.
func (m *CitationMetadata) HasMinimumData() bool {
	if m == nil {
		return false
	}
	if m.Type == TypeLegal {
		return m.CaseName != "" || m.Citation != ""
	}
	return m.Title != ""
}

// FirstAuthor returns the first listed author, or "".
func (m *CitationMetadata) FirstAuthor() string {
	if m == nil || len(m.Authors) == 0 {
		return ""
	}
	return m.Authors[0]
}
