package model

// NoteKind distinguishes the two note-definition parts of a document.
type NoteKind string

const (
	Endnote  NoteKind = "endnote"
	Footnote NoteKind = "footnote"
)

// Note is one endnote or footnote as read from the source document.
type Note struct {
	ID   int      `json:"id"`
	Text string   `json:"text"`
	Kind NoteKind `json:"kind"`
}

// CitationForm is the structural form a citation renders as.
type CitationForm string

const (
	FormFull  CitationForm = "full"
	FormIbid  CitationForm = "ibid"
	FormShort CitationForm = "short"
)

// ProcessedCitation is the per-note outcome of a processing run. Exactly one
// is produced per input note, in document order.
type ProcessedCitation struct {
	Original  string            `json:"original"`
	Formatted string            `json:"formatted"`
	Metadata  *CitationMetadata `json:"metadata,omitempty"`
	URL       string            `json:"url,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Form      CitationForm      `json:"citation_form"`
}
