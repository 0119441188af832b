// Package history tracks the citations already emitted during one document
// run, so later notes can be rendered as ibid or short-form references.
package history

import "github.com/citeflex/citeflex/internal/core/model"

// Entry records one citation added to the history.
type Entry struct {
	Metadata   *model.CitationMetadata
	Formatted  string
	SourceKey  string
	NoteNumber int
}

// CitationHistory is per-document mutable state, alive for exactly one run.
// It tracks the most recent citation (for ibid) and the first occurrence of
// every distinct source (for short-form lookups). It is not safe for
// concurrent use; note processing is sequential by design.
type CitationHistory struct {
	previous   *Entry
	allSources map[string]*Entry
	counter    int
}

func New() *CitationHistory {
	return &CitationHistory{allSources: make(map[string]*Entry)}
}

// Add records a citation. The previous pointer always advances; allSources
// only gains the entry if its key is new (first-write-wins). Callers must
// pass the full-form formatted text, never a contracted ibid/short string,
// so later short-form decisions resolve against the canonical citation.
func (h *CitationHistory) Add(m *model.CitationMetadata, formatted string) {
	h.counter++
	entry := &Entry{
		Metadata:   m,
		Formatted:  formatted,
		SourceKey:  model.SourceKey(m),
		NoteNumber: h.counter,
	}
	h.previous = entry
	if entry.SourceKey != "" {
		if _, seen := h.allSources[entry.SourceKey]; !seen {
			h.allSources[entry.SourceKey] = entry
		}
	}
}

// AddIbid records an explicit ibid note. The previous pointer still
// advances so a chained ibid keeps its referent, but the entry carries no
// source key: an ibid is a back-reference, not a fresh occurrence of the
// work, so the note after it must not read as same-as-previous.
func (h *CitationHistory) AddIbid(m *model.CitationMetadata, formatted string) {
	h.counter++
	h.previous = &Entry{
		Metadata:   m,
		Formatted:  formatted,
		NoteNumber: h.counter,
	}
}

// IsSameAsPrevious reports whether m denotes the same work as the most
// recently added citation. The comparison uses the key stored when the
// previous entry was added; a keyless entry matches nothing.
func (h *CitationHistory) IsSameAsPrevious(m *model.CitationMetadata) bool {
	if h.previous == nil || h.previous.SourceKey == "" {
		return false
	}
	return model.SourceKey(m) == h.previous.SourceKey
}

// HasBeenCitedBefore reports whether m's source appeared anywhere earlier in
// the run, whether or not it is the previous one.
func (h *CitationHistory) HasBeenCitedBefore(m *model.CitationMetadata) bool {
	key := model.SourceKey(m)
	if key == "" {
		return false
	}
	_, seen := h.allSources[key]
	return seen
}

// PreviousMetadata returns the metadata of the last added citation, or nil.
func (h *CitationHistory) PreviousMetadata() *model.CitationMetadata {
	if h.previous == nil {
		return nil
	}
	return h.previous.Metadata
}

// PreviousURL returns the URL of the last added citation, or "".
func (h *CitationHistory) PreviousURL() string {
	if h.previous == nil || h.previous.Metadata == nil {
		return ""
	}
	return h.previous.Metadata.URL
}
