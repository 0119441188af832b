package docx

import (
	"fmt"

	"github.com/citeflex/citeflex/internal/core/model"
)

// UpdateNote rewrites a single note in a packed document and reactivates
// hyperlinks. The note is looked up in the endnotes part first, then the
// footnotes part. Content may carry <i>...</i> spans.
func UpdateNote(docBytes []byte, noteID int, content string) ([]byte, error) {
	doc, err := Open(docBytes)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	if !doc.WriteNote(model.Endnote, noteID, content) &&
		!doc.WriteNote(model.Footnote, noteID, content) {
		return nil, fmt.Errorf("note %d not found in document", noteID)
	}

	doc.ActivateLinks()
	return doc.Bytes()
}
