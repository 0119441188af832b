// Package core drives a document processing run: it walks every note in
// order, decides the citation form each should take, resolves metadata
// through the router, and writes the decided text back into the document.
package core

import (
	"context"
	"log"
	"strings"

	"github.com/citeflex/citeflex/internal/core/history"
	"github.com/citeflex/citeflex/internal/core/model"
	"github.com/citeflex/citeflex/internal/core/style"
	"github.com/citeflex/citeflex/internal/docx"
)

// Resolver turns a free-text query into metadata plus its styled full
// citation. A failed lookup returns (nil, "").
type Resolver interface {
	Resolve(ctx context.Context, query, styleName string) (*model.CitationMetadata, string)
}

// ProcessOptions configures one document run.
type ProcessOptions struct {
	Style    string
	AddLinks bool
}

// Processor runs citation rewriting over whole documents.
type Processor struct {
	resolver Resolver
}

func NewProcessor(resolver Resolver) *Processor {
	return &Processor{resolver: resolver}
}

// ProcessDocument rewrites every endnote and footnote in a .docx file.
// Notes are handled strictly in document order because ibid decisions
// depend on the immediately preceding citation. It returns the rewritten
// document and one ProcessedCitation per note; only a malformed archive
// is a fatal error.
func (p *Processor) ProcessDocument(ctx context.Context, fileBytes []byte, opts ProcessOptions) ([]byte, []model.ProcessedCitation, error) {
	if opts.Style == "" {
		opts.Style = style.ChicagoName
	}

	doc, err := docx.Open(fileBytes)
	if err != nil {
		return nil, nil, err
	}
	defer doc.Close()

	hist := history.New()
	formatter := style.Get(opts.Style)

	endnotes := doc.Endnotes()
	footnotes := doc.Footnotes()
	log.Printf("[Processor] Processing %d endnotes, %d footnotes", len(endnotes), len(footnotes))

	results := make([]model.ProcessedCitation, 0, len(endnotes)+len(footnotes))
	for _, note := range endnotes {
		results = append(results, p.processNote(ctx, doc, hist, formatter, opts.Style, note))
	}
	for _, note := range footnotes {
		results = append(results, p.processNote(ctx, doc, hist, formatter, opts.Style, note))
	}

	if opts.AddLinks {
		doc.ActivateLinks()
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, nil, err
	}
	return data, results, nil
}

func (p *Processor) processNote(ctx context.Context, doc *docx.Document, hist *history.CitationHistory, formatter style.Formatter, styleName string, note model.Note) model.ProcessedCitation {
	original := note.Text

	// Explicit ibid markers never hit the resolver; they borrow the
	// previous citation wholesale.
	if IsIbid(original) {
		prev := hist.PreviousMetadata()
		if prev == nil {
			log.Printf("[Processor] ibid in note %d but no previous citation", note.ID)
			return model.ProcessedCitation{
				Original:  original,
				Formatted: original,
				Success:   false,
				Error:     "ibid reference but no previous citation found",
				Form:      model.FormIbid,
			}
		}

		formatted := style.FormatIbid(ExtractIbidPage(original))
		hist.AddIbid(prev, formatted)
		return p.writeResult(doc, note, model.ProcessedCitation{
			Original:  original,
			Formatted: formatted,
			Metadata:  prev,
			URL:       hist.PreviousURL(),
			Success:   true,
			Form:      model.FormIbid,
		})
	}

	meta, fullFormatted := p.resolver.Resolve(ctx, original, styleName)
	if meta == nil || fullFormatted == "" {
		return model.ProcessedCitation{
			Original:  original,
			Formatted: original,
			Success:   false,
			Error:     "No metadata found",
			Form:      model.FormFull,
		}
	}

	currentURL := meta.URL
	if currentURL == "" && strings.HasPrefix(strings.TrimSpace(original), "http") {
		currentURL = strings.TrimSpace(original)
	}

	form := model.FormFull
	formatted := fullFormatted
	switch {
	case model.URLsMatch(currentURL, hist.PreviousURL()):
		form = model.FormIbid
		formatted = style.FormatIbid("")
	case hist.IsSameAsPrevious(meta):
		form = model.FormIbid
		formatted = style.FormatIbid("")
	case hist.HasBeenCitedBefore(meta):
		form = model.FormShort
		formatted = formatter.FormatShort(meta)
	}

	// History always records the full form so later short-form lookups
	// resolve against the canonical citation, not a contracted one.
	hist.Add(meta, fullFormatted)

	return p.writeResult(doc, note, model.ProcessedCitation{
		Original:  original,
		Formatted: formatted,
		Metadata:  meta,
		URL:       currentURL,
		Success:   true,
		Form:      form,
	})
}

// writeResult pushes a decided citation into the document. A note id that
// has vanished from the part marks the citation as unprocessed.
func (p *Processor) writeResult(doc *docx.Document, note model.Note, result model.ProcessedCitation) model.ProcessedCitation {
	if !doc.WriteNote(note.Kind, note.ID, result.Formatted) {
		log.Printf("[Processor] Failed to write note %d", note.ID)
		result.Success = false
		result.Error = "note not found during write-back"
		result.Formatted = result.Original
	}
	return result
}
