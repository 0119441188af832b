// Package docx reads and rewrites the note parts of Word documents. A
// .docx file is a zip archive of XML parts; this package unpacks it,
// edits word/endnotes.xml and word/footnotes.xml in place, and repacks
// the archive with everything else untouched.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/citeflex/citeflex/internal/core/model"
)

const (
	endnotesPart  = "word/endnotes.xml"
	footnotesPart = "word/footnotes.xml"
)

var italicSpan = regexp.MustCompile(`<i>(.*?)</i>`)

// Document is an unpacked .docx archive. Close removes the working
// directory; callers must always Close, even after errors.
type Document struct {
	tempDir string
}

// Open unpacks a .docx archive from raw bytes.
func Open(data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("not a valid docx archive: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "citeflex-docx-"+uuid.NewString()[:8])
	if err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	doc := &Document{tempDir: tempDir}
	if err := doc.extract(reader); err != nil {
		doc.Close()
		return nil, err
	}
	return doc, nil
}

// OpenFile unpacks a .docx archive from disk.
func OpenFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Open(data)
}

func (d *Document) extract(reader *zip.Reader) error {
	for _, file := range reader.File {
		target, err := sanitizePath(d.tempDir, file.Name)
		if err != nil {
			return err
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open archive entry %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return fmt.Errorf("failed to read archive entry %s: %w", file.Name, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// sanitizePath rejects zip entries that would escape the working directory.
func sanitizePath(base, name string) (string, error) {
	target := filepath.Join(base, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(base)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes working directory: %s", name)
	}
	return target, nil
}

// Endnotes returns the document's endnotes, skipping the separator and
// continuation notes Word stores under ids below 1, and any empty notes.
func (d *Document) Endnotes() []model.Note {
	return d.readNotes(endnotesPart, "w:endnote", model.Endnote)
}

// Footnotes returns the document's footnotes under the same rules.
func (d *Document) Footnotes() []model.Note {
	return d.readNotes(footnotesPart, "w:footnote", model.Footnote)
}

func (d *Document) readNotes(part, tag string, kind model.NoteKind) []model.Note {
	path := filepath.Join(d.tempDir, filepath.FromSlash(part))
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		log.Printf("[Docx] Error reading %s: %v", part, err)
		return nil
	}

	var notes []model.Note
	for _, note := range doc.FindElements("//" + tag) {
		id, err := strconv.Atoi(note.SelectAttrValue("w:id", ""))
		if err != nil || id < 1 {
			continue
		}

		var text strings.Builder
		for _, t := range note.FindElements(".//w:t") {
			text.WriteString(t.Text())
		}
		full := strings.TrimSpace(text.String())
		if full == "" {
			continue
		}
		notes = append(notes, model.Note{ID: id, Text: full, Kind: kind})
	}
	return notes
}

// WriteNote replaces a note's content with new text, keeping the note's
// paragraph properties and its reference mark so Word numbering still
// links up. Content may carry <i>...</i> spans for italics. Returns false
// when the note id is not present.
func (d *Document) WriteNote(kind model.NoteKind, noteID int, content string) bool {
	part, tag, refTag, refStyle := endnotesPart, "w:endnote", "w:endnoteRef", "EndnoteReference"
	if kind == model.Footnote {
		part, tag, refTag, refStyle = footnotesPart, "w:footnote", "w:footnoteRef", "FootnoteReference"
	}

	path := filepath.Join(d.tempDir, filepath.FromSlash(part))
	if _, err := os.Stat(path); err != nil {
		return false
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		log.Printf("[Docx] Error parsing %s: %v", part, err)
		return false
	}

	var target *etree.Element
	for _, note := range doc.FindElements("//" + tag) {
		if note.SelectAttrValue("w:id", "") == strconv.Itoa(noteID) {
			target = note
			break
		}
	}
	if target == nil {
		return false
	}

	para := target.FindElement(".//w:p")
	if para == nil {
		para = target.CreateElement("w:p")
	} else {
		clearParagraph(para, refTag, refStyle)
	}

	appendContentRuns(para, content)

	if err := doc.WriteToFile(path); err != nil {
		log.Printf("[Docx] Error writing %s: %v", part, err)
		return false
	}
	return true
}

// clearParagraph strips a note paragraph down to its properties and its
// reference-mark run, synthesizing the reference run when the original
// lacked one.
func clearParagraph(para *etree.Element, refTag, refStyle string) {
	var pPr *etree.Element
	var refRun *etree.Element

	for _, child := range para.ChildElements() {
		switch child.FullTag() {
		case "w:pPr":
			pPr = child
			continue
		case "w:r":
			if child.FindElement(".//"+refTag) != nil && refRun == nil {
				refRun = child
				continue
			}
		}
		para.RemoveChild(child)
	}

	if refRun == nil {
		refRun = etree.NewElement("w:r")
		rPr := refRun.CreateElement("w:rPr")
		rStyle := rPr.CreateElement("w:rStyle")
		rStyle.CreateAttr("w:val", refStyle)
		refRun.CreateElement(refTag)

		idx := 0
		if pPr != nil {
			idx = pPr.Index() + 1
		}
		para.InsertChildAt(idx, refRun)
	}
}

// appendContentRuns splits content on <i> spans and appends one run per
// segment, italic or plain.
func appendContentRuns(para *etree.Element, content string) {
	unescaped := html.UnescapeString(content)

	pos := 0
	for _, span := range italicSpan.FindAllStringSubmatchIndex(unescaped, -1) {
		if span[0] > pos {
			appendTextRun(para, unescaped[pos:span[0]], false)
		}
		appendTextRun(para, unescaped[span[2]:span[3]], true)
		pos = span[1]
	}
	if pos < len(unescaped) {
		appendTextRun(para, unescaped[pos:], false)
	}
}

func appendTextRun(para *etree.Element, text string, italic bool) {
	if text == "" {
		return
	}
	run := para.CreateElement("w:r")
	if italic {
		rPr := run.CreateElement("w:rPr")
		rPr.CreateElement("w:i")
	}
	t := run.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(text)
}

// Bytes repacks the working directory into a .docx archive.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.SaveTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveTo repacks the working directory and writes the archive to w.
func (d *Document) SaveTo(w io.Writer) error {
	archive := zip.NewWriter(w)

	err := filepath.Walk(d.tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(d.tempDir, path)
		if err != nil {
			return err
		}
		entry, err := archive.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, err = entry.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to repack document: %w", err)
	}
	return archive.Close()
}

// Close removes the working directory.
func (d *Document) Close() error {
	if d.tempDir == "" {
		return nil
	}
	err := os.RemoveAll(d.tempDir)
	d.tempDir = ""
	return err
}
