package docx

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// linkTargets are the XML parts scanned for bare URLs.
var linkTargets = []string{
	"word/document.xml",
	endnotesPart,
	footnotesPart,
}

// urlInText matches a URL inside a w:t element, capturing the element
// open tag, surrounding text, and close tag separately.
var urlInText = regexp.MustCompile(`(<w:t[^>]*>)([^<]*?)(https?://[^\s<>"]+)([^<]*?)(</w:t>)`)

const urlTrailingPunct = `.,;:)]'"`

// ActivateLinks rewrites every bare URL in the document body and notes
// into a Word HYPERLINK field with blue underlined display text. It works
// on the flat XML text with regular expressions rather than on a parsed
// tree, so its inside-a-hyperlink detection is a bounded lookbehind
// heuristic; deeply nested or malformed markup can slip past it. A part
// that fails to process is left unchanged.
func (d *Document) ActivateLinks() {
	for _, part := range linkTargets {
		path := filepath.Join(d.tempDir, filepath.FromSlash(part))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := activateLinksInFile(path); err != nil {
			log.Printf("[LinkActivator] Error processing %s: %v", part, err)
		}
	}
}

func activateLinksInFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	content := string(raw)

	matches := urlInText.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(content) + 512*len(matches))
	pos := 0

	for _, m := range matches {
		out.WriteString(content[pos:m[0]])
		out.WriteString(rewriteURLMatch(content, m))
		pos = m[1]
	}
	out.WriteString(content[pos:])

	return os.WriteFile(path, []byte(out.String()), 0o644)
}

// rewriteURLMatch converts one matched w:t element into a run split
// around a HYPERLINK field, or returns it untouched when the URL already
// sits inside a hyperlink.
func rewriteURLMatch(content string, m []int) string {
	whole := content[m[0]:m[1]]
	tOpen := content[m[2]:m[3]]
	textBefore := content[m[4]:m[5]]
	url := content[m[6]:m[7]]
	textAfter := content[m[8]:m[9]]
	tClose := content[m[10]:m[11]]

	if insideHyperlink(content, m[0]) {
		return whole
	}

	// The matched text is raw XML, so the URL is already entity-escaped
	// and can be spliced back verbatim.
	cleanURL := strings.TrimRight(url, urlTrailingPunct)
	trailing := url[len(cleanURL):]

	var out strings.Builder
	if textBefore != "" {
		out.WriteString(tOpen + textBefore + tClose + "</w:r>")
	} else {
		out.WriteString("</w:r>")
	}

	out.WriteString(hyperlinkField(cleanURL))

	if afterText := trailing + textAfter; afterText != "" {
		out.WriteString("<w:r>" + tOpen + afterText + tClose)
	} else {
		out.WriteString("<w:r>")
	}
	return out.String()
}

// insideHyperlink checks a bounded window of preceding markup for an
// unclosed w:hyperlink element or a nearby HYPERLINK field instruction.
func insideHyperlink(content string, pos int) bool {
	start := pos - 500
	if start < 0 {
		start = 0
	}
	window := content[start:pos]

	fieldStart := len(window) - 200
	if fieldStart < 0 {
		fieldStart = 0
	}
	if strings.Contains(window[fieldStart:], "HYPERLINK") {
		return true
	}

	opens := strings.Count(window, "<w:hyperlink")
	closes := strings.Count(window, "</w:hyperlink>")
	return opens > closes
}

// hyperlinkField builds the begin/instruction/separate/display/end run
// sequence Word uses for field-based hyperlinks. url must already be
// entity-escaped XML text.
func hyperlinkField(url string) string {
	return `<w:r><w:fldChar w:fldCharType="begin"/></w:r>` +
		fmt.Sprintf(`<w:r><w:instrText xml:space="preserve"> HYPERLINK "%s" </w:instrText></w:r>`, url) +
		`<w:r><w:fldChar w:fldCharType="separate"/></w:r>` +
		fmt.Sprintf(`<w:r><w:rPr><w:color w:val="0000FF"/><w:u w:val="single"/></w:rPr><w:t>%s</w:t></w:r>`, url) +
		`<w:r><w:fldChar w:fldCharType="end"/></w:r>`
}
