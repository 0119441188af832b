package docx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithText(text string) string {
	return `<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`
}

func activate(t *testing.T, noteText string) string {
	t.Helper()
	data := buildDocx(t, map[string]string{
		"word/endnotes.xml": endnotesXML(
			`<w:endnote w:id="1"><w:p>` + runWithText(noteText) + `</w:p></w:endnote>`,
		),
	})
	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	doc.ActivateLinks()
	return readPart(t, doc, endnotesPart)
}

func TestActivateLinks_ConvertsBareURL(t *testing.T) {
	raw := activate(t, "See https://example.org/paper for details.")

	assert.Contains(t, raw, `<w:fldChar w:fldCharType="begin"/>`)
	assert.Contains(t, raw, ` HYPERLINK "https://example.org/paper" `)
	assert.Contains(t, raw, `<w:fldChar w:fldCharType="separate"/>`)
	assert.Contains(t, raw, `<w:color w:val="0000FF"/>`)
	assert.Contains(t, raw, `<w:u w:val="single"/>`)
	assert.Contains(t, raw, `<w:fldChar w:fldCharType="end"/>`)

	// Surrounding text survives in its own runs.
	assert.Contains(t, raw, ">See <")
	assert.Contains(t, raw, "> for details.<")
}

func TestActivateLinks_TrimsTrailingPunctuation(t *testing.T) {
	raw := activate(t, "Source: https://example.org/a.")

	assert.Contains(t, raw, `HYPERLINK "https://example.org/a"`)
	// The trimmed period stays as visible text after the field.
	assert.Contains(t, raw, `>.<`)
	assert.NotContains(t, raw, `HYPERLINK "https://example.org/a."`)
}

func TestActivateLinks_Idempotent(t *testing.T) {
	data := buildDocx(t, map[string]string{
		"word/endnotes.xml": endnotesXML(
			`<w:endnote w:id="1"><w:p>` + runWithText("https://example.org/x") + `</w:p></w:endnote>`,
		),
	})
	doc, err := Open(data)
	require.NoError(t, err)
	defer doc.Close()

	doc.ActivateLinks()
	first := readPart(t, doc, endnotesPart)
	doc.ActivateLinks()
	second := readPart(t, doc, endnotesPart)

	assert.Equal(t, first, second)
}

func TestActivateLinks_SkipsExistingHyperlinkElements(t *testing.T) {
	content := `<w:hyperlink r:id="rId4"><w:r><w:t>https://example.org/linked</w:t></w:r></w:hyperlink>`
	m := urlInText.FindStringSubmatchIndex(content)
	require.NotNil(t, m)
	assert.Equal(t, content[m[0]:m[1]], rewriteURLMatch(content, m))
}

func TestInsideHyperlink(t *testing.T) {
	assert.False(t, insideHyperlink("<w:p><w:r><w:t>", 15))
	assert.True(t, insideHyperlink("<w:hyperlink r:id=\"rId1\"><w:r><w:t>", 35))
	assert.False(t, insideHyperlink("<w:hyperlink></w:hyperlink><w:r><w:t>", 37))
	assert.True(t, insideHyperlink(`<w:instrText> HYPERLINK "x" </w:instrText><w:t>`, 47))
}

func TestRewriteURLMatch_KeepsEntityEscapedURL(t *testing.T) {
	content := `<w:t>https://example.org/q?a=1&amp;b=2</w:t>`
	m := urlInText.FindStringSubmatchIndex(content)
	require.NotNil(t, m)
	out := rewriteURLMatch(content, m)
	assert.Contains(t, out, `HYPERLINK "https://example.org/q?a=1&amp;b=2"`)
}
