package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceKey_PriorityOrder(t *testing.T) {
	// DOI beats everything else, even when URL and title are present.
	m := &CitationMetadata{
		Type:    TypeJournal,
		DOI:     "https://doi.org/10.1000/XYZ123",
		URL:     "https://example.com/article",
		Title:   "Some Title",
		Authors: []string{"Jane Doe"},
	}
	assert.Equal(t, "doi:10.1000/xyz123", SourceKey(m))

	m.DOI = ""
	assert.Equal(t, "url:https://example.com/article", SourceKey(m))

	m.URL = ""
	assert.Equal(t, "title:some title|author:jane doe", SourceKey(m))

	m.Authors = nil
	assert.Equal(t, "title:some title", SourceKey(m))
}

func TestSourceKey_Legal(t *testing.T) {
	m := &CitationMetadata{
		Type:     TypeLegal,
		CaseName: "Roe v. Wade",
		Citation: "410 U.S. 113",
	}
	assert.Equal(t, "legal:roe v. wade|410 u.s. 113", SourceKey(m))

	// Case name alone falls through to the case: key, behind title.
	m.Citation = ""
	assert.Equal(t, "case:roe v. wade", SourceKey(m))
}

func TestSourceKey_Empty(t *testing.T) {
	assert.Equal(t, "", SourceKey(nil))
	assert.Equal(t, "", SourceKey(&CitationMetadata{Type: TypeUnknown}))
}

func TestSourcesMatch(t *testing.T) {
	a := &CitationMetadata{DOI: "10.1000/abc"}
	b := &CitationMetadata{DOI: "doi:10.1000/ABC", Title: "Different Title"}
	assert.True(t, SourcesMatch(a, b))

	// Records with no derivable key never match, not even themselves.
	empty := &CitationMetadata{}
	assert.False(t, SourcesMatch(empty, empty))
	assert.False(t, SourcesMatch(a, nil))
}

func TestHasMinimumData(t *testing.T) {
	assert.False(t, (*CitationMetadata)(nil).HasMinimumData())
	assert.False(t, (&CitationMetadata{Type: TypeBook}).HasMinimumData())
	assert.True(t, (&CitationMetadata{Type: TypeBook, Title: "T"}).HasMinimumData())

	// Legal needs case name or citation, not title.
	assert.False(t, (&CitationMetadata{Type: TypeLegal, Title: "T"}).HasMinimumData())
	assert.True(t, (&CitationMetadata{Type: TypeLegal, CaseName: "A v. B"}).HasMinimumData())
	assert.True(t, (&CitationMetadata{Type: TypeLegal, Citation: "410 U.S. 113"}).HasMinimumData())
}

func TestParseCitationType(t *testing.T) {
	assert.Equal(t, TypeLegal, ParseCitationType("legal"))
	assert.Equal(t, TypeUnknown, ParseCitationType("unknown"))
	assert.Equal(t, TypeUnknown, ParseCitationType("poem"))
	assert.Equal(t, TypeUnknown, ParseCitationType(""))
}
