package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citeflex/citeflex/internal/core/model"
)

func TestIsLegalCitation(t *testing.T) {
	assert.True(t, IsLegalCitation("Smith v. Jones, 123 F.3d 456 (9th Cir. 1997)"))
	assert.True(t, IsLegalCitation("Tarasoff v. Regents"))
	assert.True(t, IsLegalCitation("roe v wade")) // lowercase, only via the landmark table
	assert.False(t, IsLegalCitation("a book about verdicts"))
	assert.False(t, IsLegalCitation("https://example.org/v/page"))
}

func TestLookupLandmark(t *testing.T) {
	c, ok := LookupLandmark("Roe v. Wade")
	require.True(t, ok)
	assert.Equal(t, "410 U.S. 113", c.Citation)
	assert.Equal(t, "1973", c.Year)

	// Period-less "v" and trailing periods are tolerated.
	c, ok = LookupLandmark("  Brown v Board of Education.  ")
	require.True(t, ok)
	assert.Equal(t, "347 U.S. 483", c.Citation)

	_, ok = LookupLandmark("Smith v. Jones")
	assert.False(t, ok)
}

func TestLandmarkMetadata(t *testing.T) {
	c, ok := LookupLandmark("miranda v. arizona")
	require.True(t, ok)

	meta := c.Metadata("miranda v. arizona")
	assert.Equal(t, model.TypeLegal, meta.Type)
	assert.Equal(t, "Miranda v. Arizona", meta.CaseName)
	assert.Equal(t, "384 U.S. 436", meta.Citation)
	assert.Equal(t, "1966", meta.Year)
	assert.Equal(t, "Landmark Cases", meta.SourceEngine)
	assert.True(t, meta.HasMinimumData())
}
