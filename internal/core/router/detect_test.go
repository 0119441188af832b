package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citeflex/citeflex/internal/core/model"
)

func TestDetect(t *testing.T) {
	cases := []struct {
		query string
		want  model.CitationType
	}{
		{"https://example.com/some/page", model.TypeURL},
		{"www.example.com/page", model.TypeURL},
		{"Brown v. Board of Education", model.TypeLegal},
		{"Miranda v. Arizona, 384 U.S. 436 (1966)", model.TypeLegal},
		{"Interview with Jane Doe, March 2020", model.TypeInterview},
		{"Randomized clinical trial of widget therapy in patients", model.TypeMedical},
		{"PMID: 12345678", model.TypeMedical},
		{"Department of Justice annual report 2019", model.TypeGovernment},
		{"Climate coverage, New York Times, June 2021", model.TypeNewspaper},
		{"Doe, On Widgets, Journal of Examples, vol. 12", model.TypeJournal},
		{"Smith, Article Title, 10.1000/xyz123", model.TypeJournal},
		{"Caplan, Mind Games, University of California Press, 1998", model.TypeBook},
		{"ISBN 978-0-520-21177-7 Mind Games", model.TypeBook},
		{"something entirely ambiguous", model.TypeUnknown},
	}

	for _, tc := range cases {
		det := Detect(tc.query)
		assert.Equal(t, tc.want, det.Type, "query %q", tc.query)
	}
}

func TestURLDomainChecks(t *testing.T) {
	assert.True(t, IsMedicalURL("https://pubmed.ncbi.nlm.nih.gov/12345678/"))
	assert.True(t, IsMedicalURL("https://medlineplus.gov/anatomy.html"))

	// Medical .gov pages are not government pages.
	assert.False(t, IsGovernmentURL("https://pubmed.ncbi.nlm.nih.gov/12345678/"))
	assert.True(t, IsGovernmentURL("https://www.justice.gov/report"))

	assert.True(t, IsNewspaperURL("https://www.nytimes.com/2021/06/01/climate.html"))
	assert.False(t, IsNewspaperURL("https://example.com/article"))
}
