package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citeflex/citeflex/internal/core/model"
	"github.com/citeflex/citeflex/internal/providers"
)

type fakeOracle struct {
	citationType model.CitationType
	meta         *model.CitationMetadata
	err          error
	calls        int
}

func (f *fakeOracle) Classify(ctx context.Context, text string) (model.CitationType, *model.CitationMetadata, error) {
	f.calls++
	return f.citationType, f.meta, f.err
}

func bookMeta(title, author string) *model.CitationMetadata {
	return &model.CitationMetadata{Type: model.TypeBook, Title: title, Authors: []string{author}}
}

func TestResolve_CachesResults(t *testing.T) {
	books := &fakeEngine{name: "books", meta: bookMeta("Mind Games", "Eric Caplan")}
	r := New(Engines{GoogleBooks: books}, nil)

	meta, formatted := r.Resolve(context.Background(), "caplan mind games press, 1998", "")
	assert.NotNil(t, meta)
	assert.NotEmpty(t, formatted)
	firstCalls := books.calls.Load()

	meta2, formatted2 := r.Resolve(context.Background(), "caplan mind games press, 1998", "")
	assert.Equal(t, meta, meta2)
	assert.Equal(t, formatted, formatted2)
	assert.Equal(t, firstCalls, books.calls.Load(), "second resolve should come from cache")
}

func TestResolve_EmptyQuery(t *testing.T) {
	r := New(Engines{}, nil)
	meta, formatted := r.Resolve(context.Background(), "   ", "")
	assert.Nil(t, meta)
	assert.Equal(t, "", formatted)
}

func TestResolve_TotalFailureReturnsNil(t *testing.T) {
	r := New(Engines{}, nil)
	meta, formatted := r.Resolve(context.Background(), "nothing resolvable here", "")
	assert.Nil(t, meta)
	assert.Equal(t, "", formatted)
}

func TestResolve_LandmarkLegalFastPath(t *testing.T) {
	// The landmark table answers without any network call, so a legal
	// engine with no reachable backend still resolves famous cases.
	r := New(Engines{Legal: providers.NewCourtListener("http://127.0.0.1:1", "", nil)}, nil)

	meta, formatted := r.Resolve(context.Background(), "Roe v. Wade", "")
	assert.NotNil(t, meta)
	assert.Equal(t, model.TypeLegal, meta.Type)
	assert.Equal(t, "Roe v. Wade", meta.CaseName)
	assert.Contains(t, formatted, "410 U.S. 113")
}

func TestRouteUnknown_BookThenJournalOrder(t *testing.T) {
	// Book engines produce nothing; the journal bucket should be tried
	// next and its result accepted.
	books := &fakeEngine{name: "books"}
	semantic := &fakeEngine{name: "semantic", meta: &model.CitationMetadata{
		Type: model.TypeJournal, Title: "On Widgets", DOI: "10.1000/xyz",
	}}
	r := New(Engines{GoogleBooks: books, Semantic: semantic}, nil)

	meta := r.routeUnknown(context.Background(), "ambiguous text here", true)
	assert.NotNil(t, meta)
	assert.Equal(t, "On Widgets", meta.Title)
	assert.GreaterOrEqual(t, books.calls.Load(), int32(1), "book engines should be consulted first")
}

func TestRouteUnknown_OracleRedirects(t *testing.T) {
	books := &fakeEngine{name: "books", meta: bookMeta("Mind Games", "Eric Caplan")}
	oracle := &fakeOracle{citationType: model.TypeBook}
	r := New(Engines{GoogleBooks: books}, oracle)

	meta := r.routeUnknown(context.Background(), "eric caplan mind games", true)
	assert.NotNil(t, meta)
	assert.Equal(t, "Mind Games", meta.Title)
	assert.Equal(t, 1, oracle.calls)
}

func TestRouteUnknown_OracleGuessUsedWhenDispatchFails(t *testing.T) {
	guess := bookMeta("Guessed Title", "Someone")
	oracle := &fakeOracle{citationType: model.TypeBook, meta: guess}
	r := New(Engines{}, oracle)

	meta := r.routeUnknown(context.Background(), "ambiguous", true)
	assert.Same(t, guess, meta)
}

func TestRouteUnknown_OracleConsultedOnlyOnce(t *testing.T) {
	// An oracle that keeps answering "unknown" must not recurse.
	oracle := &fakeOracle{citationType: model.TypeUnknown}
	r := New(Engines{}, oracle)

	meta := r.routeUnknown(context.Background(), "ambiguous", true)
	assert.Nil(t, meta)
	assert.Equal(t, 1, oracle.calls)
}

func TestSemanticFallback_StripsNoiseWords(t *testing.T) {
	assert.Equal(t, "Widgets Machines", stripNoiseWords("the Widgets and for Machines", 5))
	assert.Equal(t, "Alpha Beta", stripNoiseWords("Alpha Beta Gamma Delta", 2))
	assert.Equal(t, "", stripNoiseWords("the and for it", 5))
}
