package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citeflex/citeflex/internal/core/model"
)

const crossrefSearchBody = `{
  "message": {
    "items": [
      {"type": "journal-article", "author": [{"given": "Only", "family": ""}]},
      {
        "type": "journal-article",
        "title": ["Freud and the Americans"],
        "container-title": ["Journal of the History of Medicine"],
        "author": [{"given": "Nathan", "family": "Hale"}, {"family": "Burnham"}],
        "issued": {"date-parts": [[1995, 4]]},
        "volume": "50",
        "issue": "2",
        "page": "199-214",
        "DOI": "10.1093/jhmas/50.2.199",
        "URL": "https://doi.org/10.1093/jhmas/50.2.199"
      }
    ]
  }
}`

func TestCrossrefSearch_MapsFirstUsableWork(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/works", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(crossrefSearchBody))
	}))
	defer server.Close()

	engine := NewCrossref(server.URL, server.Client())
	meta, err := engine.Search(context.Background(), "hale freud americans")
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "hale freud americans", gotQuery)
	assert.Equal(t, model.TypeJournal, meta.Type)
	assert.Equal(t, "Freud and the Americans", meta.Title)
	assert.Equal(t, "Journal of the History of Medicine", meta.Journal)
	assert.Equal(t, []string{"Nathan Hale", "Burnham"}, meta.Authors)
	assert.Equal(t, "1995", meta.Year)
	assert.Equal(t, "50", meta.Volume)
	assert.Equal(t, "2", meta.Issue)
	assert.Equal(t, "199-214", meta.Pages)
	assert.Equal(t, "10.1093/jhmas/50.2.199", meta.DOI)
	assert.Equal(t, "Crossref", meta.SourceEngine)
}

func TestCrossrefSearch_NoUsableWork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message": {"items": []}}`))
	}))
	defer server.Close()

	engine := NewCrossref(server.URL, server.Client())
	meta, err := engine.Search(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestCrossrefSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	engine := NewCrossref(server.URL, server.Client())
	_, err := engine.Search(context.Background(), "anything")
	assert.Error(t, err)
}

func TestCrossrefGetByDOI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/works/10.1000/xyz", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": {"type": "book", "title": ["Mind Games"], "publisher": "University of California Press", "issued": {"date-parts": [[1998]]}, "DOI": "10.1000/xyz"}}`))
	}))
	defer server.Close()

	engine := NewCrossref(server.URL, server.Client())
	meta, err := engine.GetByDOI(context.Background(), "https://doi.org/10.1000/XYZ")
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, model.TypeBook, meta.Type)
	assert.Equal(t, "Mind Games", meta.Title)
	assert.Equal(t, "Berkeley", meta.Place)
	assert.Equal(t, "1998", meta.Year)
}

func TestCrossrefGetByDOI_EmptyDOI(t *testing.T) {
	engine := NewCrossref("http://127.0.0.1:1", nil)
	meta, err := engine.GetByDOI(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, meta)
}
