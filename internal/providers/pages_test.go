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

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Fallback Title | Example News</title>
  <meta property="og:title" content="Prison Conditions Under Review"/>
  <meta property="og:site_name" content="Example News"/>
  <meta name="author" content="Jane Roe"/>
  <meta property="article:published_time" content="2019-06-12T08:00:00Z"/>
</head>
<body><p>story text</p></body>
</html>`

func TestPageExtract_ReadsOpenGraphTags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer server.Close()

	extractor := NewPageExtractor(server.Client())
	meta, err := extractor.Extract(context.Background(), server.URL+"/story", model.TypeNewspaper)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, model.TypeNewspaper, meta.Type)
	assert.Equal(t, "Prison Conditions Under Review", meta.Title)
	assert.Equal(t, []string{"Jane Roe"}, meta.Authors)
	assert.Equal(t, "Example News", meta.Publisher)
	assert.Equal(t, "2019", meta.Year)
	assert.Equal(t, server.URL+"/story", meta.URL)
	assert.Equal(t, "Page Extractor", meta.SourceEngine)
}

func TestPageExtract_FallsBackToTitleAndHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>  Plain Page  </title></head><body></body></html>`))
	}))
	defer server.Close()

	extractor := NewPageExtractor(server.Client())
	meta, err := extractor.Extract(context.Background(), server.URL, model.TypeURL)
	require.NoError(t, err)
	require.NotNil(t, meta)

	assert.Equal(t, "Plain Page", meta.Title)
	// No og:site_name, so the publisher falls back to the host.
	assert.NotEmpty(t, meta.Publisher)
	assert.Empty(t, meta.Year)
}

func TestPageExtract_NoTitleIsNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head></head><body>bare</body></html>`))
	}))
	defer server.Close()

	extractor := NewPageExtractor(server.Client())
	meta, err := extractor.Extract(context.Background(), server.URL, model.TypeURL)
	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestPageExtract_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	extractor := NewPageExtractor(server.Client())
	_, err := extractor.Extract(context.Background(), server.URL, model.TypeURL)
	assert.Error(t, err)
}

func TestSiteNameFromURL(t *testing.T) {
	assert.Equal(t, "example.org", siteNameFromURL("https://www.example.org/path"))
	assert.Equal(t, "justice.gov", siteNameFromURL("https://justice.gov/report"))
	assert.Equal(t, "", siteNameFromURL("not a url"))
}
