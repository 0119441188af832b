package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// OpenLibrary resolves books, preferring exact ISBN lookup when the query
// carries one and falling back to title search.
type OpenLibrary struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibrary(baseURL string, client *http.Client) *OpenLibrary {
	if baseURL == "" {
		baseURL = "https://openlibrary.org"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &OpenLibrary{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (o *OpenLibrary) Name() string { return "Open Library" }

type openLibrarySearchResponse struct {
	Docs []struct {
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		Publisher        []string `json:"publisher"`
		ISBN             []string `json:"isbn"`
	} `json:"docs"`
}

func (o *OpenLibrary) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	if isbn := ExtractISBN(query); isbn != "" {
		if meta, err := o.getByISBN(ctx, isbn, query); err == nil && meta != nil {
			return meta, nil
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "3")

	var out openLibrarySearchResponse
	if err := getJSON(ctx, o.client, o.baseURL+"/search.json", params, &out); err != nil {
		return nil, err
	}
	for _, doc := range out.Docs {
		if doc.Title == "" || len(doc.AuthorName) == 0 {
			continue
		}
		meta := &model.CitationMetadata{
			Type:         model.TypeBook,
			RawSource:    query,
			SourceEngine: "Open Library",
			Title:        doc.Title,
			Authors:      doc.AuthorName,
			Confidence:   0.7,
		}
		if doc.FirstPublishYear > 0 {
			meta.Year = fmt.Sprintf("%d", doc.FirstPublishYear)
		}
		if len(doc.Publisher) > 0 {
			meta.Publisher = doc.Publisher[0]
			meta.Place = PublisherPlace(doc.Publisher[0])
		}
		if len(doc.ISBN) > 0 {
			meta.ISBN = doc.ISBN[0]
		}
		return meta, nil
	}
	return nil, nil
}

type openLibraryEdition struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate string `json:"publish_date"`
}

func (o *OpenLibrary) getByISBN(ctx context.Context, isbn, rawSource string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("bibkeys", "ISBN:"+isbn)
	params.Set("format", "json")
	params.Set("jscmd", "data")

	out := map[string]openLibraryEdition{}
	if err := getJSON(ctx, o.client, o.baseURL+"/api/books", params, &out); err != nil {
		return nil, err
	}
	edition, ok := out["ISBN:"+isbn]
	if !ok || edition.Title == "" {
		return nil, nil
	}

	meta := &model.CitationMetadata{
		Type:         model.TypeBook,
		RawSource:    rawSource,
		SourceEngine: "Open Library",
		Title:        edition.Title,
		ISBN:         isbn,
		Confidence:   0.9,
	}
	for _, a := range edition.Authors {
		meta.Authors = append(meta.Authors, a.Name)
	}
	if len(edition.Publishers) > 0 {
		meta.Publisher = edition.Publishers[0].Name
		meta.Place = PublisherPlace(meta.Publisher)
	}
	if y := yearFrom(edition.PublishDate); y != "" {
		meta.Year = y
	}
	return meta, nil
}

// yearFrom pulls a four-digit year out of a free-form publish date.
func yearFrom(date string) string {
	for i := 0; i+4 <= len(date); i++ {
		if isYear(date[i : i+4]) {
			return date[i : i+4]
		}
	}
	return ""
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s[0] == '1' || s[0] == '2'
}
