package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// GoogleBooks performs fuzzy book search against the Google Books volumes
// API. Results that look like study-guide knockoffs of the real work are
// skipped.
type GoogleBooks struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooks(baseURL string, client *http.Client) *GoogleBooks {
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/books/v1"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &GoogleBooks{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *GoogleBooks) Name() string { return "Google Books" }

type googleBooksResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Subtitle            string   `json:"subtitle"`
			Authors             []string `json:"authors"`
			Publisher           string   `json:"publisher"`
			PublishedDate       string   `json:"publishedDate"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

var knockoffMarkers = []string{"summary of", "study guide", "analysis of", "workbook for"}

func (g *GoogleBooks) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", "5")
	params.Set("orderBy", "relevance")

	var out googleBooksResponse
	if err := getJSON(ctx, g.client, g.baseURL+"/volumes", params, &out); err != nil {
		return nil, err
	}

	for _, item := range out.Items {
		info := item.VolumeInfo
		if info.Title == "" || len(info.Authors) == 0 {
			continue
		}
		if isKnockoff(info.Title) {
			continue
		}

		title := info.Title
		if info.Subtitle != "" {
			title = title + ": " + info.Subtitle
		}
		meta := &model.CitationMetadata{
			Type:         model.TypeBook,
			RawSource:    query,
			SourceEngine: "Google Books",
			Title:        title,
			Authors:      info.Authors,
			Publisher:    info.Publisher,
			Place:        PublisherPlace(info.Publisher),
			Confidence:   0.75,
		}
		if len(info.PublishedDate) >= 4 {
			meta.Year = info.PublishedDate[:4]
		}
		for _, id := range info.IndustryIdentifiers {
			if id.Type == "ISBN_13" || (id.Type == "ISBN_10" && meta.ISBN == "") {
				meta.ISBN = id.Identifier
			}
		}
		return meta, nil
	}
	return nil, nil
}

func isKnockoff(title string) bool {
	folded := strings.ToLower(title)
	for _, marker := range knockoffMarkers {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}
