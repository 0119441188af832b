package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// SemanticScholar searches the Semantic Scholar graph API. It copes well
// with messy, fragmentary queries, which is why the router also uses it as
// the last-resort fallback.
type SemanticScholar struct {
	baseURL string
	client  *http.Client
}

func NewSemanticScholar(baseURL string, client *http.Client) *SemanticScholar {
	if baseURL == "" {
		baseURL = "https://api.semanticscholar.org/graph/v1"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &SemanticScholar{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (s *SemanticScholar) Name() string { return "Semantic Scholar" }

type semanticScholarResponse struct {
	Data []struct {
		Title   string `json:"title"`
		Year    int    `json:"year"`
		Venue   string `json:"venue"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		ExternalIDs struct {
			DOI    string `json:"DOI"`
			PubMed string `json:"PubMed"`
		} `json:"externalIds"`
	} `json:"data"`
}

func (s *SemanticScholar) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", "3")
	params.Set("fields", "title,year,venue,authors,externalIds")

	var out semanticScholarResponse
	if err := getJSON(ctx, s.client, s.baseURL+"/paper/search", params, &out); err != nil {
		return nil, err
	}
	for _, paper := range out.Data {
		if paper.Title == "" {
			continue
		}
		meta := &model.CitationMetadata{
			Type:         model.TypeJournal,
			RawSource:    query,
			SourceEngine: "Semantic Scholar",
			Title:        paper.Title,
			Journal:      paper.Venue,
			DOI:          paper.ExternalIDs.DOI,
			PMID:         paper.ExternalIDs.PubMed,
			Confidence:   0.7,
		}
		for _, a := range paper.Authors {
			if a.Name != "" {
				meta.Authors = append(meta.Authors, a.Name)
			}
		}
		if paper.Year > 0 {
			meta.Year = fmt.Sprintf("%d", paper.Year)
		}
		return meta, nil
	}
	return nil, nil
}
