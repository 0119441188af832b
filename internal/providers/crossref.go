package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// Crossref searches the Crossref works API and supports direct DOI lookup.
type Crossref struct {
	baseURL string
	client  *http.Client
}

func NewCrossref(baseURL string, client *http.Client) *Crossref {
	if baseURL == "" {
		baseURL = "https://api.crossref.org"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &Crossref{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (c *Crossref) Name() string { return "Crossref" }

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefWork struct {
	Type           string           `json:"type"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Published      *crossrefDate    `json:"published"`
	Issued         *crossrefDate    `json:"issued"`
	Volume         string           `json:"volume"`
	Issue          string           `json:"issue"`
	Page           string           `json:"page"`
	DOI            string           `json:"DOI"`
	Publisher      string           `json:"publisher"`
	URL            string           `json:"URL"`
}

type crossrefSearchResponse struct {
	Message struct {
		Items []crossrefWork `json:"items"`
	} `json:"message"`
}

type crossrefWorkResponse struct {
	Message crossrefWork `json:"message"`
}

func (c *Crossref) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("rows", "3")

	var out crossrefSearchResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/works", params, &out); err != nil {
		return nil, err
	}
	for i := range out.Message.Items {
		if meta := c.toMetadata(&out.Message.Items[i], query); meta.HasMinimumData() {
			return meta, nil
		}
	}
	return nil, nil
}

// GetByDOI resolves a known DOI directly, bypassing search.
func (c *Crossref) GetByDOI(ctx context.Context, doi string) (*model.CitationMetadata, error) {
	doi = model.NormalizeDOI(doi)
	if doi == "" {
		return nil, nil
	}
	var out crossrefWorkResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/works/"+url.PathEscape(doi), nil, &out); err != nil {
		return nil, err
	}
	meta := c.toMetadata(&out.Message, doi)
	if !meta.HasMinimumData() {
		return nil, nil
	}
	return meta, nil
}

func (c *Crossref) toMetadata(w *crossrefWork, rawSource string) *model.CitationMetadata {
	meta := &model.CitationMetadata{
		Type:         model.TypeJournal,
		RawSource:    rawSource,
		SourceEngine: "Crossref",
		Volume:       w.Volume,
		Issue:        w.Issue,
		Pages:        w.Page,
		DOI:          w.DOI,
		Publisher:    w.Publisher,
		URL:          w.URL,
		Confidence:   0.8,
	}
	if w.Type == "book" || w.Type == "monograph" {
		meta.Type = model.TypeBook
		meta.Place = PublisherPlace(w.Publisher)
	}
	if len(w.Title) > 0 {
		meta.Title = w.Title[0]
	}
	if len(w.ContainerTitle) > 0 {
		meta.Journal = w.ContainerTitle[0]
	}
	for _, a := range w.Author {
		switch {
		case a.Given != "" && a.Family != "":
			meta.Authors = append(meta.Authors, a.Given+" "+a.Family)
		case a.Family != "":
			meta.Authors = append(meta.Authors, a.Family)
		}
	}
	if year := crossrefYear(w); year != 0 {
		meta.Year = fmt.Sprintf("%d", year)
	}
	return meta
}

func crossrefYear(w *crossrefWork) int {
	for _, d := range []*crossrefDate{w.Published, w.Issued} {
		if d != nil && len(d.DateParts) > 0 && len(d.DateParts[0]) > 0 {
			return d.DateParts[0][0]
		}
	}
	return 0
}
