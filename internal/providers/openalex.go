package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// OpenAlex searches the OpenAlex works endpoint.
type OpenAlex struct {
	baseURL string
	client  *http.Client
}

func NewOpenAlex(baseURL string, client *http.Client) *OpenAlex {
	if baseURL == "" {
		baseURL = "https://api.openalex.org"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &OpenAlex{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (o *OpenAlex) Name() string { return "OpenAlex" }

type openAlexResponse struct {
	Results []struct {
		Title           string `json:"title"`
		PublicationYear int    `json:"publication_year"`
		DOI             string `json:"doi"`
		Authorships     []struct {
			Author struct {
				DisplayName string `json:"display_name"`
			} `json:"author"`
		} `json:"authorships"`
		PrimaryLocation *struct {
			Source *struct {
				DisplayName string `json:"display_name"`
			} `json:"source"`
		} `json:"primary_location"`
		Biblio struct {
			Volume    string `json:"volume"`
			Issue     string `json:"issue"`
			FirstPage string `json:"first_page"`
			LastPage  string `json:"last_page"`
		} `json:"biblio"`
	} `json:"results"`
}

func (o *OpenAlex) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("search", query)
	params.Set("per-page", "3")

	var out openAlexResponse
	if err := getJSON(ctx, o.client, o.baseURL+"/works", params, &out); err != nil {
		return nil, err
	}
	for _, r := range out.Results {
		if r.Title == "" {
			continue
		}
		meta := &model.CitationMetadata{
			Type:         model.TypeJournal,
			RawSource:    query,
			SourceEngine: "OpenAlex",
			Title:        r.Title,
			DOI:          model.NormalizeDOI(r.DOI),
			Volume:       r.Biblio.Volume,
			Issue:        r.Biblio.Issue,
			Confidence:   0.75,
		}
		for _, a := range r.Authorships {
			if a.Author.DisplayName != "" {
				meta.Authors = append(meta.Authors, a.Author.DisplayName)
			}
		}
		if r.PublicationYear > 0 {
			meta.Year = fmt.Sprintf("%d", r.PublicationYear)
		}
		if r.PrimaryLocation != nil && r.PrimaryLocation.Source != nil {
			meta.Journal = r.PrimaryLocation.Source.DisplayName
		}
		if r.Biblio.FirstPage != "" {
			meta.Pages = r.Biblio.FirstPage
			if r.Biblio.LastPage != "" && r.Biblio.LastPage != r.Biblio.FirstPage {
				meta.Pages += "-" + r.Biblio.LastPage
			}
		}
		return meta, nil
	}
	return nil, nil
}
