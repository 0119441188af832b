package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// CourtListener looks up case law through the CourtListener search API,
// after checking the landmark table so famous cases never hit the network.
type CourtListener struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewCourtListener(baseURL, token string, client *http.Client) *CourtListener {
	if baseURL == "" {
		baseURL = "https://www.courtlistener.com/api/rest/v4"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &CourtListener{baseURL: strings.TrimRight(baseURL, "/"), token: token, client: client}
}

func (c *CourtListener) Name() string { return "CourtListener" }

type courtListenerResponse struct {
	Results []struct {
		CaseName    string   `json:"caseName"`
		Citation    []string `json:"citation"`
		Court       string   `json:"court"`
		DateFiled   string   `json:"dateFiled"`
		AbsoluteURL string   `json:"absolute_url"`
	} `json:"results"`
}

func (c *CourtListener) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	if landmark, ok := LookupLandmark(query); ok {
		return landmark.Metadata(query), nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "o") // opinions

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errStatus(resp.StatusCode)
	}

	var out courtListenerResponse
	if err := decodeJSON(resp.Body, &out); err != nil {
		return nil, err
	}
	if len(out.Results) == 0 {
		return nil, nil
	}

	r := out.Results[0]
	meta := &model.CitationMetadata{
		Type:         model.TypeLegal,
		RawSource:    query,
		SourceEngine: "CourtListener",
		CaseName:     r.CaseName,
		Court:        r.Court,
		Jurisdiction: "US",
		Confidence:   0.85,
	}
	if len(r.Citation) > 0 {
		meta.Citation = r.Citation[0]
	}
	if len(r.DateFiled) >= 4 {
		meta.Year = r.DateFiled[:4]
	}
	if r.AbsoluteURL != "" {
		meta.URL = "https://www.courtlistener.com" + r.AbsoluteURL
	}
	if !meta.HasMinimumData() {
		return nil, nil
	}
	return meta, nil
}
