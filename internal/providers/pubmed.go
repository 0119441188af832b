package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

// PubMed resolves medical literature through the NCBI E-utilities: esearch
// for PMIDs, esummary for the records themselves. Direct PMID lookup skips
// the search step.
type PubMed struct {
	baseURL string
	client  *http.Client
}

func NewPubMed(baseURL string, client *http.Client) *PubMed {
	if baseURL == "" {
		baseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"
	}
	if client == nil {
		client = NewHTTPClient()
	}
	return &PubMed{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (p *PubMed) Name() string { return "PubMed" }

type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

type pubmedSummary struct {
	Title           string `json:"title"`
	FullJournalName string `json:"fulljournalname"`
	Source          string `json:"source"`
	Volume          string `json:"volume"`
	Issue           string `json:"issue"`
	Pages           string `json:"pages"`
	PubDate         string `json:"pubdate"`
	Authors         []struct {
		Name string `json:"name"`
	} `json:"authors"`
	ArticleIDs []struct {
		IDType string `json:"idtype"`
		Value  string `json:"value"`
	} `json:"articleids"`
}

func (p *PubMed) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("term", query)
	params.Set("retmax", "3")
	params.Set("retmode", "json")

	var search pubmedSearchResponse
	if err := getJSON(ctx, p.client, p.baseURL+"/esearch.fcgi", params, &search); err != nil {
		return nil, err
	}
	for _, pmid := range search.ESearchResult.IDList {
		meta, err := p.GetByPMID(ctx, pmid)
		if err != nil {
			return nil, err
		}
		if meta != nil {
			meta.RawSource = query
			return meta, nil
		}
	}
	return nil, nil
}

// GetByPMID fetches one record by its PubMed identifier.
func (p *PubMed) GetByPMID(ctx context.Context, pmid string) (*model.CitationMetadata, error) {
	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("id", pmid)
	params.Set("retmode", "json")

	// esummary's result object is keyed by PMID alongside a "uids" list, so
	// decode the per-ID entries as raw JSON.
	var out struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := getJSON(ctx, p.client, p.baseURL+"/esummary.fcgi", params, &out); err != nil {
		return nil, err
	}
	raw, ok := out.Result[pmid]
	if !ok {
		return nil, nil
	}
	var summary pubmedSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, err
	}
	if summary.Title == "" {
		return nil, nil
	}

	meta := &model.CitationMetadata{
		Type:         model.TypeMedical,
		RawSource:    pmid,
		SourceEngine: "PubMed",
		Title:        strings.TrimRight(summary.Title, "."),
		Journal:      firstNonEmpty(summary.FullJournalName, summary.Source),
		Volume:       summary.Volume,
		Issue:        summary.Issue,
		Pages:        summary.Pages,
		PMID:         pmid,
		Confidence:   0.85,
	}
	for _, a := range summary.Authors {
		if a.Name != "" {
			meta.Authors = append(meta.Authors, a.Name)
		}
	}
	if len(summary.PubDate) >= 4 {
		meta.Year = summary.PubDate[:4]
	}
	for _, id := range summary.ArticleIDs {
		if id.IDType == "doi" {
			meta.DOI = id.Value
		}
	}
	return meta, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
