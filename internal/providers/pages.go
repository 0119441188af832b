package providers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/citeflex/citeflex/internal/core/model"
)

// PageExtractor fetches a web page and reads citation fields out of its
// markup (Open Graph tags first, then plain HTML). It serves the
// government, newspaper, and generic-URL buckets, which have no structured
// API behind them.
type PageExtractor struct {
	client *http.Client
}

func NewPageExtractor(client *http.Client) *PageExtractor {
	if client == nil {
		client = NewHTTPClient()
	}
	return &PageExtractor{client: client}
}

func (p *PageExtractor) Name() string { return "Page Extractor" }

// Search treats the query as a URL and extracts generic page metadata.
func (p *PageExtractor) Search(ctx context.Context, query string) (*model.CitationMetadata, error) {
	return p.Extract(ctx, query, model.TypeURL)
}

// Extract fetches pageURL and builds a metadata record tagged with the
// given citation type.
func (p *PageExtractor) Extract(ctx context.Context, pageURL string, citationType model.CitationType) (*model.CitationMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errStatus(resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}

	meta := &model.CitationMetadata{
		Type:         citationType,
		RawSource:    pageURL,
		SourceEngine: "Page Extractor",
		URL:          pageURL,
		Confidence:   0.6,
	}

	meta.Title = firstNonEmpty(
		metaContent(doc, `meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	if author := firstNonEmpty(
		metaContent(doc, `meta[name="author"]`),
		metaContent(doc, `meta[property="article:author"]`),
	); author != "" {
		meta.Authors = []string{author}
	}
	meta.Publisher = firstNonEmpty(
		metaContent(doc, `meta[property="og:site_name"]`),
		siteNameFromURL(pageURL),
	)
	if published := firstNonEmpty(
		metaContent(doc, `meta[property="article:published_time"]`),
		metaContent(doc, `meta[name="date"]`),
	); len(published) >= 4 && isYear(published[:4]) {
		meta.Year = published[:4]
	}

	if !meta.HasMinimumData() {
		return nil, nil
	}
	return meta, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

// siteNameFromURL falls back to the bare host when a page declares no site
// name of its own.
func siteNameFromURL(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
