// Package providers holds the external lookup collaborators: each client is
// a pure function of query to metadata (or nothing), independently
// constructed and injected into the router. There are no package-level
// client singletons.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/citeflex/citeflex/internal/core/model"
)

// UserAgent identifies us to the public APIs, several of which (Crossref in
// particular) ask for a contactable agent string.
const UserAgent = "citeflex/1.0 (mailto:contact@citeflex.com)"

// DefaultTimeout bounds a single provider HTTP call. The router applies its
// own per-call and fan-out deadlines on top via context.
const DefaultTimeout = 10 * time.Second

// Engine is a searchable metadata provider. Search returns (nil, nil) when
// the provider has no match; errors are for transport or decode failures and
// are absorbed by the router.
type Engine interface {
	Name() string
	Search(ctx context.Context, query string) (*model.CitationMetadata, error)
}

// NewHTTPClient returns the http.Client providers share by default.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// getJSON performs a GET with the standard user agent and decodes the JSON
// body into out. Non-2xx statuses are returned as errors.
func getJSON(ctx context.Context, client *http.Client, rawURL string, params url.Values, out any) error {
	if params != nil {
		rawURL = rawURL + "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return errStatus(resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeJSON(r io.Reader, out any) error {
	return json.NewDecoder(r).Decode(out)
}

func errStatus(code int) error {
	return fmt.Errorf("unexpected status %d", code)
}
