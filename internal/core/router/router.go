// Package router resolves free-text citation queries into structured
// metadata. It buckets each query by type, dispatches to the matching
// provider engines (racing them where more than one applies), and caches
// formatted results. Resolution never returns an error: a query that no
// provider can satisfy yields a nil result.
package router

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/citeflex/citeflex/internal/core/model"
	"github.com/citeflex/citeflex/internal/core/style"
	"github.com/citeflex/citeflex/internal/providers"
)

// Oracle classifies free text that pattern detection could not bucket.
// Implementations may also return best-guess metadata fields.
type Oracle interface {
	Classify(ctx context.Context, text string) (model.CitationType, *model.CitationMetadata, error)
}

// Engines holds the provider clients the router dispatches to. Any field
// may be nil; the corresponding bucket then fails over to its fallbacks.
type Engines struct {
	Legal       *providers.CourtListener
	Crossref    *providers.Crossref
	OpenAlex    providers.Engine
	Semantic    providers.Engine
	PubMed      *providers.PubMed
	GoogleBooks providers.Engine
	OpenLibrary providers.Engine
	Pages       *providers.PageExtractor
}

type Router struct {
	engines  Engines
	oracle   Oracle
	cache    *resultsCache
	deadline time.Duration
}

// New builds a router over the given engines. oracle may be nil, in which
// case unknown-type queries go straight to the book and journal fallbacks.
func New(engines Engines, oracle Oracle) *Router {
	return &Router{
		engines:  engines,
		oracle:   oracle,
		cache:    newResultsCache(),
		deadline: fanoutDeadline,
	}
}

// Resolve looks up a query and formats it in the named style. It returns
// (nil, "") when no provider produced usable metadata; it never errors.
func (r *Router) Resolve(ctx context.Context, query, styleName string) (*model.CitationMetadata, string) {
	query = trimQuery(query)
	if query == "" {
		return nil, ""
	}

	if cached, ok := r.cache.Get(query, styleName); ok {
		log.Printf("[Router] Cache hit for: %s", truncate(query, 30))
		return cached.Metadata, cached.Formatted
	}

	meta := r.route(ctx, query)

	// Semantic Scholar handles messy queries better than the structured
	// engines, so it gets a last shot before giving up.
	if meta == nil || !meta.HasMinimumData() {
		meta = r.semanticFallback(ctx, query)
	}

	if meta == nil || !meta.HasMinimumData() {
		log.Printf("[Router] No metadata found for: %s", truncate(query, 50))
		return nil, ""
	}

	formatted := style.Get(styleName).Format(meta)
	r.cache.Set(query, styleName, cachedResult{Metadata: meta, Formatted: formatted})
	return meta, formatted
}

// ClearCache drops all cached results.
func (r *Router) ClearCache() { r.cache.Clear() }

// SetDeadline overrides the shared fan-out deadline.
func (r *Router) SetDeadline(d time.Duration) {
	if d > 0 {
		r.deadline = d
	}
}

func (r *Router) route(ctx context.Context, query string) *model.CitationMetadata {
	// Cache-aware legal detection catches bare case names that the
	// pattern detector misses.
	if providers.IsLegalCitation(query) {
		log.Printf("[Router] Detected: legal (cache-aware)")
		if meta := r.routeLegal(ctx, query); meta != nil {
			return meta
		}
	}

	det := Detect(query)
	log.Printf("[Router] Detected: %s (confidence %.2f)", det.Type, det.Confidence)
	return r.dispatch(ctx, det.Query, det.Type, true)
}

func (r *Router) dispatch(ctx context.Context, query string, citationType model.CitationType, allowOracle bool) *model.CitationMetadata {
	switch citationType {
	case model.TypeLegal:
		return r.routeLegal(ctx, query)
	case model.TypeInterview:
		return interviewMetadata(query)
	case model.TypeGovernment:
		return r.routePage(ctx, query, model.TypeGovernment)
	case model.TypeNewspaper:
		return r.routePage(ctx, query, model.TypeNewspaper)
	case model.TypeMedical:
		return r.routeMedical(ctx, query)
	case model.TypeJournal:
		return r.routeJournal(ctx, query)
	case model.TypeBook:
		return r.routeBook(ctx, query)
	case model.TypeURL:
		return r.routeURL(ctx, query)
	default:
		return r.routeUnknown(ctx, query, allowOracle)
	}
}

func (r *Router) routeLegal(ctx context.Context, query string) *model.CitationMetadata {
	if r.engines.Legal == nil {
		return nil
	}
	meta, err := r.engines.Legal.Search(ctx, query)
	if err != nil {
		log.Printf("[Router] Legal search error: %v", err)
		return nil
	}
	return meta
}

func (r *Router) routeJournal(ctx context.Context, query string) *model.CitationMetadata {
	// Literal DOI in the query skips search entirely.
	if doi := providers.ExtractDOI(query); doi != "" && r.engines.Crossref != nil {
		if meta, err := r.engines.Crossref.GetByDOI(ctx, doi); err == nil && meta != nil {
			log.Printf("[Router] Found via direct DOI lookup")
			return meta
		}
	}
	return raceEngines(ctx, r.academicEngines(), query, r.deadline)
}

func (r *Router) routeMedical(ctx context.Context, query string) *model.CitationMetadata {
	if pmid := providers.ExtractPMID(query); pmid != "" && r.engines.PubMed != nil {
		if meta, err := r.engines.PubMed.GetByPMID(ctx, pmid); err == nil && meta != nil {
			log.Printf("[Router] Found via direct PMID lookup")
			return meta
		}
	}
	return raceEngines(ctx, r.medicalEngines(), query, r.deadline)
}

func (r *Router) routeBook(ctx context.Context, query string) *model.CitationMetadata {
	// ISBN queries get Open Library first; it resolves them exactly.
	if providers.ExtractISBN(query) != "" && r.engines.OpenLibrary != nil {
		if meta, err := r.engines.OpenLibrary.Search(ctx, query); err == nil && meta != nil && meta.HasMinimumData() {
			return meta
		}
	}

	if meta := raceEngines(ctx, r.bookEngines(), query, r.deadline); meta != nil {
		return meta
	}

	// Crossref indexes book chapters the book engines miss.
	if r.engines.Crossref != nil {
		if meta, err := r.engines.Crossref.Search(ctx, query); err == nil && meta != nil && meta.HasMinimumData() {
			return meta
		}
	}
	return nil
}

// pubmed.ncbi.nlm.nih.gov/12345678/ style paths carry the PMID directly.
var urlPMIDPattern = regexp.MustCompile(`/(\d{7,8})/?`)

func (r *Router) routeURL(ctx context.Context, rawURL string) *model.CitationMetadata {
	// Medical hosts override the .gov rule: NIH and PubMed pages carry
	// literature identifiers, not agency metadata.
	if IsMedicalURL(rawURL) {
		if r.engines.PubMed != nil {
			if m := urlPMIDPattern.FindStringSubmatch(rawURL); m != nil {
				if meta, err := r.engines.PubMed.GetByPMID(ctx, m[1]); err == nil && meta != nil {
					meta.URL = rawURL
					return meta
				}
			}
		}
		return r.routeMedical(ctx, rawURL)
	}

	if providers.IsAcademicPublisherURL(rawURL) && r.engines.Crossref != nil {
		if doi := providers.ExtractDOIFromURL(rawURL); doi != "" {
			if meta, err := r.engines.Crossref.GetByDOI(ctx, doi); err == nil && meta != nil {
				meta.URL = rawURL
				log.Printf("[Router] Found via DOI extraction from URL")
				return meta
			}
		}
	}

	switch {
	case IsGovernmentURL(rawURL):
		return r.routePage(ctx, rawURL, model.TypeGovernment)
	case IsNewspaperURL(rawURL):
		return r.routePage(ctx, rawURL, model.TypeNewspaper)
	default:
		return r.routePage(ctx, rawURL, model.TypeURL)
	}
}

// routePage extracts page metadata for URL queries and falls back to
// loose text parsing for everything else.
func (r *Router) routePage(ctx context.Context, query string, citationType model.CitationType) *model.CitationMetadata {
	if urlPattern.MatchString(query) && r.engines.Pages != nil {
		meta, err := r.engines.Pages.Extract(ctx, query, citationType)
		if err != nil {
			log.Printf("[Router] Page extraction failed for %s: %v", truncate(query, 50), err)
		} else if meta != nil {
			return meta
		}
		if citationType == model.TypeURL {
			return nil
		}
	}
	return looseMetadata(query, citationType)
}

func (r *Router) routeUnknown(ctx context.Context, query string, allowOracle bool) *model.CitationMetadata {
	if allowOracle && r.oracle != nil {
		citationType, guess, err := r.oracle.Classify(ctx, query)
		if err != nil {
			log.Printf("[Router] Oracle classification failed: %v", err)
		} else if citationType != model.TypeUnknown {
			log.Printf("[Router] Oracle classified as: %s", citationType)
			if meta := r.dispatch(ctx, query, citationType, false); meta != nil {
				return meta
			}
			if guess != nil && guess.HasMinimumData() {
				return guess
			}
		}
	}

	if meta := r.routeBook(ctx, query); meta != nil {
		return meta
	}
	return r.routeJournal(ctx, query)
}

func (r *Router) semanticFallback(ctx context.Context, query string) *model.CitationMetadata {
	if r.engines.Semantic == nil {
		return nil
	}
	log.Printf("[Router] Primary routing failed, trying Semantic Scholar fallback")

	meta, err := r.engines.Semantic.Search(ctx, query)
	if err == nil && meta != nil && meta.HasMinimumData() {
		return meta
	}

	if cleaned := stripNoiseWords(query, 5); cleaned != "" && cleaned != query {
		meta, err = r.engines.Semantic.Search(ctx, cleaned)
		if err == nil && meta != nil && meta.HasMinimumData() {
			return meta
		}
	}
	return nil
}

func (r *Router) academicEngines() []providers.Engine {
	var out []providers.Engine
	if r.engines.Crossref != nil {
		out = append(out, r.engines.Crossref)
	}
	if r.engines.OpenAlex != nil {
		out = append(out, r.engines.OpenAlex)
	}
	if r.engines.Semantic != nil {
		out = append(out, r.engines.Semantic)
	}
	return out
}

func (r *Router) medicalEngines() []providers.Engine {
	var out []providers.Engine
	if r.engines.PubMed != nil {
		out = append(out, r.engines.PubMed)
	}
	if r.engines.Crossref != nil {
		out = append(out, r.engines.Crossref)
	}
	if r.engines.Semantic != nil {
		out = append(out, r.engines.Semantic)
	}
	return out
}

func (r *Router) bookEngines() []providers.Engine {
	var out []providers.Engine
	if r.engines.GoogleBooks != nil {
		out = append(out, r.engines.GoogleBooks)
	}
	if r.engines.OpenLibrary != nil {
		out = append(out, r.engines.OpenLibrary)
	}
	return out
}

func trimQuery(query string) string {
	return strings.TrimSpace(query)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
