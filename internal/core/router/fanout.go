package router

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/citeflex/citeflex/internal/core/model"
	"github.com/citeflex/citeflex/internal/providers"
)

const (
	fanoutDeadline = 6 * time.Second
	maxWorkers     = 4
)

type engineOutcome int

const (
	outcomeOK engineOutcome = iota
	outcomeNoMatch
	outcomeErrored
	outcomeTimedOut
)

type engineResult struct {
	engine  string
	meta    *model.CitationMetadata
	outcome engineOutcome
	err     error
}

// raceEngines runs every engine concurrently under a shared deadline and
// returns the first qualifying result. A qualifying result that carries a
// DOI wins immediately; one without a DOI is held in case a DOI-bearing
// result arrives before the deadline. Engine failures are absorbed here
// and never propagate to the caller.
func raceEngines(ctx context.Context, engines []providers.Engine, query string, deadline time.Duration) *model.CitationMetadata {
	if len(engines) == 0 {
		return nil
	}
	if deadline <= 0 {
		deadline = fanoutDeadline
	}

	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	results := make(chan engineResult, len(engines))
	sem := make(chan struct{}, maxWorkers)

	for _, eng := range engines {
		go func(eng providers.Engine) {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- engineResult{engine: eng.Name(), outcome: outcomeTimedOut}
				return
			}

			meta, err := eng.Search(ctx, query)
			switch {
			case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
				results <- engineResult{engine: eng.Name(), outcome: outcomeTimedOut, err: err}
			case err != nil:
				results <- engineResult{engine: eng.Name(), outcome: outcomeErrored, err: err}
			case meta == nil || !meta.HasMinimumData():
				results <- engineResult{engine: eng.Name(), outcome: outcomeNoMatch}
			default:
				results <- engineResult{engine: eng.Name(), meta: meta, outcome: outcomeOK}
			}
		}(eng)
	}

	var held *model.CitationMetadata
	for received := 0; received < len(engines); received++ {
		select {
		case res := <-results:
			switch res.outcome {
			case outcomeOK:
				log.Printf("[Router] Found via %s", res.engine)
				if res.meta.DOI != "" {
					return res.meta
				}
				if held == nil {
					held = res.meta
				}
			case outcomeErrored:
				log.Printf("[Router] %s failed: %v", res.engine, res.err)
			case outcomeTimedOut:
				log.Printf("[Router] %s timed out", res.engine)
			}
		case <-ctx.Done():
			log.Printf("[Router] Parallel search timed out after %s", deadline)
			return held
		}
	}
	return held
}
