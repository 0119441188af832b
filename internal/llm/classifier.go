package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/citeflex/citeflex/internal/core/model"
)

const classifyPrompt = `You are a citation classification expert. Analyze the input and classify it.

Classify as one of:
- legal: Court cases, statutes, legal documents (contains "v." or "v ")
- book: Books, monographs
- journal: Academic journal articles, peer-reviewed papers
- newspaper: Newspaper/magazine articles
- government: Government reports, official documents
- medical: Medical/clinical content
- interview: Interviews, oral histories
- url: Websites, online resources
- unknown: Cannot determine

Respond in JSON only:
{"type": "...", "confidence": 0.0-1.0, "title": "", "authors": [], "year": "", "reasoning": "brief explanation"}`

// Classifier asks an LLM to type a citation query that pattern detection
// could not bucket. It satisfies the router's Oracle interface.
type Classifier struct {
	client LLMClient
}

func NewClassifier(client LLMClient) *Classifier {
	return &Classifier{client: client}
}

type classification struct {
	Type       string   `json:"type"`
	Confidence float64  `json:"confidence"`
	Title      string   `json:"title"`
	Authors    []string `json:"authors"`
	Year       string   `json:"year"`
	Reasoning  string   `json:"reasoning"`
}

// Classify returns the coarse citation type plus best-guess metadata. A
// response the model refuses to type comes back as TypeUnknown with nil
// metadata and no error.
func (c *Classifier) Classify(ctx context.Context, text string) (model.CitationType, *model.CitationMetadata, error) {
	prompt := fmt.Sprintf("%s\n\nClassify this citation:\n\n%s", classifyPrompt, text)
	response, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return model.TypeUnknown, nil, fmt.Errorf("classification request failed: %w", err)
	}
	return parseClassification(response, text)
}

func parseClassification(response, original string) (model.CitationType, *model.CitationMetadata, error) {
	parsed, err := parseJSON[classification](response)
	if err != nil {
		return model.TypeUnknown, nil, nil
	}

	citationType := model.ParseCitationType(parsed.Type)
	if citationType == model.TypeUnknown {
		return model.TypeUnknown, nil, nil
	}

	confidence := parsed.Confidence
	if confidence == 0 {
		confidence = 0.5
	}

	meta := &model.CitationMetadata{
		Type:         citationType,
		RawSource:    original,
		SourceEngine: "AI Classifier",
		Title:        parsed.Title,
		Authors:      parsed.Authors,
		Year:         parsed.Year,
		Confidence:   confidence,
		Notes:        parsed.Reasoning,
	}
	return citationType, meta, nil
}

// parseJSON cleans and unmarshals a JSON object out of a model response,
// tolerating surrounding markdown or prose.
func parseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || start > end {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}
