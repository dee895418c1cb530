package serp

import (
	"encoding/json"
	"fmt"
)

// CollectorResponse represents the raw response structure from the SERP data API
type CollectorResponse struct {
	Status string `json:"status"`
	Data   []struct {
		Keyword          string          `json:"keyword"`
		Features         []string        `json:"features"`
		OrganicResults   []OrganicResult `json:"organic_results"`
		RelatedQuestions []string        `json:"related_questions"`
		Metrics          struct {
			SearchVolume      *float64    `json:"search_volume"`
			KeywordDifficulty *Difficulty `json:"keyword_difficulty"`
		} `json:"metrics"`
	} `json:"data"`
}

// ResponseParser converts SERP data API responses into per-keyword SignalBundles
type ResponseParser struct{}

// NewResponseParser creates a new collector response parser
func NewResponseParser() *ResponseParser {
	return &ResponseParser{}
}

// Parse decodes a collector response body into a keyword-indexed bundle map.
// Entries with empty keywords are skipped; missing metrics stay nil so the
// scoring defaults apply downstream.
func (p *ResponseParser) Parse(body []byte) (map[string]*SignalBundle, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response body from SERP data API")
	}

	var resp CollectorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		preview := body
		if len(preview) > 200 {
			preview = preview[:200]
		}
		return nil, fmt.Errorf("failed to decode SERP response: %w (response: %s)", err, string(preview))
	}

	if resp.Status != "success" {
		return nil, fmt.Errorf("SERP data API returned status: %s", resp.Status)
	}

	bundles := make(map[string]*SignalBundle, len(resp.Data))
	for _, entry := range resp.Data {
		if entry.Keyword == "" {
			continue
		}
		bundles[entry.Keyword] = &SignalBundle{
			Features:       entry.Features,
			OrganicResults: entry.OrganicResults,
			PAAQuestions:   entry.RelatedQuestions,
			SearchVolume:   entry.Metrics.SearchVolume,
			Difficulty:     entry.Metrics.KeywordDifficulty,
		}
	}

	return bundles, nil
}
