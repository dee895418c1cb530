package serp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Detected result-page feature tags emitted by the collector
const (
	FeatureFeaturedSnippet = "featured_snippet"
	FeaturePeopleAlsoAsk   = "people_also_ask"
	FeatureVideoResults    = "video_results"
	FeatureShoppingResults = "shopping_results"
	FeatureProductCarousel = "product_carousel"
	FeaturePriceResults    = "price_results"
	FeatureSiteLinks       = "site_links"
)

// OrganicResult is one ranked organic entry from a results page
type OrganicResult struct {
	Title    string `json:"title"`
	Snippet  string `json:"snippet"`
	Link     string `json:"link"`
	Position int    `json:"position"`
}

// Difficulty carries a raw keyword-difficulty signal, which upstream
// providers report either as a 0-100 number or as a bucket string
// ("easy", "medium", "hard", "very hard")
type Difficulty struct {
	Numeric *float64
	Bucket  string
}

// UnmarshalJSON accepts both numeric and string difficulty values
func (d *Difficulty) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var bucket string
		if err := json.Unmarshal(data, &bucket); err != nil {
			return fmt.Errorf("invalid difficulty string: %w", err)
		}
		d.Bucket = bucket
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid difficulty value: %w", err)
	}
	d.Numeric = &num
	return nil
}

// MarshalJSON emits the difficulty in whichever form it was received
func (d Difficulty) MarshalJSON() ([]byte, error) {
	if d.Numeric != nil {
		return json.Marshal(*d.Numeric)
	}
	if d.Bucket != "" {
		return json.Marshal(d.Bucket)
	}
	return []byte("null"), nil
}

// SignalBundle carries every per-keyword signal the analysis engine consumes
type SignalBundle struct {
	Features       []string        `json:"features,omitempty"`
	OrganicResults []OrganicResult `json:"organic_results,omitempty"`
	PAAQuestions   []string        `json:"paa_questions,omitempty"`
	SearchVolume   *float64        `json:"search_volume,omitempty"`
	Difficulty     *Difficulty     `json:"keyword_difficulty,omitempty"`
}

// HasFeature reports whether the bundle carries the given feature tag
func (b *SignalBundle) HasFeature(tag string) bool {
	if b == nil {
		return false
	}
	for _, f := range b.Features {
		if f == tag {
			return true
		}
	}
	return false
}

// Host extracts the host of a result link with any "www." prefix removed.
// Returns "" for unparsable links.
func Host(link string) string {
	if link == "" {
		return ""
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := parsed.Host
	if host == "" {
		// Tolerate bare hosts like "example.com/page"
		if idx := strings.IndexAny(link, "/?#"); idx > 0 {
			host = link[:idx]
		} else {
			host = link
		}
	}
	host = strings.ToLower(host)
	if h, _, ok := strings.Cut(host, ":"); ok {
		host = h
	}
	return strings.TrimPrefix(host, "www.")
}
