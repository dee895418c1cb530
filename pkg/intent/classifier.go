package intent

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/serp"
)

// Multi-word phrase signals checked first, in fixed intent order.
// Navigational has no phrase list.
var phraseSignals = []struct {
	label   Label
	phrases []string
}{
	{Informational, []string{
		"how to", "what is", "what are", "why is", "why do", "why does",
		"when to", "guide to", "step by step", "difference between", "examples of",
	}},
	{Commercial, []string{
		"best", "top 10", "top rated", " vs ", "versus", "review", "comparison",
		"alternatives to", "is it worth",
	}},
	{Transactional, []string{
		"for sale", "free shipping", "order online", "coupon code",
		"where to buy", "near me",
	}},
}

// Exact single-word signals checked second, in fixed intent order
var wordSignals = []struct {
	label Label
	words []string
}{
	{Informational, []string{
		"what", "how", "why", "when", "where", "who", "guide", "tutorial",
		"tips", "learn", "examples", "meaning", "definition", "ideas",
	}},
	{Navigational, []string{
		"login", "signin", "website", "official", "app", "download",
		"account", "portal", "homepage",
	}},
	{Commercial, []string{
		"best", "top", "review", "reviews", "compare", "comparison",
		"cheapest", "affordable", "alternative", "alternatives",
	}},
	{Transactional, []string{
		"buy", "purchase", "order", "price", "pricing", "cheap", "deal",
		"deals", "discount", "coupon", "sale", "shop",
	}},
}

// Interrogative prefixes that mark a query as a question
var interrogativePrefixes = []string{
	"what", "how", "why", "when", "where", "who", "which", "can i", "are", "is",
}

var transactionalFeatures = []string{
	serp.FeatureShoppingResults,
	serp.FeatureProductCarousel,
	serp.FeaturePriceResults,
}

var informationalFeatures = []string{
	serp.FeatureFeaturedSnippet,
	serp.FeaturePeopleAlsoAsk,
	serp.FeatureVideoResults,
}

// Classifier assigns one intent label per keyword from the keyword text,
// detected result-page features and top organic results. Classification is
// deterministic and performs no I/O.
type Classifier struct {
	log *logger.Logger
}

// NewClassifier creates a new intent classifier
func NewClassifier() *Classifier {
	return &Classifier{
		log: logger.GetLogger().WithField("component", "intent_classifier"),
	}
}

// Classify runs the decision cascade for one keyword. It never panics;
// any internal failure yields Unknown.
func (c *Classifier) Classify(keyword string, features []string, organic []serp.OrganicResult) (label Label) {
	defer func() {
		if r := recover(); r != nil {
			c.log.WithField("keyword", keyword).WithField("panic", r).Error("Classification panicked")
			label = Unknown
		}
	}()

	lowered := Normalize(keyword)

	// 1. Phrase signals
	for _, group := range phraseSignals {
		for _, phrase := range group.phrases {
			if strings.Contains(lowered, phrase) {
				return group.label
			}
		}
	}

	// 2. Single-word signals
	words := strings.Fields(lowered)
	for _, group := range wordSignals {
		for _, signal := range group.words {
			for _, w := range words {
				if w == signal {
					return group.label
				}
			}
		}
	}

	// 3. Interrogative prefix
	for _, prefix := range interrogativePrefixes {
		if lowered == prefix || strings.HasPrefix(lowered, prefix+" ") {
			return Informational
		}
	}

	// 4. Feature-based heuristics
	if label, ok := c.classifyByFeatures(lowered, features, organic); ok {
		return label
	}

	// 5. Snippet/title tally over the top organic results
	if label, ok := c.classifyBySnippets(organic); ok {
		return label
	}

	// 6. Default
	return Informational
}

func (c *Classifier) classifyByFeatures(lowered string, features []string, organic []serp.OrganicResult) (Label, bool) {
	featureSet := make(map[string]bool, len(features))
	for _, f := range features {
		featureSet[f] = true
	}

	for _, f := range transactionalFeatures {
		if featureSet[f] {
			return Transactional, true
		}
	}
	for _, f := range informationalFeatures {
		if featureSet[f] {
			return Informational, true
		}
	}
	if featureSet[serp.FeatureSiteLinks] && len(organic) > 0 {
		if host := serp.Host(organic[0].Link); host != "" && strings.Contains(lowered, host) {
			return Navigational, true
		}
	}
	return Unknown, false
}

func (c *Classifier) classifyBySnippets(organic []serp.OrganicResult) (Label, bool) {
	top := organic
	if len(top) > 5 {
		top = top[:5]
	}

	counts := make(map[Label]int, len(wordSignals))
	for _, result := range top {
		text := Normalize(result.Title + " " + result.Snippet)
		words := strings.Fields(text)
		for _, group := range wordSignals {
			for _, signal := range group.words {
				for _, w := range words {
					if w == signal {
						counts[group.label]++
					}
				}
			}
		}
	}

	best := Unknown
	bestCount := 0
	for _, candidate := range []Label{Transactional, Commercial, Navigational, Informational} {
		if counts[candidate] > bestCount {
			best = candidate
			bestCount = counts[candidate]
		}
	}
	if bestCount == 0 {
		return Unknown, false
	}
	return best, true
}

// Normalize lower-cases a keyword after NFKC unicode normalization
func Normalize(text string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(text)))
}
