package intent

import (
	"testing"

	"keyword-engine-go/pkg/serp"
)

func TestClassify_PhraseSignals(t *testing.T) {
	classifier := NewClassifier()

	cases := []struct {
		keyword  string
		expected Label
	}{
		{"how to bake bread", Informational},
		{"what is keyword research", Informational},
		{"best running shoes 2026", Commercial},
		{"iphone vs android comparison", Commercial},
		{"winter jackets for sale", Transactional},
		{"coffee shops near me", Transactional},
	}

	for _, tc := range cases {
		if got := classifier.Classify(tc.keyword, nil, nil); got != tc.expected {
			t.Errorf("Classify(%q) = %s, expected %s", tc.keyword, got, tc.expected)
		}
	}
}

func TestClassify_SingleWordSignals(t *testing.T) {
	classifier := NewClassifier()

	if got := classifier.Classify("buy running shoes", nil, nil); got != Transactional {
		t.Errorf("Expected transactional for 'buy running shoes', got %s", got)
	}
	if got := classifier.Classify("acme portal", nil, nil); got != Navigational {
		t.Errorf("Expected navigational for 'acme portal', got %s", got)
	}
}

func TestClassify_InterrogativePrefix(t *testing.T) {
	classifier := NewClassifier()

	// "can i" is not a signal word, so only the prefix rule catches it
	if got := classifier.Classify("can i freeze cooked rice", nil, nil); got != Informational {
		t.Errorf("Expected informational for interrogative prefix, got %s", got)
	}
	if got := classifier.Classify("is gold magnetic", nil, nil); got != Informational {
		t.Errorf("Expected informational for 'is' prefix, got %s", got)
	}
}

func TestClassify_FeatureHeuristics(t *testing.T) {
	classifier := NewClassifier()

	// Keywords chosen to fall through the text-based steps
	if got := classifier.Classify("zxqv gadget", []string{serp.FeatureShoppingResults}, nil); got != Transactional {
		t.Errorf("Expected transactional for shopping_results feature, got %s", got)
	}
	if got := classifier.Classify("zxqv gadget", []string{serp.FeatureFeaturedSnippet}, nil); got != Informational {
		t.Errorf("Expected informational for featured_snippet feature, got %s", got)
	}

	// Transactional features dominate informational ones
	features := []string{serp.FeatureFeaturedSnippet, serp.FeatureProductCarousel}
	if got := classifier.Classify("zxqv gadget", features, nil); got != Transactional {
		t.Errorf("Expected transactional when both feature groups present, got %s", got)
	}
}

func TestClassify_SiteLinksNavigational(t *testing.T) {
	classifier := NewClassifier()

	organic := []serp.OrganicResult{
		{Title: "Acme Dashboard", Link: "https://www.acme.com/home", Position: 1},
	}
	got := classifier.Classify("acme.com dashboard", []string{serp.FeatureSiteLinks}, organic)
	if got != Navigational {
		t.Errorf("Expected navigational for site_links + domain match, got %s", got)
	}

	// No domain match in the keyword means no navigational verdict
	got = classifier.Classify("zxqv dashboard", []string{serp.FeatureSiteLinks}, organic)
	if got == Navigational {
		t.Errorf("Expected non-navigational verdict without domain match, got %s", got)
	}
}

func TestClassify_SnippetTally(t *testing.T) {
	classifier := NewClassifier()

	organic := []serp.OrganicResult{
		{Title: "Buy gizmo flurb today", Snippet: "Order now with fast delivery"},
		{Title: "Gizmo flurb shop", Snippet: "Great deals on gizmos"},
	}
	if got := classifier.Classify("gizmo flurb", nil, organic); got != Transactional {
		t.Errorf("Expected transactional from snippet tally, got %s", got)
	}
}

func TestClassify_SnippetTallyTieBreak(t *testing.T) {
	classifier := NewClassifier()

	// "best" counts commercial, "buy" counts transactional: equal totals
	// resolve by fixed priority with transactional first
	organic := []serp.OrganicResult{
		{Title: "best gizmo", Snippet: "buy gizmo"},
	}
	if got := classifier.Classify("gizmo flurb", nil, organic); got != Transactional {
		t.Errorf("Expected transactional on tie, got %s", got)
	}
}

func TestClassify_SnippetTallyOnlyTopFive(t *testing.T) {
	classifier := NewClassifier()

	organic := make([]serp.OrganicResult, 0, 6)
	for i := 0; i < 5; i++ {
		organic = append(organic, serp.OrganicResult{Title: "gizmo flurb", Snippet: "plain text"})
	}
	// Signal words only below position 5 must be ignored
	organic = append(organic, serp.OrganicResult{Title: "buy buy buy", Snippet: "order order"})

	if got := classifier.Classify("gizmo flurb", nil, organic); got != Informational {
		t.Errorf("Expected default informational when signals sit past position 5, got %s", got)
	}
}

func TestClassify_DefaultInformational(t *testing.T) {
	classifier := NewClassifier()

	if got := classifier.Classify("gizmo flurb", nil, nil); got != Informational {
		t.Errorf("Expected default informational, got %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	classifier := NewClassifier()

	organic := []serp.OrganicResult{
		{Title: "Buy gizmos", Snippet: "best gizmo shop"},
	}
	first := classifier.Classify("gizmo flurb", []string{serp.FeatureSiteLinks}, organic)
	for i := 0; i < 10; i++ {
		if got := classifier.Classify("gizmo flurb", []string{serp.FeatureSiteLinks}, organic); got != first {
			t.Fatalf("Classification not deterministic: %s then %s", first, got)
		}
	}
}
