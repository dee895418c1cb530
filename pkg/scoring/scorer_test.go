package scoring

import (
	"testing"

	"keyword-engine-go/pkg/intent"
	"keyword-engine-go/pkg/serp"
)

func floatPtr(v float64) *float64 { return &v }

func TestScore_AllDefaults(t *testing.T) {
	scorer := NewScorer()

	// Missing bundle: kd_norm 50, sv_score 0, serp_signal 50
	record := scorer.Score(nil, intent.Informational, 0)
	if record.Opportunity != 20 {
		t.Errorf("Expected opportunity 20, got %d", record.Opportunity)
	}
	if record.Difficulty != 50 {
		t.Errorf("Expected difficulty 50, got %d", record.Difficulty)
	}
	if record.Score != 49 {
		t.Errorf("Expected score 49, got %d", record.Score)
	}
}

func TestScore_TransactionalDefaults(t *testing.T) {
	scorer := NewScorer()

	// Transactional intent lifts serp_signal to 60
	record := scorer.Score(nil, intent.Transactional, 0)
	if record.Opportunity != 24 {
		t.Errorf("Expected opportunity 24, got %d", record.Opportunity)
	}
	if record.Difficulty != 53 {
		t.Errorf("Expected difficulty 53, got %d", record.Difficulty)
	}
	if record.Score != 51 {
		t.Errorf("Expected score 51, got %d", record.Score)
	}
}

func TestNormalizeDifficulty_Buckets(t *testing.T) {
	cases := []struct {
		bucket   string
		expected float64
	}{
		{"easy", 20},
		{"Medium", 50},
		{"hard", 80},
		{"very hard", 95},
		{"Very Hard (competitive)", 95},
		{"unknown bucket", 50},
	}
	for _, tc := range cases {
		got := normalizeDifficulty(&serp.Difficulty{Bucket: tc.bucket})
		if got != tc.expected {
			t.Errorf("normalizeDifficulty(%q) = %f, expected %f", tc.bucket, got, tc.expected)
		}
	}
}

func TestNormalizeDifficulty_NumericClamp(t *testing.T) {
	if got := normalizeDifficulty(&serp.Difficulty{Numeric: floatPtr(120)}); got != 100 {
		t.Errorf("Expected clamp to 100, got %f", got)
	}
	if got := normalizeDifficulty(&serp.Difficulty{Numeric: floatPtr(-5)}); got != 0 {
		t.Errorf("Expected clamp to 0, got %f", got)
	}
	if got := normalizeDifficulty(nil); got != 50 {
		t.Errorf("Expected default 50, got %f", got)
	}
}

func TestScore_VolumeNormalization(t *testing.T) {
	scorer := NewScorer()

	bundleA := &serp.SignalBundle{SearchVolume: floatPtr(100)}
	bundleB := &serp.SignalBundle{SearchVolume: floatPtr(50)}

	recordA := scorer.Score(bundleA, intent.Informational, 100)
	recordB := scorer.Score(bundleB, intent.Informational, 100)

	if recordA.Opportunity < recordB.Opportunity {
		t.Errorf("Higher-volume keyword scored lower opportunity: %d < %d", recordA.Opportunity, recordB.Opportunity)
	}

	// sv_score 100 at the batch maximum: 0.6*100 + 0.4*50 = 80
	if recordA.Opportunity != 80 {
		t.Errorf("Expected opportunity 80 at batch max volume, got %d", recordA.Opportunity)
	}
}

func TestScore_HardBucket(t *testing.T) {
	scorer := NewScorer()

	bundle := &serp.SignalBundle{Difficulty: &serp.Difficulty{Bucket: "hard"}}
	record := scorer.Score(bundle, intent.Unknown, 0)

	// kd_norm 80, serp_signal 50: difficulty = 0.7*80 + 0.3*50 = 71
	if record.Difficulty != 71 {
		t.Errorf("Expected difficulty 71 for 'hard', got %d", record.Difficulty)
	}
}

func TestSerpSignal_FeaturesAndDomains(t *testing.T) {
	scorer := NewScorer()

	bundle := &serp.SignalBundle{
		Features: []string{"featured_snippet", "people_also_ask"},
		OrganicResults: []serp.OrganicResult{
			{Link: "https://en.wikipedia.org/wiki/Thing", Position: 1},
			{Link: "https://www.smallsite.com/thing", Position: 2},
		},
	}
	// 50 + min(3*2,15) - min(5*1,20) = 51, commercial adds 5
	got := scorer.serpSignal(bundle, intent.Commercial)
	if got != 56 {
		t.Errorf("Expected serp signal 56, got %f", got)
	}
}

func TestSerpSignal_CapsApply(t *testing.T) {
	scorer := NewScorer()

	features := make([]string, 10)
	for i := range features {
		features[i] = "feature"
	}
	organic := []serp.OrganicResult{
		{Link: "https://amazon.com/a"},
		{Link: "https://youtube.com/b"},
		{Link: "https://reddit.com/c"},
		{Link: "https://facebook.com/d"},
		{Link: "https://twitter.com/e"},
	}
	bundle := &serp.SignalBundle{Features: features, OrganicResults: organic}

	// Feature bonus caps at 15, domain penalty at 20: 50 + 15 - 20 = 45
	got := scorer.serpSignal(bundle, intent.Unknown)
	if got != 45 {
		t.Errorf("Expected serp signal 45 with caps applied, got %f", got)
	}
}

func TestScore_AllFieldsWithinRange(t *testing.T) {
	scorer := NewScorer()

	bundles := []*serp.SignalBundle{
		nil,
		{},
		{SearchVolume: floatPtr(1e9), Difficulty: &serp.Difficulty{Numeric: floatPtr(0)}},
		{SearchVolume: floatPtr(0), Difficulty: &serp.Difficulty{Numeric: floatPtr(100)}},
		{Difficulty: &serp.Difficulty{Bucket: "very hard"}},
	}
	labels := []intent.Label{
		intent.Informational, intent.Navigational, intent.Commercial,
		intent.Transactional, intent.Unknown,
	}

	for _, bundle := range bundles {
		for _, label := range labels {
			record := scorer.Score(bundle, label, 1e9)
			for name, value := range map[string]int{
				"difficulty":  record.Difficulty,
				"opportunity": record.Opportunity,
				"score":       record.Score,
			} {
				if value < 0 || value > 100 {
					t.Errorf("%s out of range: %d (bundle=%+v, intent=%s)", name, value, bundle, label)
				}
			}
		}
	}
}
