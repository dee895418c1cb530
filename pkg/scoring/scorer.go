package scoring

import (
	"math"
	"strings"

	"keyword-engine-go/pkg/intent"
	"keyword-engine-go/pkg/serp"
)

// Score combination weights and clamps
const (
	defaultKDNorm = 50.0

	serpSignalBase        = 50.0
	featureWeight         = 3.0
	featureBonusCap       = 15.0
	commercialBonus       = 5.0
	transactionalBonus    = 10.0
	majorDomainPenalty    = 5.0
	majorDomainPenaltyCap = 20.0

	opportunityVolumeWeight = 0.6
	opportunitySERPWeight   = 0.4
	difficultyKDWeight      = 0.7
	difficultySERPWeight    = 0.3
	overallOpportunityWt    = 0.7
	overallDifficultyWt     = 0.3
	overallOffset           = 50.0
)

// High-authority hosts whose presence in the top organic results signals a
// crowded page that is hard to displace
var majorDomains = []string{
	"wikipedia.org",
	"amazon.com",
	"youtube.com",
	"facebook.com",
	"linkedin.com",
	"twitter.com",
	"reddit.com",
}

// Difficulty bucket strings mapped to normalized 0-100 values.
// "very hard" must match before "hard".
var difficultyBuckets = []struct {
	marker string
	value  float64
}{
	{"very hard", 95},
	{"hard", 80},
	{"medium", 50},
	{"easy", 20},
}

// Record holds the normalized scores for one keyword. The three bounded
// fields are always present and within [0,100] even when inputs are missing.
type Record struct {
	SearchVolume  *float64         `json:"search_volume,omitempty"`
	DifficultyRaw *serp.Difficulty `json:"keyword_difficulty_raw,omitempty"`
	Difficulty    int              `json:"difficulty"`
	Opportunity   int              `json:"opportunity"`
	Score         int              `json:"score"`
}

// Scorer converts raw per-keyword signals into bounded difficulty,
// opportunity and overall scores. Stateless and deterministic.
type Scorer struct{}

// NewScorer creates an opportunity scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the three bounded scores for one keyword.
// batchMaxVolume is the highest known search volume in the batch and
// anchors volume normalization; missing signals degrade to defaults.
func (s *Scorer) Score(bundle *serp.SignalBundle, label intent.Label, batchMaxVolume float64) Record {
	record := Record{}
	if bundle != nil {
		record.SearchVolume = bundle.SearchVolume
		record.DifficultyRaw = bundle.Difficulty
	}

	kdNorm := normalizeDifficulty(record.DifficultyRaw)
	svScore := normalizeVolume(record.SearchVolume, batchMaxVolume)
	serpSignal := s.serpSignal(bundle, label)

	opportunity := clamp(opportunityVolumeWeight*svScore + opportunitySERPWeight*serpSignal)
	difficulty := clamp(difficultyKDWeight*kdNorm + difficultySERPWeight*serpSignal)
	overall := clamp(overallOpportunityWt*opportunity - overallDifficultyWt*difficulty + overallOffset)

	record.Opportunity = int(math.Round(opportunity))
	record.Difficulty = int(math.Round(difficulty))
	record.Score = int(math.Round(overall))
	return record
}

// serpSignal folds page features, intent and dominant-domain presence into
// one 0-100 signal
func (s *Scorer) serpSignal(bundle *serp.SignalBundle, label intent.Label) float64 {
	signal := serpSignalBase

	if bundle != nil {
		signal += math.Min(featureWeight*float64(len(bundle.Features)), featureBonusCap)
	}

	switch label {
	case intent.Commercial:
		signal += commercialBonus
	case intent.Transactional:
		signal += transactionalBonus
	}

	if bundle != nil {
		majors := 0
		top := bundle.OrganicResults
		if len(top) > 5 {
			top = top[:5]
		}
		for _, result := range top {
			if isMajorDomain(serp.Host(result.Link)) {
				majors++
			}
		}
		signal -= math.Min(majorDomainPenalty*float64(majors), majorDomainPenaltyCap)
	}

	return clamp(signal)
}

func normalizeDifficulty(raw *serp.Difficulty) float64 {
	if raw == nil {
		return defaultKDNorm
	}
	if raw.Numeric != nil {
		return clamp(*raw.Numeric)
	}
	if raw.Bucket != "" {
		lowered := strings.ToLower(raw.Bucket)
		for _, bucket := range difficultyBuckets {
			if strings.Contains(lowered, bucket.marker) {
				return bucket.value
			}
		}
	}
	return defaultKDNorm
}

func normalizeVolume(volume *float64, batchMax float64) float64 {
	if volume == nil || batchMax <= 0 {
		return 0
	}
	return clamp(*volume / batchMax * 100)
}

func isMajorDomain(host string) bool {
	if host == "" {
		return false
	}
	for _, domain := range majorDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func clamp(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
