package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"keyword-engine-go/pkg/cluster"
	"keyword-engine-go/pkg/embedding"
	"keyword-engine-go/pkg/intent"
	"keyword-engine-go/pkg/logger"
	"keyword-engine-go/pkg/scoring"
	"keyword-engine-go/pkg/serp"
)

// FallbackClusterTopic names the single degenerate cluster produced when
// every clustering path fails
const FallbackClusterTopic = "general"

// Result is the four-part output of one analysis batch. All fields are
// always present; a field is empty only when a batch-level failure
// interrupted the stage that computes it.
type Result struct {
	IntentClassification map[string]intent.Label   `json:"intent_classification"`
	Clusters             []cluster.Record          `json:"clusters"`
	KeywordScores        map[string]scoring.Record `json:"keyword_scores"`
	QuestionKeywords     []string                  `json:"question_keywords"`
}

// Engine orchestrates intent classification, semantic clustering and
// opportunity scoring over one keyword batch. It holds no mutable state
// across Process calls; the embedding provider handle is immutable and
// selected once at construction.
type Engine struct {
	classifier *intent.Classifier
	primary    cluster.Clusterer
	fallback   *cluster.LexicalClusterer
	scorer     *scoring.Scorer
	log        *logger.Logger
}

// New creates an analysis engine. A nil provider activates the lexical
// clustering strategy; otherwise embeddings drive the primary path with
// the default distance threshold.
func New(provider embedding.Provider) *Engine {
	return NewWithThreshold(provider, cluster.DefaultDistanceThreshold)
}

// NewWithThreshold creates an engine with a custom clustering cut distance
func NewWithThreshold(provider embedding.Provider, threshold float64) *Engine {
	lexical := cluster.NewLexicalClusterer()

	var primary cluster.Clusterer = lexical
	if provider != nil {
		primary = cluster.NewEmbeddingClusterer(provider, threshold)
	}

	return &Engine{
		classifier: intent.NewClassifier(),
		primary:    primary,
		fallback:   lexical,
		scorer:     scoring.NewScorer(),
		log:        logger.GetLogger().WithField("component", "analysis_engine"),
	}
}

// Process runs the full analysis over one batch. It never returns an
// error: each stage degrades independently, and even a failure inside the
// orchestrator yields whatever was computed so far with empty defaults
// for the rest.
func (e *Engine) Process(ctx context.Context, keywords []string, signals map[string]*serp.SignalBundle) (result *Result) {
	result = &Result{
		IntentClassification: make(map[string]intent.Label),
		Clusters:             []cluster.Record{},
		KeywordScores:        make(map[string]scoring.Record),
		QuestionKeywords:     []string{},
	}

	log := e.log.WithField("batch_id", uuid.NewString())
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Batch processing interrupted, returning partial result")
		}
	}()

	batch := dedupeKeywords(keywords)
	if len(batch) == 0 {
		return result
	}
	batchesProcessed.Inc()
	keywordsAnalyzed.Add(float64(len(batch)))
	log.WithField("keywords", len(batch)).Debug("Starting batch analysis")

	// Stage 1: per-keyword intent classification. A failure on one keyword
	// degrades that keyword to unknown and never aborts the batch.
	for _, kw := range batch {
		var bundle *serp.SignalBundle
		if signals != nil {
			bundle = signals[kw]
		}
		label := e.classifier.Classify(kw, bundleFeatures(bundle), bundleOrganic(bundle))
		if label == intent.Unknown {
			classificationErrors.Inc()
		}
		result.IntentClassification[kw] = label
	}

	// Stage 2: clustering over the whole batch
	result.Clusters = e.clusterBatch(ctx, log, batch, result.IntentClassification)

	// Stage 3: per-keyword scoring anchored on the batch volume maximum
	maxVolume := batchMaxVolume(batch, signals)
	for _, kw := range batch {
		var bundle *serp.SignalBundle
		if signals != nil {
			bundle = signals[kw]
		}
		result.KeywordScores[kw] = e.scorer.Score(bundle, result.IntentClassification[kw], maxVolume)
	}

	// Stage 4: deduplicated question extraction, first-seen order preserved
	result.QuestionKeywords = extractQuestions(batch, signals)

	log.WithFields(map[string]interface{}{
		"keywords":  len(batch),
		"clusters":  len(result.Clusters),
		"questions": len(result.QuestionKeywords),
	}).Info("Batch analysis completed")
	return result
}

// clusterBatch tries the primary strategy, then the lexical fallback, then
// the degenerate single-cluster result. Whatever happens, the returned
// records partition the batch.
func (e *Engine) clusterBatch(ctx context.Context, log *logger.Logger, batch []string, intents map[string]intent.Label) []cluster.Record {
	records, err := safeCluster(ctx, e.primary, batch, intents)
	if err == nil {
		return records
	}
	log.WithError(err).Warn("Primary clustering failed, using lexical fallback")
	clusteringFallbacks.Inc()

	if e.primary != cluster.Clusterer(e.fallback) {
		records, err = safeCluster(ctx, e.fallback, batch, intents)
		if err == nil {
			return records
		}
		log.WithError(err).Error("Lexical fallback failed, using single general cluster")
	}

	return []cluster.Record{{
		Topic:    FallbackClusterTopic,
		Intent:   cluster.MajorityIntent(batch, intents),
		Keywords: batch,
	}}
}

// safeCluster converts clusterer panics into errors so every clustering
// failure routes through the same fallback chain
func safeCluster(ctx context.Context, c cluster.Clusterer, batch []string, intents map[string]intent.Label) (records []cluster.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = fmt.Errorf("clustering panicked: %v", r)
		}
	}()
	return c.Cluster(ctx, batch, intents)
}

// dedupeKeywords drops empty entries and duplicates while preserving
// first-seen order; the keyword is the batch primary key
func dedupeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	batch := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		batch = append(batch, kw)
	}
	return batch
}

func batchMaxVolume(batch []string, signals map[string]*serp.SignalBundle) float64 {
	if signals == nil {
		return 0
	}
	max := 0.0
	for _, kw := range batch {
		if bundle := signals[kw]; bundle != nil && bundle.SearchVolume != nil && *bundle.SearchVolume > max {
			max = *bundle.SearchVolume
		}
	}
	return max
}

func extractQuestions(batch []string, signals map[string]*serp.SignalBundle) []string {
	questions := []string{}
	if signals == nil {
		return questions
	}
	seen := make(map[string]bool)
	for _, kw := range batch {
		bundle := signals[kw]
		if bundle == nil {
			continue
		}
		for _, q := range bundle.PAAQuestions {
			if q == "" || seen[q] {
				continue
			}
			seen[q] = true
			questions = append(questions, q)
		}
	}
	return questions
}

func bundleFeatures(bundle *serp.SignalBundle) []string {
	if bundle == nil {
		return nil
	}
	return bundle.Features
}

func bundleOrganic(bundle *serp.SignalBundle) []serp.OrganicResult {
	if bundle == nil {
		return nil
	}
	return bundle.OrganicResults
}
