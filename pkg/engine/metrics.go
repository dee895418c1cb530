package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	batchesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_engine_batches_total",
		Help: "Total number of analysis batches processed",
	})
	keywordsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_engine_keywords_total",
		Help: "Total number of keywords analyzed",
	})
	classificationErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_engine_classification_errors_total",
		Help: "Keywords whose intent classification failed and degraded to unknown",
	})
	clusteringFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "keyword_engine_clustering_fallbacks_total",
		Help: "Batches where the primary clustering path failed and a fallback was used",
	})
)
