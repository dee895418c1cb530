package cluster

import (
	"context"
	"fmt"

	"keyword-engine-go/pkg/embedding"
	"keyword-engine-go/pkg/intent"
	"keyword-engine-go/pkg/logger"
)

// DefaultDistanceThreshold is the agglomerative cut distance. Two groups
// merge only while their average cosine distance stays below it.
const DefaultDistanceThreshold = 0.3

// EmbeddingClusterer groups keywords by hierarchical agglomerative
// clustering over dense embeddings with average linkage. The number of
// clusters is not predetermined; the distance threshold alone decides
// the cut.
type EmbeddingClusterer struct {
	provider  embedding.Provider
	threshold float64
	log       *logger.Logger
}

// NewEmbeddingClusterer creates a clusterer backed by an embedding provider
func NewEmbeddingClusterer(provider embedding.Provider, threshold float64) *EmbeddingClusterer {
	if threshold < 0 {
		threshold = DefaultDistanceThreshold
	}
	return &EmbeddingClusterer{
		provider:  provider,
		threshold: threshold,
		log:       logger.GetLogger().WithField("component", "embedding_clusterer"),
	}
}

// Cluster embeds the whole batch in one call and merges keywords bottom-up.
// Errors from the provider surface to the caller, which owns the fallback.
func (ec *EmbeddingClusterer) Cluster(ctx context.Context, keywords []string, intents map[string]intent.Label) ([]Record, error) {
	if len(keywords) == 0 {
		return []Record{}, nil
	}
	if ec.provider == nil {
		return nil, fmt.Errorf("no embedding provider configured")
	}

	vectors, err := ec.provider.Embed(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("batch embedding failed: %w", err)
	}
	if len(vectors) != len(keywords) {
		return nil, fmt.Errorf("embedding count mismatch: %d vectors for %d keywords", len(vectors), len(keywords))
	}

	groups := ec.agglomerate(vectors)

	records := make([]Record, 0, len(groups))
	for _, members := range groups {
		memberKeywords := make([]string, len(members))
		memberVectors := make([][]float32, len(members))
		for i, idx := range members {
			memberKeywords[i] = keywords[idx]
			memberVectors[i] = vectors[idx]
		}
		records = append(records, Record{
			Topic:    ec.topicLabel(memberKeywords, memberVectors),
			Intent:   MajorityIntent(memberKeywords, intents),
			Keywords: memberKeywords,
		})
	}

	ec.log.WithFields(map[string]interface{}{
		"keywords": len(keywords),
		"clusters": len(records),
	}).Debug("Embedding clustering completed")
	return records, nil
}

// agglomerate merges index groups with average linkage until no pair of
// groups sits strictly below the distance threshold. Ties pick the
// lowest-indexed pair, which keeps the output deterministic.
func (ec *EmbeddingClusterer) agglomerate(vectors [][]float32) [][]int {
	n := len(vectors)

	// Pairwise keyword distances computed once up front
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := cosineDistance(vectors[i], vectors[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	groups := make([][]int, n)
	for i := 0; i < n; i++ {
		groups[i] = []int{i}
	}

	for len(groups) > 1 {
		bestI, bestJ := -1, -1
		bestDist := ec.threshold
		for i := 0; i < len(groups); i++ {
			for j := i + 1; j < len(groups); j++ {
				if d := averageLinkage(groups[i], groups[j], dist); d < bestDist {
					bestI, bestJ = i, j
					bestDist = d
				}
			}
		}
		if bestI < 0 {
			break
		}
		groups[bestI] = append(groups[bestI], groups[bestJ]...)
		groups = append(groups[:bestJ], groups[bestJ+1:]...)
	}

	return groups
}

// averageLinkage is the mean pairwise distance between two index groups
func averageLinkage(a, b []int, dist [][]float64) float64 {
	var sum float64
	for _, i := range a {
		for _, j := range b {
			sum += dist[i][j]
		}
	}
	return sum / float64(len(a)*len(b))
}

// topicLabel names a cluster by the member closest to its centroid.
// When the centroid cannot be computed it falls back to the most common
// significant token across member keywords.
func (ec *EmbeddingClusterer) topicLabel(keywords []string, vectors [][]float32) string {
	center := centroid(vectors)
	if center != nil {
		bestIdx := -1
		bestSim := 0.0
		for i, vec := range vectors {
			if sim := cosineSimilarity(vec, center); bestIdx < 0 || sim > bestSim {
				bestIdx = i
				bestSim = sim
			}
		}
		if bestIdx >= 0 && bestSim > 0 {
			return keywords[bestIdx]
		}
	}

	if token := dominantToken(keywords); token != "" {
		return token
	}
	return keywords[0]
}
