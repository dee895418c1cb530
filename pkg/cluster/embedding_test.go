package cluster

import (
	"context"
	"fmt"
	"testing"

	"keyword-engine-go/pkg/intent"
)

// stubProvider returns canned vectors keyed by text
type stubProvider struct {
	vectors map[string][]float32
	err     error
}

func (s *stubProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, ok := s.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no stub vector for %q", text)
		}
		out[i] = vec
	}
	return out, nil
}

func testVectors() map[string][]float32 {
	return map[string][]float32{
		"alpha": {1, 0},
		"beta":  {0.9, 0.1},
		"gamma": {0, 1},
	}
}

func testIntents() map[string]intent.Label {
	return map[string]intent.Label{
		"alpha": intent.Commercial,
		"beta":  intent.Commercial,
		"gamma": intent.Informational,
	}
}

func TestEmbeddingClusterer_GroupsByDistance(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{vectors: testVectors()}, DefaultDistanceThreshold)
	keywords := []string{"alpha", "beta", "gamma"}

	records, err := clusterer.Cluster(context.Background(), keywords, testIntents())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(records))
	}

	// alpha and beta point almost the same way; gamma is orthogonal
	if len(records[0].Keywords) != 2 {
		t.Errorf("Expected first cluster to hold 2 keywords, got %d", len(records[0].Keywords))
	}
	if records[0].Intent != intent.Commercial {
		t.Errorf("Expected commercial cluster intent, got %s", records[0].Intent)
	}
	if records[1].Keywords[0] != "gamma" {
		t.Errorf("Expected gamma singleton, got %v", records[1].Keywords)
	}

	assertPartition(t, keywords, records)
}

func TestEmbeddingClusterer_TopicIsClosestToCentroid(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{vectors: testVectors()}, DefaultDistanceThreshold)

	records, err := clusterer.Cluster(context.Background(), []string{"alpha", "beta", "gamma"}, testIntents())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// alpha sits marginally closer to the [0.95, 0.05] centroid than beta
	if records[0].Topic != "alpha" {
		t.Errorf("Expected topic 'alpha', got %q", records[0].Topic)
	}
}

func TestEmbeddingClusterer_ZeroThresholdYieldsSingletons(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{vectors: testVectors()}, 0)
	keywords := []string{"alpha", "beta", "gamma"}

	records, err := clusterer.Cluster(context.Background(), keywords, testIntents())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected every keyword in its own cluster, got %d clusters", len(records))
	}
	assertPartition(t, keywords, records)
}

func TestEmbeddingClusterer_LargeThresholdMergesAll(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{vectors: testVectors()}, 2.0)
	keywords := []string{"alpha", "beta", "gamma"}

	records, err := clusterer.Cluster(context.Background(), keywords, testIntents())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected a single merged cluster, got %d", len(records))
	}
	if len(records[0].Keywords) != 3 {
		t.Errorf("Expected all 3 keywords merged, got %d", len(records[0].Keywords))
	}
}

func TestEmbeddingClusterer_ProviderErrorSurfaces(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{err: fmt.Errorf("backend down")}, DefaultDistanceThreshold)

	if _, err := clusterer.Cluster(context.Background(), []string{"alpha"}, nil); err == nil {
		t.Fatal("Expected provider error to surface, got nil")
	}
}

func TestEmbeddingClusterer_Deterministic(t *testing.T) {
	clusterer := NewEmbeddingClusterer(&stubProvider{vectors: testVectors()}, DefaultDistanceThreshold)
	keywords := []string{"alpha", "beta", "gamma"}

	first, err := clusterer.Cluster(context.Background(), keywords, testIntents())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := clusterer.Cluster(context.Background(), keywords, testIntents())
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("Cluster count changed between runs: %d then %d", len(first), len(again))
		}
		for j := range first {
			if first[j].Topic != again[j].Topic {
				t.Errorf("Topic order changed between runs: %q then %q", first[j].Topic, again[j].Topic)
			}
		}
	}
}

func TestCosineSimilarity_Basics(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("Expected similarity ~1 for identical vectors, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("Expected similarity 0 for orthogonal vectors, got %f", got)
	}
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Errorf("Expected similarity 0 for zero vector, got %f", got)
	}
}
