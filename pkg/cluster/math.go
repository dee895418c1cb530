package cluster

import "math"

// cosineSimilarity returns the cosine of the angle between two vectors.
// Zero vectors and dimension mismatches yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// cosineDistance is 1 - cosine similarity
func cosineDistance(a, b []float32) float64 {
	return 1 - cosineSimilarity(a, b)
}

// centroid computes the element-wise mean of a set of equal-length vectors.
// Returns nil when the set is empty or ragged.
func centroid(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil
	}
	mean := make([]float32, dim)
	for _, vec := range vectors {
		if len(vec) != dim {
			return nil
		}
		for i, v := range vec {
			mean[i] += v
		}
	}
	n := float32(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}
