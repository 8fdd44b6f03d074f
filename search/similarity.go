package search

import "math"

// Cosine computes the cosine similarity between two vectors:
// dot(a,b) / (norm(a) * norm(b)).
//
// Mismatched lengths return 0 rather than an error, which lets stored
// vectors of any dimensionality coexist with fallback query vectors.
// A zero-norm vector on either side also returns 0. The result is not
// clamped; floating-point drift may land slightly outside [-1, 1].
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
