package ai

import (
	"encoding/binary"
	"math"

	"github.com/go-crypt/x/blake2b"
)

// FallbackDim is the dimensionality of fallback vectors. It is intentionally
// different from typical embedding model dimensions, so a fallback query
// vector scores 0 against real embeddings instead of producing garbage ranks.
const FallbackDim = 256

// FallbackVector derives a deterministic unit vector from text. It is used
// when the embedding service is unreachable, so that retrieval degrades to
// stable pseudo-embeddings rather than failing outright. The same text always
// yields the same vector.
func FallbackVector(text string) []float32 {
	h, _ := blake2b.New(8, nil)
	h.Write([]byte(text))
	seed := binary.LittleEndian.Uint64(h.Sum(nil))

	vector := make([]float32, FallbackDim)
	var sumSquares float64
	for i := range vector {
		// LCG advance, then fold through sine to spread values over [-1, 1]
		seed = seed*6364136223846793005 + 1442695040888963407
		v := math.Sin(float64(seed >> 11))
		vector[i] = float32(v)
		sumSquares += v * v
	}

	if sumSquares > 0 {
		norm := float32(1.0 / math.Sqrt(sumSquares))
		for i := range vector {
			vector[i] *= norm
		}
	}

	return vector
}

// Truncate cuts text to at most max bytes. Embedding APIs reject oversized
// inputs, so callers truncate before sending.
func Truncate(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	return text[:max]
}
