package ai

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackVector(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := FallbackVector("build an e-commerce platform")
		b := FallbackVector("build an e-commerce platform")

		assert.Equal(t, a, b)
	})

	t.Run("different texts differ", func(t *testing.T) {
		a := FallbackVector("build an e-commerce platform")
		b := FallbackVector("build a blog")

		assert.NotEqual(t, a, b)
	})

	t.Run("fixed dimensionality", func(t *testing.T) {
		v := FallbackVector("anything")

		assert.Len(t, v, FallbackDim)
	})

	t.Run("unit norm", func(t *testing.T) {
		v := FallbackVector("some requirements text")

		var sum float64
		for _, x := range v {
			sum += float64(x) * float64(x)
		}
		require.InDelta(t, 1.0, sum, 1e-3)
	})

	t.Run("empty text still produces a vector", func(t *testing.T) {
		v := FallbackVector("")

		assert.Len(t, v, FallbackDim)
		for _, x := range v {
			require.False(t, math.IsNaN(float64(x)))
		}
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
	assert.Equal(t, "abcdef", Truncate("abcdef", 0))
	assert.Equal(t, "", Truncate("", 5))
}
