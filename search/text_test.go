package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainmentScore(t *testing.T) {
	t.Run("disjoint token sets score zero", func(t *testing.T) {
		score := ContainmentScore("shopping cart checkout", "kernel driver firmware")
		assert.Equal(t, 0.0, score)
	})

	t.Run("candidate superset scores one", func(t *testing.T) {
		query := "shopping cart checkout"
		candidate := "full e-commerce platform with shopping cart and checkout flow included"
		assert.Equal(t, 1.0, ContainmentScore(query, candidate))
	})

	t.Run("asymmetric, not Jaccard", func(t *testing.T) {
		query := "shopping cart checkout payments inventory"
		candidate := "shopping cart"
		// Two of five significant query tokens are contained, while the
		// reverse direction contains every token of the shorter text.
		forward := ContainmentScore(query, candidate)
		reverse := ContainmentScore(candidate, query)
		assert.Less(t, forward, reverse)
		assert.Equal(t, 1.0, reverse)
	})

	t.Run("partial overlap", func(t *testing.T) {
		query := "shopping cart checkout"
		candidate := "website with checkout page"
		assert.InDelta(t, 1.0/3.0, ContainmentScore(query, candidate), 1e-9)
	})

	t.Run("empty query scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ContainmentScore("", "anything at all"))
	})

	t.Run("short tokens are filtered", func(t *testing.T) {
		// Every query token is 3 characters or fewer, so the token set
		// is empty and the score is 0.
		assert.Equal(t, 0.0, ContainmentScore("a to of the", "a to of the"))
	})

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, 1.0, ContainmentScore("CHECKOUT", "simple checkout page"))
	})
}
