// Package builder contains unit tests for the configuration primitives.
package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNGOptions(t *testing.T) {
	t.Parallel()

	require.Nil(t, newBuilderConfig().rng, "no randomness by default")

	a := newBuilderConfig(WithSeed(7)).rng
	b := newBuilderConfig(WithSeed(7)).rng
	require.NotNil(t, a)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Int63(), b.Int63(), "same seed, same stream")
	}

	r := rand.New(rand.NewSource(1))
	assert.Same(t, r, newBuilderConfig(WithSeed(3), WithRand(r)).rng, "last option wins")
}
