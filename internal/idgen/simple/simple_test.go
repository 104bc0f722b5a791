package simple

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_StartsAtBase(t *testing.T) {
	g := New(1000)

	for want := 1000; want < 1005; want++ {
		id, err := g.GetID(context.Background())
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}
}

func TestGenerator_Exhausted(t *testing.T) {
	g := New(math.MaxInt)

	_, err := g.GetID(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}
