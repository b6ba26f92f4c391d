package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draws(t *testing.T, r interface{ Intn(int) int }, n int) []int {
	t.Helper()
	out := make([]int, n)
	for i := range out {
		out[i] = r.Intn(1000)
	}
	return out
}

func TestFixedRNGIsReproducible(t *testing.T) {
	ctx := context.Background()
	a, err := NewFixedRNG(42).Stream(ctx, "analysis-1")
	require.NoError(t, err)
	b, err := NewFixedRNG(42).Stream(ctx, "analysis-1")
	require.NoError(t, err)

	assert.Equal(t, draws(t, a, 50), draws(t, b, 50))
}

func TestFixedRNGStreamsDifferByName(t *testing.T) {
	ctx := context.Background()
	r := NewFixedRNG(42)
	a, err := r.Stream(ctx, "analysis-1")
	require.NoError(t, err)
	b, err := r.Stream(ctx, "analysis-2")
	require.NoError(t, err)

	assert.NotEqual(t, draws(t, a, 50), draws(t, b, 50))
}

func TestSystemRNGSeededStreamMatchesFixed(t *testing.T) {
	ctx := context.Background()
	a, err := NewSystemRNG().SeededStream(ctx, "x", 7)
	require.NoError(t, err)
	b, err := NewFixedRNG(0).SeededStream(ctx, "x", 7)
	require.NoError(t, err)

	assert.Equal(t, draws(t, a, 20), draws(t, b, 20))
}

func TestStreamHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSystemRNG().Stream(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewFixedRNG(1).Stream(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSelectsAdapter(t *testing.T) {
	seed := int64(9)
	_, fixed := New(&seed).(*FixedRNG)
	assert.True(t, fixed)
	_, system := New(nil).(*SystemRNG)
	assert.True(t, system)
}
