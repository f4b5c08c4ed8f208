package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	for _, w := range []int{1, 3, 50} {
		r, err := measure(context.Background(), w, 5)
		require.NoError(t, err)
		assert.Equal(t, 5, r.batches)
		assert.Equal(t, 5, r.tach.Calc().Count)
	}
}

func TestMeasureCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := measure(ctx, 2, 5)
	require.ErrorIs(t, err, context.Canceled)
}
