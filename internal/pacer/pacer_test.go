// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_FirstCallImmediate(t *testing.T) {
	p := New(time.Hour)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_SpacesConsecutiveCalls(t *testing.T) {
	interval := 50 * time.Millisecond
	p := New(interval)

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	// Three calls: immediate, +interval, +interval.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval-10*time.Millisecond)
}

func TestWait_ZeroIntervalNeverBlocks(t *testing.T) {
	p := New(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWait_ContextCancelled(t *testing.T) {
	p := New(time.Hour)
	require.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.Error(t, p.Wait(ctx))
}

func TestWait_NilPacer(t *testing.T) {
	var p *Pacer
	assert.NoError(t, p.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Wait(ctx), context.Canceled)
}
