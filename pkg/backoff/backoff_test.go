// Copyright (C) 2025 Cosmic JS, Inc.
// See LICENSE for copying information.

package backoff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff(t *testing.T) {
	ctx := context.Background()

	e := ExponentialBackoff{Min: time.Millisecond, Max: 4 * time.Millisecond}
	require.False(t, e.Maxed())

	require.NoError(t, e.Wait(ctx))
	require.Equal(t, time.Millisecond, e.Delay)

	require.NoError(t, e.Wait(ctx))
	require.Equal(t, 2*time.Millisecond, e.Delay)

	require.NoError(t, e.Wait(ctx))
	require.Equal(t, 4*time.Millisecond, e.Delay)
	require.True(t, e.Maxed())

	// The delay is capped, not doubled past the max.
	require.NoError(t, e.Wait(ctx))
	require.Equal(t, 4*time.Millisecond, e.Delay)
}

func TestWaitHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := ExponentialBackoff{Min: time.Minute, Max: time.Hour}
	require.ErrorIs(t, e.Wait(ctx), context.Canceled)
}

func TestDefaultsApplied(t *testing.T) {
	var e ExponentialBackoff
	require.False(t, e.Maxed())
	require.Equal(t, 5*time.Second, e.Max)
	require.Equal(t, 100*time.Millisecond, e.Min)
}
