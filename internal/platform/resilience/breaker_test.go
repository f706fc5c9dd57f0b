package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("connection refused")

func TestBreaker_OpensAndRecovers(t *testing.T) {
	t.Parallel()

	b := NewBreaker("postgres", BreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenProbes: 1})
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	var transitions []State
	b.OnStateChange(func(_ string, _, to State) { transitions = append(transitions, to) })

	fail := func(context.Context) error { return errStore }
	ok := func(context.Context) error { return nil }

	require.ErrorIs(t, b.Do(t.Context(), fail), errStore)
	assert.Equal(t, StateClosed, b.State())
	require.ErrorIs(t, b.Do(t.Context(), fail), errStore)
	assert.Equal(t, StateOpen, b.State())

	calls := 0
	err := b.Do(t.Context(), func(context.Context) error { calls++; return nil })
	require.ErrorIs(t, err, ErrCircuitOpen)
	assert.Zero(t, calls)

	now = now.Add(6 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Do(t.Context(), ok))
	assert.Equal(t, StateClosed, b.State())

	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	b := NewBreaker("postgres", BreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenProbes: 1})
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	require.Error(t, b.Do(t.Context(), func(context.Context) error { return errStore }))
	now = now.Add(2 * time.Second)
	require.ErrorIs(t, b.Do(t.Context(), func(context.Context) error { return errStore }), errStore)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_CancellationIsNotAFailure(t *testing.T) {
	t.Parallel()

	b := NewBreaker("postgres", BreakerConfig{Enabled: true, FailureThreshold: 1})
	err := b.Do(t.Context(), func(context.Context) error { return context.Canceled })
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_DisabledPassesThrough(t *testing.T) {
	t.Parallel()

	b := NewBreaker("postgres", BreakerConfig{Enabled: false, FailureThreshold: 1})
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, b.Do(t.Context(), func(context.Context) error { return errStore }), errStore)
	}
	assert.Equal(t, StateClosed, b.State())

	var nilBreaker *Breaker
	require.NoError(t, nilBreaker.Do(t.Context(), func(context.Context) error { return nil }))
}
