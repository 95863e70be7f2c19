package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleRateLimiterWait(t *testing.T) {
	t.Run("first call passes immediately", func(t *testing.T) {
		r := NewSimpleRateLimiter(50*time.Millisecond, 100*time.Millisecond)

		start := time.Now()
		require.NoError(t, r.Wait(context.Background()))
		assert.Less(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("second call waits at least the minimum", func(t *testing.T) {
		r := NewSimpleRateLimiter(50*time.Millisecond, 60*time.Millisecond)

		require.NoError(t, r.Wait(context.Background()))
		start := time.Now()
		require.NoError(t, r.Wait(context.Background()))
		assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		r := NewSimpleRateLimiter(5*time.Second, 10*time.Second)
		require.NoError(t, r.Wait(context.Background()))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := r.Wait(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestSimpleRateLimiterCalculateDelay(t *testing.T) {
	t.Run("jitter stays inside the bounds", func(t *testing.T) {
		r := NewSimpleRateLimiter(100*time.Millisecond, 200*time.Millisecond)
		for i := 0; i < 50; i++ {
			d := r.calculateDelay()
			assert.GreaterOrEqual(t, d, 100*time.Millisecond)
			assert.Less(t, d, 200*time.Millisecond)
		}
	})

	t.Run("inverted bounds collapse to the minimum", func(t *testing.T) {
		r := NewSimpleRateLimiter(200*time.Millisecond, 100*time.Millisecond)
		assert.Equal(t, 200*time.Millisecond, r.calculateDelay())
	})
}

func TestAdaptiveRateLimiter(t *testing.T) {
	t.Run("sustained success shortens the delay down to the floor", func(t *testing.T) {
		a := NewAdaptiveRateLimiter(1*time.Second, 2*time.Second)

		for i := 0; i < 6; i++ {
			a.RecordSuccess()
		}
		assert.Equal(t, 900*time.Millisecond, a.minDelay)

		for i := 0; i < 200; i++ {
			a.RecordSuccess()
		}
		assert.Equal(t, 200*time.Millisecond, a.minDelay, "recovery never goes below the floor")
	})

	t.Run("repeated errors back off", func(t *testing.T) {
		a := NewAdaptiveRateLimiter(400*time.Millisecond, 800*time.Millisecond)

		a.RecordError()
		a.RecordError()
		assert.Equal(t, 400*time.Millisecond, a.minDelay, "below the threshold nothing changes")

		a.RecordError()
		assert.Equal(t, 600*time.Millisecond, a.minDelay)
		assert.Equal(t, 1200*time.Millisecond, a.maxDelay)
	})

	t.Run("backoff is capped", func(t *testing.T) {
		a := NewAdaptiveRateLimiter(20*time.Second, 50*time.Second)

		for i := 0; i < 3; i++ {
			a.RecordError()
		}
		assert.Equal(t, 30*time.Second, a.minDelay)
		assert.Equal(t, 60*time.Second, a.maxDelay)
	})

	t.Run("success resets the error streak", func(t *testing.T) {
		a := NewAdaptiveRateLimiter(400*time.Millisecond, 800*time.Millisecond)

		a.RecordError()
		a.RecordError()
		a.RecordSuccess()
		a.RecordError()
		a.RecordError()
		assert.Equal(t, 400*time.Millisecond, a.minDelay, "streak restarted after the success")
	})
}
