package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int) *FixedWindowLimiter {
	t.Helper()
	srv := miniredis.RunT(t)
	limiter, err := NewRedisFixedWindowLimiter("redis://"+srv.Addr(), "test:ratelimit", limit, time.Minute)
	if err != nil {
		t.Fatalf("NewRedisFixedWindowLimiter() error = %v", err)
	}
	t.Cleanup(func() { limiter.Close() })
	return limiter
}

func TestAllowUnderLimit(t *testing.T) {
	limiter := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "a@x.com")
		assert.NoError(t, err)
		assert.True(t, ok, "hit %d should be allowed", i+1)
	}

	ok, err := limiter.Allow(ctx, "a@x.com")
	assert.NoError(t, err)
	assert.False(t, ok, "hit over the limit should be rejected")
}

func TestAllowIsPerKey(t *testing.T) {
	limiter := newTestLimiter(t, 1)
	ctx := context.Background()

	ok, _ := limiter.Allow(ctx, "a@x.com")
	assert.True(t, ok)
	ok, _ = limiter.Allow(ctx, "a@x.com")
	assert.False(t, ok)

	// A different subject has its own window.
	ok, _ = limiter.Allow(ctx, "b@x.com")
	assert.True(t, ok)
}

func TestNilLimiterAllowsEverything(t *testing.T) {
	var limiter *FixedWindowLimiter

	ok, err := limiter.Allow(context.Background(), "anyone")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, limiter.Close())
}

func TestRequiresRedisURL(t *testing.T) {
	_, err := NewRedisFixedWindowLimiter("", "p", 10, time.Minute)
	assert.Error(t, err)
}
