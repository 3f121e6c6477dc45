package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterAllowsUpToLimitPerWindow(t *testing.T) {
	l := NewLimiter(3)
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow(100), "request %d should pass", i+1)
	}
	require.False(t, l.Allow(100))

	// Counts are per user.
	require.True(t, l.Allow(200))
}

func TestLimiterResetsAfterWindow(t *testing.T) {
	l := NewLimiter(1)
	base := time.Now()
	l.now = func() time.Time { return base }

	require.True(t, l.Allow(100))
	require.False(t, l.Allow(100))

	l.now = func() time.Time { return base.Add(time.Minute + time.Second) }
	require.True(t, l.Allow(100))
}
