package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCache_GetSetInvalidate(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "/about-us")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "/about-us", []byte("about")))

	b, err := c.Get(ctx, "/about-us")
	require.NoError(t, err)
	require.Equal(t, []byte("about"), b)

	require.NoError(t, c.Invalidate(ctx, "/about-us"))
	_, err = c.Get(ctx, "/about-us")
	require.ErrorIs(t, err, ErrMiss)

	// repeated invalidation of an absent path is a no-op
	require.NoError(t, c.Invalidate(ctx, "/about-us"))
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemory(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/services", []byte("x")))
	time.Sleep(5 * time.Millisecond)

	_, err := c.Get(ctx, "/services")
	require.ErrorIs(t, err, ErrMiss)
}

func TestMemoryCache_InvalidateAll(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/a", []byte("a")))
	require.NoError(t, c.Set(ctx, "/b", []byte("b")))

	require.NoError(t, c.InvalidateAll(ctx))

	_, err := c.Get(ctx, "/a")
	require.ErrorIs(t, err, ErrMiss)
	_, err = c.Get(ctx, "/b")
	require.ErrorIs(t, err, ErrMiss)
}
