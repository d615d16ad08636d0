package cache

// Package cache holds the render cache for resolved pages, keyed by
// route path. Revalidation invalidates path keys; invalidating an
// already-absent path is a no-op, so repeated webhook deliveries are safe.

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when the path has no cached payload.
var ErrMiss = errors.New("cache: miss")

// PageCache stores rendered page payloads by route path.
type PageCache interface {
	// Get returns the cached payload for path, or ErrMiss.
	Get(ctx context.Context, path string) ([]byte, error)

	// Set stores the payload for path with the cache's configured TTL.
	Set(ctx context.Context, path string, payload []byte) error

	// Invalidate removes the given paths. Missing paths are ignored.
	Invalidate(ctx context.Context, paths ...string) error

	// InvalidateAll removes every cached page.
	InvalidateAll(ctx context.Context) error
}
