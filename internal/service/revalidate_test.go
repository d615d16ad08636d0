package service

import (
	"context"
	"testing"
	"time"

	"siteapi/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCache(t *testing.T, c cache.PageCache, paths ...string) {
	t.Helper()
	ctx := context.Background()
	for _, p := range paths {
		require.NoError(t, c.Set(ctx, p, []byte("cached:"+p)))
	}
}

func assertCached(t *testing.T, c cache.PageCache, path string, want bool) {
	t.Helper()
	_, err := c.Get(context.Background(), path)
	if want {
		assert.NoError(t, err, "expected %s to be cached", path)
	} else {
		assert.ErrorIs(t, err, cache.ErrMiss, "expected %s to be invalidated", path)
	}
}

func TestRevalidator_ServicePage(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	seedCache(t, c, "/services/x", "/services", "/case-studies", "/about-us")

	r := NewRevalidator(c)
	res, err := r.Revalidate(context.Background(), "servicePage", "x")

	require.NoError(t, err)
	assert.False(t, res.FlushedAll)
	assert.ElementsMatch(t, []string{"/services/x", "/services"}, res.Paths)

	// exactly the service paths, nothing else
	assertCached(t, c, "/services/x", false)
	assertCached(t, c, "/services", false)
	assertCached(t, c, "/case-studies", true)
	assertCached(t, c, "/about-us", true)
}

func TestRevalidator_CaseStudy(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	seedCache(t, c, "/case-studies/y", "/case-studies", "/services")

	r := NewRevalidator(c)
	res, err := r.Revalidate(context.Background(), "caseStudy", "y")

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/case-studies/y", "/case-studies"}, res.Paths)
	assertCached(t, c, "/services", true)
}

func TestRevalidator_AboutAndCategory(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	seedCache(t, c, "/about-us", "/services", "/categories", "/case-studies")

	r := NewRevalidator(c)

	_, err := r.Revalidate(context.Background(), "aboutUsPage", "")
	require.NoError(t, err)
	assertCached(t, c, "/about-us", false)
	assertCached(t, c, "/services", true)

	_, err = r.Revalidate(context.Background(), "category", "")
	require.NoError(t, err)
	assertCached(t, c, "/services", false)
	assertCached(t, c, "/categories", false)
	assertCached(t, c, "/case-studies", true)
}

func TestRevalidator_UnknownTypeFlushesEverything(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	seedCache(t, c, "/services", "/case-studies", "/about-us", "/services/x")

	r := NewRevalidator(c)
	res, err := r.Revalidate(context.Background(), "siteSettings", "")

	require.NoError(t, err)
	assert.True(t, res.FlushedAll)
	for _, p := range []string{"/services", "/case-studies", "/about-us", "/services/x"} {
		assertCached(t, c, p, false)
	}
}

func TestRevalidator_Idempotent(t *testing.T) {
	c := cache.NewMemory(time.Minute)
	seedCache(t, c, "/services/x", "/services")

	r := NewRevalidator(c)

	_, err := r.Revalidate(context.Background(), "servicePage", "x")
	require.NoError(t, err)
	// second delivery of the same webhook; same final state, no error
	_, err = r.Revalidate(context.Background(), "servicePage", "x")
	require.NoError(t, err)

	assertCached(t, c, "/services/x", false)
	assertCached(t, c, "/services", false)
}

func TestPathsToInvalidate_NoSlug(t *testing.T) {
	paths, all := PathsToInvalidate("servicePage", "")
	assert.False(t, all)
	assert.Equal(t, []string{"/services"}, paths)
}
