package service

import (
	"context"

	"siteapi/internal/cache"
	"siteapi/internal/model"
)

// RevalidateResult reports what a webhook invalidated.
type RevalidateResult struct {
	Paths      []string
	FlushedAll bool
}

// Revalidator maps a content-type change notification to cache
// invalidations. Invalidation is idempotent and commutative, so repeated
// webhook deliveries are harmless.
type Revalidator interface {
	Revalidate(ctx context.Context, docType, slug string) (*RevalidateResult, error)
}

type revalidator struct {
	cache cache.PageCache
}

// NewRevalidator constructs a Revalidator over the page cache.
func NewRevalidator(c cache.PageCache) Revalidator {
	return &revalidator{cache: c}
}

// PathsToInvalidate is the fixed content-type → route-path mapping.
// The second return is true when the type is unrecognized and the whole
// cached tree must be flushed instead (conservative fallback: the mapping
// is not exhaustive of all content types editors can touch).
func PathsToInvalidate(docType, slug string) ([]string, bool) {
	switch docType {
	case model.TypeServicePage:
		paths := []string{"/services"}
		if slug != "" {
			paths = append([]string{"/services/" + slug}, paths...)
		}
		return paths, false
	case model.TypeCaseStudy:
		paths := []string{"/case-studies"}
		if slug != "" {
			paths = append([]string{"/case-studies/" + slug}, paths...)
		}
		return paths, false
	case model.TypeAboutPage:
		return []string{"/about-us"}, false
	case model.TypeCategory:
		// Categories are embedded in the services listing and exposed on
		// their own route.
		return []string{"/services", "/categories"}, false
	default:
		return nil, true
	}
}

func (r *revalidator) Revalidate(ctx context.Context, docType, slug string) (*RevalidateResult, error) {
	paths, flushAll := PathsToInvalidate(docType, slug)
	if flushAll {
		if err := r.cache.InvalidateAll(ctx); err != nil {
			return nil, err
		}
		return &RevalidateResult{FlushedAll: true}, nil
	}
	if err := r.cache.Invalidate(ctx, paths...); err != nil {
		return nil, err
	}
	return &RevalidateResult{Paths: paths}, nil
}
