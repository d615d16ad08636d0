package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"siteapi/internal/catalog"
	"siteapi/internal/cms"
	"siteapi/internal/model"
)

var (
	ErrSlugRequired = errors.New("slug is required")
	ErrNotFound     = errors.New("page not found")
)

// relatedLimit caps the related-items list on detail pages.
const relatedLimit = 4

// ResolvedService is a service page with its resolution source and
// related offerings.
type ResolvedService struct {
	Page    model.ServicePage   `json:"page"`
	Related []model.ServicePage `json:"related,omitempty"`
	Source  string              `json:"source"`
}

// ResolvedCaseStudy is a case study with related engagements.
type ResolvedCaseStudy struct {
	Page    model.CaseStudy   `json:"page"`
	Related []model.CaseStudy `json:"related,omitempty"`
	Source  string            `json:"source"`
}

// PageResolver is the single resolution strategy for every content route:
// static catalog first, then the content store. Handlers never consult
// either source directly.
//
// Primary lookups that fail in the store are reported as ErrNotFound.
// Non-critical reads (related items, listing merges) degrade to whatever
// is available rather than failing the page.
type PageResolver interface {
	// ResolveService returns the service page for slug. The catalog is
	// checked first; on a catalog hit the content store is not consulted.
	ResolveService(ctx context.Context, slug string, draft bool) (*ResolvedService, error)

	// ResolveCaseStudy returns the case study for slug. Case studies live
	// only in the content store.
	ResolveCaseStudy(ctx context.Context, slug string, draft bool) (*ResolvedCaseStudy, error)

	// Services returns the merged service listing: catalog entries plus
	// store entries, deduplicated by slug (catalog wins), sorted by title.
	Services(ctx context.Context) ([]model.ServicePage, error)

	// CaseStudies returns all case studies from the store.
	CaseStudies(ctx context.Context) ([]model.CaseStudy, error)

	// About returns the about-us page from the store.
	About(ctx context.Context, draft bool) (*model.AboutPage, error)

	// Categories returns all categories from the store.
	Categories(ctx context.Context) ([]model.Category, error)
}

type pageResolver struct {
	cms cms.Client
}

// NewPageResolver constructs a PageResolver over the given store client.
func NewPageResolver(client cms.Client) PageResolver {
	return &pageResolver{cms: client}
}

func (r *pageResolver) ResolveService(ctx context.Context, slug string, draft bool) (*ResolvedService, error) {
	if slug == "" {
		return nil, ErrSlugRequired
	}

	if s := catalog.ServiceBySlug(slug); s != nil {
		return &ResolvedService{
			Page:    *s,
			Related: r.relatedServices(ctx, s.Slug, s.Category),
			Source:  model.SourceCatalog,
		}, nil
	}

	page, err := r.cms.ServicePageBySlug(ctx, slug, draft)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			log.Printf("resolver: service lookup %q failed: %v", slug, err)
		}
		return nil, ErrNotFound
	}
	return &ResolvedService{
		Page:    *page,
		Related: r.relatedServices(ctx, page.Slug, page.Category),
		Source:  model.SourceCMS,
	}, nil
}

// relatedServices merges catalog and store entries sharing the category,
// deduplicated by slug with the catalog winning, excluding the current
// page, sorted by title, capped to relatedLimit. A store failure here is
// logged and degrades to catalog-only; it never fails the page.
func (r *pageResolver) relatedServices(ctx context.Context, current, category string) []model.ServicePage {
	if category == "" {
		return nil
	}

	candidates := catalog.ServicesByCategory(category)

	remote, err := r.cms.ServicePagesByCategory(ctx, category)
	if err != nil {
		log.Printf("resolver: related services for %q degraded: %v", category, err)
	} else {
		candidates = append(candidates, remote...)
	}

	seen := make(map[string]bool, len(candidates))
	out := make([]model.ServicePage, 0, relatedLimit)
	for _, c := range candidates {
		if c.Slug == current || seen[c.Slug] {
			continue
		}
		seen[c.Slug] = true
		out = append(out, c)
	}

	sortServicesByTitle(out)
	if len(out) > relatedLimit {
		out = out[:relatedLimit]
	}
	return out
}

func (r *pageResolver) ResolveCaseStudy(ctx context.Context, slug string, draft bool) (*ResolvedCaseStudy, error) {
	if slug == "" {
		return nil, ErrSlugRequired
	}

	page, err := r.cms.CaseStudyBySlug(ctx, slug, draft)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			log.Printf("resolver: case study lookup %q failed: %v", slug, err)
		}
		return nil, ErrNotFound
	}

	var related []model.CaseStudy
	if page.Category != "" {
		remote, err := r.cms.CaseStudiesByCategory(ctx, page.Category)
		if err != nil {
			log.Printf("resolver: related case studies for %q degraded: %v", page.Category, err)
		} else {
			seen := map[string]bool{}
			for _, c := range remote {
				if c.Slug == page.Slug || seen[c.Slug] {
					continue
				}
				seen[c.Slug] = true
				related = append(related, c)
			}
			sort.Slice(related, func(i, j int) bool {
				return strings.ToLower(related[i].Title) < strings.ToLower(related[j].Title)
			})
			if len(related) > relatedLimit {
				related = related[:relatedLimit]
			}
		}
	}

	return &ResolvedCaseStudy{Page: *page, Related: related, Source: model.SourceCMS}, nil
}

func (r *pageResolver) Services(ctx context.Context) ([]model.ServicePage, error) {
	out := catalog.Services()
	seen := make(map[string]bool, len(out))
	for _, s := range out {
		seen[s.Slug] = true
	}

	remote, err := r.cms.ServicePages(ctx)
	if err != nil {
		// Listing degrades to catalog-only when the store is unavailable.
		log.Printf("resolver: service listing degraded to catalog: %v", err)
	} else {
		for _, s := range remote {
			if seen[s.Slug] {
				continue
			}
			seen[s.Slug] = true
			out = append(out, s)
		}
	}

	sortServicesByTitle(out)
	return out, nil
}

func (r *pageResolver) CaseStudies(ctx context.Context) ([]model.CaseStudy, error) {
	items, err := r.cms.CaseStudies(ctx)
	if err != nil {
		log.Printf("resolver: case study listing failed: %v", err)
		return nil, ErrNotFound
	}
	return items, nil
}

func (r *pageResolver) About(ctx context.Context, draft bool) (*model.AboutPage, error) {
	page, err := r.cms.AboutPage(ctx, draft)
	if err != nil {
		if !errors.Is(err, cms.ErrNotFound) {
			log.Printf("resolver: about page lookup failed: %v", err)
		}
		return nil, ErrNotFound
	}
	return page, nil
}

func (r *pageResolver) Categories(ctx context.Context) ([]model.Category, error) {
	items, err := r.cms.Categories(ctx)
	if err != nil {
		log.Printf("resolver: category listing failed: %v", err)
		return nil, ErrNotFound
	}
	return items, nil
}

func sortServicesByTitle(items []model.ServicePage) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].Title) < strings.ToLower(items[j].Title)
	})
}
