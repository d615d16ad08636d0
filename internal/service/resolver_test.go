package service

import (
	"context"
	"errors"
	"testing"

	"siteapi/internal/cms"
	cmsMocks "siteapi/internal/cms/mocks"
	"siteapi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPageResolver_ResolveService(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog hit renders even when the store is down", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		// every store call fails; the catalog entry must still resolve
		mCMS.On("ServicePagesByCategory", ctx, mock.Anything).
			Return(nil, errors.New("store unreachable"))

		r := NewPageResolver(mCMS)

		res, err := r.ResolveService(ctx, "cloud-transformation", false)

		require.NoError(t, err)
		assert.Equal(t, model.SourceCatalog, res.Source)
		assert.Equal(t, "Cloud Transformation", res.Page.Title)
		// related degrades to the catalog siblings
		require.Len(t, res.Related, 1)
		assert.Equal(t, "platform-reliability", res.Related[0].Slug)
		mCMS.AssertNotCalled(t, "ServicePageBySlug", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("catalog hit gathers related items from both sources", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePagesByCategory", ctx, "cloud").
			Return([]model.ServicePage{
				{Slug: "zero-trust-networking", Title: "Zero Trust Networking", Category: "cloud"},
				{Slug: "cloud-transformation", Title: "Cloud Transformation", Category: "cloud"}, // current slug, excluded
			}, nil)

		r := NewPageResolver(mCMS)

		res, err := r.ResolveService(ctx, "cloud-transformation", false)

		require.NoError(t, err)
		// catalog contributes platform-reliability (same category), store
		// contributes zero-trust; sorted by title
		require.Len(t, res.Related, 2)
		assert.Equal(t, "platform-reliability", res.Related[0].Slug)
		assert.Equal(t, "zero-trust-networking", res.Related[1].Slug)
	})

	t.Run("catalog miss falls through to the store", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePageBySlug", ctx, "fintech-advisory", false).
			Return(&model.ServicePage{ID: "doc-1", Slug: "fintech-advisory", Title: "Fintech Advisory"}, nil)

		r := NewPageResolver(mCMS)

		res, err := r.ResolveService(ctx, "fintech-advisory", false)

		require.NoError(t, err)
		assert.Equal(t, model.SourceCMS, res.Source)
		assert.Equal(t, "Fintech Advisory", res.Page.Title)
		mCMS.AssertExpectations(t)
	})

	t.Run("absent from both sources", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePageBySlug", ctx, "no-such", false).
			Return(nil, cms.ErrNotFound)

		r := NewPageResolver(mCMS)

		_, err := r.ResolveService(ctx, "no-such", false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("store failure on primary lookup is not found", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePageBySlug", ctx, "broken", false).
			Return(nil, errors.New("network error"))

		r := NewPageResolver(mCMS)

		_, err := r.ResolveService(ctx, "broken", false)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty slug", func(t *testing.T) {
		r := NewPageResolver(new(cmsMocks.MockClient))
		_, err := r.ResolveService(ctx, "", false)
		assert.ErrorIs(t, err, ErrSlugRequired)
	})

	t.Run("related list capped", func(t *testing.T) {
		many := make([]model.ServicePage, 8)
		titles := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
		for i := range many {
			many[i] = model.ServicePage{Slug: "svc-" + titles[i], Title: titles[i], Category: "strategy"}
		}
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePagesByCategory", ctx, "strategy").Return(many, nil)

		r := NewPageResolver(mCMS)

		res, err := r.ResolveService(ctx, "product-strategy", false)
		require.NoError(t, err)
		assert.Len(t, res.Related, relatedLimit)
		assert.Equal(t, "A", res.Related[0].Title)
	})
}

func TestPageResolver_ResolveCaseStudy(t *testing.T) {
	ctx := context.Background()

	t.Run("found with related", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("CaseStudyBySlug", ctx, "retail-replatform", false).
			Return(&model.CaseStudy{Slug: "retail-replatform", Title: "Retail Replatform", Category: "cloud"}, nil)
		mCMS.On("CaseStudiesByCategory", ctx, "cloud").
			Return([]model.CaseStudy{
				{Slug: "bank-migration", Title: "Bank Migration", Category: "cloud"},
				{Slug: "retail-replatform", Title: "Retail Replatform", Category: "cloud"},
			}, nil)

		r := NewPageResolver(mCMS)

		res, err := r.ResolveCaseStudy(ctx, "retail-replatform", false)
		require.NoError(t, err)
		require.Len(t, res.Related, 1)
		assert.Equal(t, "bank-migration", res.Related[0].Slug)
	})

	t.Run("related failure degrades to empty", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("CaseStudyBySlug", ctx, "x", false).
			Return(&model.CaseStudy{Slug: "x", Title: "X", Category: "data"}, nil)
		mCMS.On("CaseStudiesByCategory", ctx, "data").
			Return(nil, errors.New("timeout"))

		r := NewPageResolver(mCMS)

		res, err := r.ResolveCaseStudy(ctx, "x", false)
		require.NoError(t, err)
		assert.Empty(t, res.Related)
	})

	t.Run("not found", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("CaseStudyBySlug", ctx, "missing", false).Return(nil, cms.ErrNotFound)

		r := NewPageResolver(mCMS)

		_, err := r.ResolveCaseStudy(ctx, "missing", false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPageResolver_Services(t *testing.T) {
	ctx := context.Background()

	t.Run("merges and dedups by slug with catalog winning", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePages", ctx).Return([]model.ServicePage{
			{ID: "cms-dup", Slug: "data-engineering", Title: "Data Engineering (CMS)"},
			{ID: "cms-new", Slug: "ml-enablement", Title: "ML Enablement"},
		}, nil)

		r := NewPageResolver(mCMS)

		items, err := r.Services(ctx)
		require.NoError(t, err)

		bySlug := map[string]model.ServicePage{}
		for _, s := range items {
			bySlug[s.Slug] = s
		}
		// the catalog entry wins for the duplicated slug
		assert.Equal(t, "Data Engineering", bySlug["data-engineering"].Title)
		assert.Contains(t, bySlug, "ml-enablement")
		assert.Len(t, items, 5)
	})

	t.Run("store failure degrades to catalog", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("ServicePages", ctx).Return(nil, errors.New("unreachable"))

		r := NewPageResolver(mCMS)

		items, err := r.Services(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 4)
	})
}

func TestPageResolver_About(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("AboutPage", ctx, false).Return(&model.AboutPage{Title: "About Us"}, nil)

		r := NewPageResolver(mCMS)
		page, err := r.About(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, "About Us", page.Title)
	})

	t.Run("store failure", func(t *testing.T) {
		mCMS := new(cmsMocks.MockClient)
		mCMS.On("AboutPage", ctx, false).Return(nil, errors.New("boom"))

		r := NewPageResolver(mCMS)
		_, err := r.About(ctx, false)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
