package mocks

import (
	"context"
	"io"

	"siteapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ServicePageBySlug(ctx context.Context, slug string, draft bool) (*model.ServicePage, error) {
	args := m.Called(ctx, slug, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ServicePage), args.Error(1)
}

func (m *MockClient) ServicePages(ctx context.Context) ([]model.ServicePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServicePage), args.Error(1)
}

func (m *MockClient) ServicePagesByCategory(ctx context.Context, category string) ([]model.ServicePage, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServicePage), args.Error(1)
}

func (m *MockClient) CaseStudyBySlug(ctx context.Context, slug string, draft bool) (*model.CaseStudy, error) {
	args := m.Called(ctx, slug, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseStudy), args.Error(1)
}

func (m *MockClient) CaseStudies(ctx context.Context) ([]model.CaseStudy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseStudy), args.Error(1)
}

func (m *MockClient) CaseStudiesByCategory(ctx context.Context, category string) ([]model.CaseStudy, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseStudy), args.Error(1)
}

func (m *MockClient) AboutPage(ctx context.Context, draft bool) (*model.AboutPage, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AboutPage), args.Error(1)
}

func (m *MockClient) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockClient) CreateSubmission(ctx context.Context, sub *model.ContactSubmission) (string, error) {
	args := m.Called(ctx, sub)
	return args.String(0), args.Error(1)
}

func (m *MockClient) FetchAsset(ctx context.Context, ref string) (io.ReadCloser, string, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.String(1), args.Error(2)
}
