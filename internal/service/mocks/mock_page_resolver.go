package mocks

import (
	"context"

	"siteapi/internal/model"
	"siteapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockPageResolver struct {
	mock.Mock
}

func (m *MockPageResolver) ResolveService(ctx context.Context, slug string, draft bool) (*service.ResolvedService, error) {
	args := m.Called(ctx, slug, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResolvedService), args.Error(1)
}

func (m *MockPageResolver) ResolveCaseStudy(ctx context.Context, slug string, draft bool) (*service.ResolvedCaseStudy, error) {
	args := m.Called(ctx, slug, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ResolvedCaseStudy), args.Error(1)
}

func (m *MockPageResolver) Services(ctx context.Context) ([]model.ServicePage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ServicePage), args.Error(1)
}

func (m *MockPageResolver) CaseStudies(ctx context.Context) ([]model.CaseStudy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseStudy), args.Error(1)
}

func (m *MockPageResolver) About(ctx context.Context, draft bool) (*model.AboutPage, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AboutPage), args.Error(1)
}

func (m *MockPageResolver) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}
