package mocks

import (
	"context"

	"siteapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRevalidator struct {
	mock.Mock
}

func (m *MockRevalidator) Revalidate(ctx context.Context, docType, slug string) (*service.RevalidateResult, error) {
	args := m.Called(ctx, docType, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RevalidateResult), args.Error(1)
}
