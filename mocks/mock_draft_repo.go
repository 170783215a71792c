package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
)

// MockDraftRepo is a mock implementation of port.DraftRepository.
type MockDraftRepo struct {
	mock.Mock
}

func (m *MockDraftRepo) Snapshot(ctx context.Context, draft *domain.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftRepo) Load(ctx context.Context, activeKind domain.DocumentKind) (*domain.Draft, error) {
	args := m.Called(ctx, activeKind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Draft), args.Error(1)
}

func (m *MockDraftRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
