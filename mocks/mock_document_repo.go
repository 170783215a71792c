package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
)

// MockDocumentRepo is a mock implementation of port.DocumentRepository.
type MockDocumentRepo struct {
	mock.Mock
}

func (m *MockDocumentRepo) FindDuplicate(ctx context.Context, kind domain.DocumentKind, clientEmail, companyName string) (*domain.Document, error) {
	args := m.Called(ctx, kind, clientEmail, companyName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Save(ctx context.Context, doc *domain.Document) (uuid.UUID, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockDocumentRepo) All(ctx context.Context, kind domain.DocumentKind) ([]domain.Document, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Recent(ctx context.Context, kind domain.DocumentKind, n int) ([]domain.Document, error) {
	args := m.Called(ctx, kind, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) Search(ctx context.Context, kind domain.DocumentKind, term string) ([]domain.Document, error) {
	args := m.Called(ctx, kind, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepo) ClearAll(ctx context.Context, kind domain.DocumentKind) error {
	args := m.Called(ctx, kind)
	return args.Error(0)
}

func (m *MockDocumentRepo) Stats(ctx context.Context, kind domain.DocumentKind) (*domain.Stats, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}
