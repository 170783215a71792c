package mocks

import (
	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
)

// MockPrinter is a mock implementation of port.Printer.
type MockPrinter struct {
	mock.Mock
}

func (m *MockPrinter) Print(doc *domain.Document) ([]byte, error) {
	args := m.Called(doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
