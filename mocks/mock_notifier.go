package mocks

import (
	"github.com/stretchr/testify/mock"

	"docdesk/internal/domain"
)

// MockNotifier is a mock implementation of port.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(notice domain.Notice) {
	m.Called(notice)
}
