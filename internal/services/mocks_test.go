package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/ruralpay/atm/internal/models"
)

// MockDirectory is a testify mock of the Directory interface.
type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) Lookup(id string) (*models.Account, bool) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*models.Account), args.Bool(1)
}

func (m *MockDirectory) IsLocked(id string) bool {
	args := m.Called(id)
	return args.Bool(0)
}
