package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGateway is a mock implementation of Gateway for testing.
//
// Example usage:
//
//	gw := new(MockGateway)
//	gw.On("Get", mock.Anything, "notesData").Return("", false, nil)
//	gw.On("Set", mock.Anything, "notesData", mock.Anything).Return(errors.New("offline"))
type MockGateway struct {
	mock.Mock
}

// Get returns the mocked value.
func (m *MockGateway) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Set records the write and returns the mocked error.
func (m *MockGateway) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Close returns the mocked error.
func (m *MockGateway) Close() error {
	args := m.Called()
	return args.Error(0)
}
