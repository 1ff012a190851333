package tmux

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client for testing.
//
// Example usage:
//
//	mockClient := new(MockClient)
//	mockClient.On("HasSession", mock.Anything).Return(true, nil)
//	mockClient.On("SetUserOption", mock.Anything, "@notes_count", "3").Return(nil)
//	mockClient.On("RefreshStatus", mock.Anything).Return(nil)
type MockClient struct {
	mock.Mock
}

// HasSession returns the mocked server state.
func (m *MockClient) HasSession(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// SetUserOption returns the mocked error.
func (m *MockClient) SetUserOption(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// RefreshStatus returns the mocked error.
func (m *MockClient) RefreshStatus(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Run returns mocked stdout, stderr and error.
func (m *MockClient) Run(ctx context.Context, args ...string) (string, string, error) {
	called := m.Called(ctx, args)
	return called.String(0), called.String(1), called.Error(2)
}
