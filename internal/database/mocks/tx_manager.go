// Package mocks provides mock implementations for testing database consumers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of TxManager for testing.
//
// By default WithTx must be stubbed with On("WithTx", ...); use RunFn to make
// the stub execute the transactional function.
type MockTxManager struct {
	mock.Mock

	passthrough bool
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if m.passthrough {
		return fn(ctx)
	}
	return args.Error(0)
}

// NewPassthroughTxManager returns a mock whose WithTx always executes the
// given function without a real transaction, returning the function's error.
func NewPassthroughTxManager() *MockTxManager {
	m := &MockTxManager{passthrough: true}
	m.On("WithTx", mock.Anything, mock.AnythingOfType("func(context.Context) error")).
		Return(nil)
	return m
}
