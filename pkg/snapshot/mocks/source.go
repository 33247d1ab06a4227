package mocks

import (
	"context"

	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/stretchr/testify/mock"
)

// MockSource is a mock implementation of the snapshot.Source interface for testing
type MockSource struct {
	mock.Mock
}

// SystemSnapshot returns the configured system snapshot
func (m *MockSource) SystemSnapshot(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(snapshot.SystemSnapshot), args.Error(1)
}

// ProcessSnapshot returns the configured process snapshot
func (m *MockSource) ProcessSnapshot(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error) {
	args := m.Called(ctx, pid)
	return args.Get(0).(snapshot.ProcessSnapshot), args.Error(1)
}
