package mocks

import (
	"context"
	"time"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/stretchr/testify/mock"
)

var _ monitor.Service = (*MockService)(nil)

// MockService is a mock implementation of the monitor.Service interface.
type MockService struct {
	mock.Mock
}

func (m *MockService) SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error) {
	args := m.Called(ctx, opts)

	return args.Get(0).(snapshot.SystemSnapshot), args.Error(1)
}

func (m *MockService) ProcessMetrics(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error) {
	args := m.Called(ctx, pid)

	return args.Get(0).(snapshot.ProcessSnapshot), args.Error(1)
}

func (m *MockService) History(ctx context.Context, window time.Duration) ([]snapshot.SystemSnapshot, error) {
	args := m.Called(ctx, window)

	return args.Get(0).([]snapshot.SystemSnapshot), args.Error(1)
}

func (m *MockService) Summary(ctx context.Context, window time.Duration) (history.Summary, error) {
	args := m.Called(ctx, window)

	return args.Get(0).(history.Summary), args.Error(1)
}

func (m *MockService) ListTargets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)

	return args.Get(0).([]string), args.Error(1)
}

func (m *MockService) RunProfile(ctx context.Context, req profiling.RunRequest) (profiling.Stats, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(profiling.Stats), args.Error(1)
}

func (m *MockService) RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (profiling.DetailedStats, error) {
	args := m.Called(ctx, req)

	return args.Get(0).(profiling.DetailedStats), args.Error(1)
}

func (m *MockService) SimulateWork(ctx context.Context, d time.Duration) (monitor.WorkResult, error) {
	args := m.Called(ctx, d)

	return args.Get(0).(monitor.WorkResult), args.Error(1)
}

func (m *MockService) Health(ctx context.Context) (monitor.Health, error) {
	args := m.Called(ctx)

	return args.Get(0).(monitor.Health), args.Error(1)
}

func (m *MockService) Info(ctx context.Context) (monitor.Info, error) {
	args := m.Called(ctx)

	return args.Get(0).(monitor.Info), args.Error(1)
}

func (m *MockService) Start(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockService) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
