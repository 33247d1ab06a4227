package monitor

import (
	"context"
	"time"

	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
)

const (
	Title       = "PerfAPI"
	Version     = "1.0.0"
	Description = "Performance metrics and profiling of registered functions."
)

type Service interface {
	// SystemMetrics collects a snapshot of host counters synchronously.
	SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error)
	ProcessMetrics(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error)

	History(ctx context.Context, window time.Duration) ([]snapshot.SystemSnapshot, error)
	Summary(ctx context.Context, window time.Duration) (history.Summary, error)

	ListTargets(ctx context.Context) ([]string, error)
	RunProfile(ctx context.Context, req profiling.RunRequest) (profiling.Stats, error)
	RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (profiling.DetailedStats, error)

	// SimulateWork keeps a CPU busy for roughly d.
	SimulateWork(ctx context.Context, d time.Duration) (WorkResult, error)
	Health(ctx context.Context) (Health, error)
	Info(ctx context.Context) (Info, error)

	// Start launches the background history sampler.
	Start(ctx context.Context) error
	// Shutdown stops the sampler and waits for its loop to exit.
	Shutdown(ctx context.Context) error
}

// Runner executes profiling requests.
type Runner interface {
	Run(ctx context.Context, req profiling.RunRequest) (profiling.Stats, error)
	RunDetailed(ctx context.Context, req profiling.RunRequest) (profiling.DetailedStats, error)
}

type WorkResult struct {
	WorkMSRequested int64 `json:"work_ms_requested"`
	WorkMSActual    int64 `json:"work_ms_actual"`
	Iterations      int64 `json:"iterations"`
}

type Health struct {
	Status     string  `json:"status"`
	Time       float64 `json:"time"`
	InstanceID string  `json:"instance_id"`
}

type Info struct {
	Title       string            `json:"title"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Note        string            `json:"note"`
}
