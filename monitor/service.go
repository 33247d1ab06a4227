package monitor

import (
	"context"
	"time"

	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
)

const healthOK = "ok"

type service struct {
	source     snapshot.Source
	store      *history.Store
	sampler    *history.Sampler
	registry   *profiling.Registry
	runner     Runner
	instanceID string
}

func NewService(source snapshot.Source, store *history.Store, sampler *history.Sampler, registry *profiling.Registry, runner Runner, instanceID string) Service {
	return &service{
		source:     source,
		store:      store,
		sampler:    sampler,
		registry:   registry,
		runner:     runner,
		instanceID: instanceID,
	}
}

func (svc *service) SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error) {
	return svc.source.SystemSnapshot(ctx, opts)
}

func (svc *service) ProcessMetrics(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error) {
	return svc.source.ProcessSnapshot(ctx, pid)
}

func (svc *service) History(_ context.Context, window time.Duration) ([]snapshot.SystemSnapshot, error) {
	return svc.store.RecentSince(window), nil
}

func (svc *service) Summary(_ context.Context, window time.Duration) (history.Summary, error) {
	return svc.store.Summarize(window), nil
}

func (svc *service) ListTargets(context.Context) ([]string, error) {
	return svc.registry.List(), nil
}

func (svc *service) RunProfile(ctx context.Context, req profiling.RunRequest) (profiling.Stats, error) {
	return svc.runner.Run(ctx, req)
}

func (svc *service) RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (profiling.DetailedStats, error) {
	return svc.runner.RunDetailed(ctx, req)
}

func (svc *service) SimulateWork(_ context.Context, d time.Duration) (WorkResult, error) {
	start := time.Now()
	end := start.Add(d)

	var iterations int64
	for time.Now().Before(end) {
		iterations++
	}

	return WorkResult{
		WorkMSRequested: d.Milliseconds(),
		WorkMSActual:    time.Since(start).Milliseconds(),
		Iterations:      iterations,
	}, nil
}

func (svc *service) Health(context.Context) (Health, error) {
	return Health{
		Status:     healthOK,
		Time:       snapshot.UnixSeconds(time.Now()),
		InstanceID: svc.instanceID,
	}, nil
}

func (svc *service) Info(context.Context) (Info, error) {
	return Info{
		Title:       Title,
		Version:     Version,
		Description: Description,
		Endpoints: map[string]string{
			"system_metrics":  "/metrics/system",
			"system_history":  "/metrics/system/history",
			"system_summary":  "/metrics/system/summary",
			"process_metrics": "/metrics/process/{pid}",
			"profile_targets": "/profile/targets",
			"run_profile":     "/profile/run",
			"run_detailed":    "/profile/run_detailed",
			"simulate_work":   "/simulate_work",
			"health":          "/health",
			"prometheus":      "/metrics",
		},
		Note: "Register functions with the profiling registry at startup to make them available for profiling.",
	}, nil
}

func (svc *service) Start(ctx context.Context) error {
	svc.sampler.Start(ctx)

	return nil
}

func (svc *service) Shutdown(ctx context.Context) error {
	svc.sampler.Stop()

	return svc.sampler.Wait(ctx)
}
