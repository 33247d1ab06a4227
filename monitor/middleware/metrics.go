package middleware

import (
	"context"
	"time"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/go-kit/kit/metrics"
)

var _ monitor.Service = (*metricsMiddleware)(nil)

type metricsMiddleware struct {
	counter metrics.Counter
	latency metrics.Histogram
	svc     monitor.Service
}

func Metrics(counter metrics.Counter, latency metrics.Histogram, svc monitor.Service) monitor.Service {
	return &metricsMiddleware{
		counter: counter,
		latency: latency,
		svc:     svc,
	}
}

func (mm *metricsMiddleware) observe(method string, begin time.Time) {
	mm.counter.With("method", method).Add(1)
	mm.latency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (mm *metricsMiddleware) SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error) {
	defer mm.observe("system-metrics", time.Now())

	return mm.svc.SystemMetrics(ctx, opts)
}

func (mm *metricsMiddleware) ProcessMetrics(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error) {
	defer mm.observe("process-metrics", time.Now())

	return mm.svc.ProcessMetrics(ctx, pid)
}

func (mm *metricsMiddleware) History(ctx context.Context, window time.Duration) ([]snapshot.SystemSnapshot, error) {
	defer mm.observe("metrics-history", time.Now())

	return mm.svc.History(ctx, window)
}

func (mm *metricsMiddleware) Summary(ctx context.Context, window time.Duration) (history.Summary, error) {
	defer mm.observe("metrics-summary", time.Now())

	return mm.svc.Summary(ctx, window)
}

func (mm *metricsMiddleware) ListTargets(ctx context.Context) ([]string, error) {
	defer mm.observe("list-targets", time.Now())

	return mm.svc.ListTargets(ctx)
}

func (mm *metricsMiddleware) RunProfile(ctx context.Context, req profiling.RunRequest) (profiling.Stats, error) {
	defer mm.observe("run-profile", time.Now())

	return mm.svc.RunProfile(ctx, req)
}

func (mm *metricsMiddleware) RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (profiling.DetailedStats, error) {
	defer mm.observe("run-profile-detailed", time.Now())

	return mm.svc.RunProfileDetailed(ctx, req)
}

func (mm *metricsMiddleware) SimulateWork(ctx context.Context, d time.Duration) (monitor.WorkResult, error) {
	defer mm.observe("simulate-work", time.Now())

	return mm.svc.SimulateWork(ctx, d)
}

func (mm *metricsMiddleware) Health(ctx context.Context) (monitor.Health, error) {
	defer mm.observe("health", time.Now())

	return mm.svc.Health(ctx)
}

func (mm *metricsMiddleware) Info(ctx context.Context) (monitor.Info, error) {
	return mm.svc.Info(ctx)
}

func (mm *metricsMiddleware) Start(ctx context.Context) error {
	return mm.svc.Start(ctx)
}

func (mm *metricsMiddleware) Shutdown(ctx context.Context) error {
	return mm.svc.Shutdown(ctx)
}
