package middleware

import (
	"context"
	"time"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ monitor.Service = (*tracing)(nil)

type tracing struct {
	tracer trace.Tracer
	svc    monitor.Service
}

func Tracing(tracer trace.Tracer, svc monitor.Service) monitor.Service {
	return &tracing{tracer, svc}
}

func (tm *tracing) SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (snapshot.SystemSnapshot, error) {
	ctx, span := tm.tracer.Start(ctx, "system-metrics", trace.WithAttributes(
		attribute.Bool("include_cpu", opts.IncludeCPU),
		attribute.Bool("include_memory", opts.IncludeMemory),
		attribute.Bool("include_disk_io", opts.IncludeDiskIO),
		attribute.Bool("include_net_io", opts.IncludeNetIO),
		attribute.Float64("cpu_interval", opts.CPUInterval.Seconds()),
	))
	defer span.End()

	return tm.svc.SystemMetrics(ctx, opts)
}

func (tm *tracing) ProcessMetrics(ctx context.Context, pid int32) (snapshot.ProcessSnapshot, error) {
	ctx, span := tm.tracer.Start(ctx, "process-metrics", trace.WithAttributes(
		attribute.Int("pid", int(pid)),
	))
	defer span.End()

	return tm.svc.ProcessMetrics(ctx, pid)
}

func (tm *tracing) History(ctx context.Context, window time.Duration) ([]snapshot.SystemSnapshot, error) {
	ctx, span := tm.tracer.Start(ctx, "metrics-history", trace.WithAttributes(
		attribute.Float64("window_seconds", window.Seconds()),
	))
	defer span.End()

	return tm.svc.History(ctx, window)
}

func (tm *tracing) Summary(ctx context.Context, window time.Duration) (history.Summary, error) {
	ctx, span := tm.tracer.Start(ctx, "metrics-summary", trace.WithAttributes(
		attribute.Float64("window_seconds", window.Seconds()),
	))
	defer span.End()

	return tm.svc.Summary(ctx, window)
}

func (tm *tracing) ListTargets(ctx context.Context) ([]string, error) {
	ctx, span := tm.tracer.Start(ctx, "list-targets")
	defer span.End()

	return tm.svc.ListTargets(ctx)
}

func (tm *tracing) RunProfile(ctx context.Context, req profiling.RunRequest) (resp profiling.Stats, err error) {
	ctx, span := tm.tracer.Start(ctx, "run-profile", trace.WithAttributes(
		attribute.String("target", req.TargetName),
		attribute.Int("runs", req.Runs),
		attribute.Float64("max_seconds", req.MaxSeconds),
	))
	defer func() {
		endProfileSpan(span, resp.ProfileID, resp.RunsExecuted, err)
	}()

	return tm.svc.RunProfile(ctx, req)
}

func (tm *tracing) RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (resp profiling.DetailedStats, err error) {
	ctx, span := tm.tracer.Start(ctx, "run-profile-detailed", trace.WithAttributes(
		attribute.String("target", req.TargetName),
		attribute.Int("runs", req.Runs),
		attribute.Float64("max_seconds", req.MaxSeconds),
	))
	defer func() {
		endProfileSpan(span, resp.ProfileID, resp.RunsExecuted, err)
	}()

	return tm.svc.RunProfileDetailed(ctx, req)
}

func (tm *tracing) SimulateWork(ctx context.Context, d time.Duration) (monitor.WorkResult, error) {
	ctx, span := tm.tracer.Start(ctx, "simulate-work", trace.WithAttributes(
		attribute.Int64("work_ms", d.Milliseconds()),
	))
	defer span.End()

	return tm.svc.SimulateWork(ctx, d)
}

func (tm *tracing) Health(ctx context.Context) (monitor.Health, error) {
	return tm.svc.Health(ctx)
}

func (tm *tracing) Info(ctx context.Context) (monitor.Info, error) {
	return tm.svc.Info(ctx)
}

func (tm *tracing) Start(ctx context.Context) error {
	return tm.svc.Start(ctx)
}

func (tm *tracing) Shutdown(ctx context.Context) error {
	ctx, span := tm.tracer.Start(ctx, "shutdown")
	defer span.End()

	return tm.svc.Shutdown(ctx)
}

func endProfileSpan(span trace.Span, profileID string, runs int, err error) {
	span.SetAttributes(
		attribute.String("profile_id", profileID),
		attribute.Int("runs_executed", runs),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
