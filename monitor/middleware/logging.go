package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
)

var _ monitor.Service = (*loggingMiddleware)(nil)

type loggingMiddleware struct {
	logger *slog.Logger
	svc    monitor.Service
}

func Logging(logger *slog.Logger, svc monitor.Service) monitor.Service {
	return &loggingMiddleware{
		logger: logger,
		svc:    svc,
	}
}

func (lm *loggingMiddleware) SystemMetrics(ctx context.Context, opts snapshot.SystemOptions) (resp snapshot.SystemSnapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("options",
				slog.Bool("cpu", opts.IncludeCPU),
				slog.Bool("memory", opts.IncludeMemory),
				slog.Bool("disk_io", opts.IncludeDiskIO),
				slog.Bool("net_io", opts.IncludeNetIO),
				slog.String("cpu_interval", opts.CPUInterval.String()),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Collect system metrics failed", args...)

			return
		}
		lm.logger.Info("Collect system metrics completed successfully", args...)
	}(time.Now())

	return lm.svc.SystemMetrics(ctx, opts)
}

func (lm *loggingMiddleware) ProcessMetrics(ctx context.Context, pid int32) (resp snapshot.ProcessSnapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Int("pid", int(pid)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Collect process metrics failed", args...)

			return
		}
		lm.logger.Info("Collect process metrics completed successfully", args...)
	}(time.Now())

	return lm.svc.ProcessMetrics(ctx, pid)
}

func (lm *loggingMiddleware) History(ctx context.Context, window time.Duration) (resp []snapshot.SystemSnapshot, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("window", window.String()),
			slog.Int("samples", len(resp)),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Get metrics history failed", args...)

			return
		}
		lm.logger.Debug("Get metrics history completed successfully", args...)
	}(time.Now())

	return lm.svc.History(ctx, window)
}

func (lm *loggingMiddleware) Summary(ctx context.Context, window time.Duration) (resp history.Summary, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("window", window.String()),
			slog.Int("samples", resp.SampleCount),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Summarize metrics history failed", args...)

			return
		}
		lm.logger.Debug("Summarize metrics history completed successfully", args...)
	}(time.Now())

	return lm.svc.Summary(ctx, window)
}

func (lm *loggingMiddleware) ListTargets(ctx context.Context) (resp []string, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("List profile targets failed", args...)

			return
		}
		lm.logger.Debug("List profile targets completed successfully", args...)
	}(time.Now())

	return lm.svc.ListTargets(ctx)
}

func (lm *loggingMiddleware) RunProfile(ctx context.Context, req profiling.RunRequest) (resp profiling.Stats, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("profile",
				slog.String("target", req.TargetName),
				slog.Int("runs", req.Runs),
				slog.Float64("max_seconds", req.MaxSeconds),
				slog.String("id", resp.ProfileID),
				slog.Int("runs_executed", resp.RunsExecuted),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Run profile failed", args...)

			return
		}
		lm.logger.Info("Run profile completed successfully", args...)
	}(time.Now())

	return lm.svc.RunProfile(ctx, req)
}

func (lm *loggingMiddleware) RunProfileDetailed(ctx context.Context, req profiling.RunRequest) (resp profiling.DetailedStats, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.Group("profile",
				slog.String("target", req.TargetName),
				slog.Int("runs", req.Runs),
				slog.Float64("max_seconds", req.MaxSeconds),
				slog.String("id", resp.ProfileID),
				slog.Int("runs_executed", resp.RunsExecuted),
			),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Run detailed profile failed", args...)

			return
		}
		lm.logger.Info("Run detailed profile completed successfully", args...)
	}(time.Now())

	return lm.svc.RunProfileDetailed(ctx, req)
}

func (lm *loggingMiddleware) SimulateWork(ctx context.Context, d time.Duration) (resp monitor.WorkResult, err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
			slog.String("requested", d.String()),
			slog.Int64("iterations", resp.Iterations),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Simulate work failed", args...)

			return
		}
		lm.logger.Info("Simulate work completed successfully", args...)
	}(time.Now())

	return lm.svc.SimulateWork(ctx, d)
}

func (lm *loggingMiddleware) Health(ctx context.Context) (resp monitor.Health, err error) {
	return lm.svc.Health(ctx)
}

func (lm *loggingMiddleware) Info(ctx context.Context) (resp monitor.Info, err error) {
	return lm.svc.Info(ctx)
}

func (lm *loggingMiddleware) Start(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Start history sampler failed", args...)

			return
		}
		lm.logger.Info("Start history sampler completed successfully", args...)
	}(time.Now())

	return lm.svc.Start(ctx)
}

func (lm *loggingMiddleware) Shutdown(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		args := []any{
			slog.String("duration", time.Since(begin).String()),
		}
		if err != nil {
			args = append(args, slog.Any("error", err))
			lm.logger.Warn("Shutdown failed", args...)

			return
		}
		lm.logger.Info("Shutdown completed successfully", args...)
	}(time.Now())

	return lm.svc.Shutdown(ctx)
}
