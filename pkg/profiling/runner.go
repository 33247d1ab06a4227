package profiling

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/pprof"
	"time"

	"github.com/google/uuid"
)

var ErrProbeUnavailable = errors.New("resource probe is not configured")

// Runner executes registered targets under the CPU profiler.
//
// The max_seconds budget is soft: it is checked between runs only, so a run
// in flight is never interrupted and the total time may exceed the budget by
// up to one run's duration. There is no way to cancel a run once started.
//
// Sampling happens every SamplingPeriod, so a session needs to spend well
// over that much CPU time in the target (for example through more runs)
// before the report lists any functions.
type Runner struct {
	registry *Registry
	profiler Profiler
	probe    ResourceProbe
	logger   *slog.Logger
}

func NewRunner(registry *Registry, profiler Profiler, probe ResourceProbe, logger *slog.Logger) *Runner {
	return &Runner{
		registry: registry,
		profiler: profiler,
		probe:    probe,
		logger:   logger,
	}
}

func (r *Runner) Run(ctx context.Context, req RunRequest) (Stats, error) {
	res, err := r.execute(ctx, req, false)
	if err != nil {
		return Stats{}, err
	}

	return res.Stats, nil
}

// RunDetailed behaves like Run and also records RSS and IO deltas around
// every invocation.
func (r *Runner) RunDetailed(ctx context.Context, req RunRequest) (DetailedStats, error) {
	if r.probe == nil {
		return DetailedStats{}, ErrProbeUnavailable
	}

	return r.execute(ctx, req, true)
}

func (r *Runner) execute(ctx context.Context, req RunRequest, detailed bool) (DetailedStats, error) {
	if err := req.Validate(); err != nil {
		return DetailedStats{}, err
	}
	target, err := r.registry.Get(req.TargetName)
	if err != nil {
		return DetailedStats{}, err
	}

	res := DetailedStats{
		Stats: Stats{
			ProfileID:  uuid.NewString(),
			TargetName: req.TargetName,
		},
	}
	if detailed {
		res.ResourceSamples = []ResourceUsageSample{}
	}

	r.logger.Info("starting profile",
		slog.String("profile_id", res.ProfileID),
		slog.String("target", req.TargetName),
		slog.Int("runs", req.Runs),
		slog.Float64("max_seconds", req.MaxSeconds),
		slog.Bool("detailed", detailed),
	)

	start := time.Now()
	var buf bytes.Buffer
	if err := r.profiler.StartCPUProfile(&buf); err != nil {
		return DetailedStats{}, fmt.Errorf("failed to start cpu profiler: %w", err)
	}

	var runErr error
	func() {
		defer r.profiler.StopCPUProfile()
		pprof.Do(ctx, pprof.Labels(profileLabel, res.ProfileID), func(ctx context.Context) {
			runErr = r.loop(ctx, target, req, start, detailed, &res)
		})
	}()
	if runErr != nil {
		r.logger.Warn("profile aborted",
			slog.String("profile_id", res.ProfileID),
			slog.String("target", req.TargetName),
			slog.Int("runs_executed", res.RunsExecuted),
			slog.Any("error", runErr),
		)

		return DetailedStats{}, runErr
	}

	text, err := renderReport(buf.Bytes(), reportHeader{
		profileID:    res.ProfileID,
		targetName:   req.TargetName,
		runsExecuted: res.RunsExecuted,
		elapsed:      time.Since(start),
	}, ReportLimit)
	if err != nil {
		return DetailedStats{}, err
	}
	res.StatsText = text
	res.TotalSeconds = time.Since(start).Seconds()

	r.logger.Info("profile completed",
		slog.String("profile_id", res.ProfileID),
		slog.String("target", req.TargetName),
		slog.Int("runs_executed", res.RunsExecuted),
		slog.Float64("total_seconds", res.TotalSeconds),
	)

	return res, nil
}

func (r *Runner) loop(ctx context.Context, target Target, req RunRequest, start time.Time, detailed bool, res *DetailedStats) error {
	for i := range req.Runs {
		var before ResourceCounters
		if detailed {
			var err error
			if before, err = r.probe.Read(ctx); err != nil {
				return err
			}
		}

		if err := invoke(ctx, target); err != nil {
			return &TargetExecutionError{
				ProfileID:    res.ProfileID,
				TargetName:   req.TargetName,
				RunsExecuted: res.RunsExecuted,
				Err:          err,
			}
		}
		res.RunsExecuted++

		if detailed {
			after, err := r.probe.Read(ctx)
			if err != nil {
				return err
			}
			res.ResourceSamples = append(res.ResourceSamples, usageSample(i, before, after))
		}

		if elapsed := time.Since(start); elapsed.Seconds() >= req.MaxSeconds {
			r.logger.Info("profile time budget reached",
				slog.String("profile_id", res.ProfileID),
				slog.Float64("max_seconds", req.MaxSeconds),
				slog.Int("runs_executed", res.RunsExecuted),
			)

			break
		}
	}

	return nil
}

func invoke(ctx context.Context, target Target) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("target panicked: %v", p)
		}
	}()
	_, err = target.Invoke(ctx)

	return err
}
