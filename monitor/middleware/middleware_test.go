package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/absmach/perfapi/monitor/middleware"
	"github.com/absmach/perfapi/monitor/mocks"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

var errBoom = errors.New("boom")

type methodCounter struct {
	mu     sync.Mutex
	total  float64
	method []string
}

func (c *methodCounter) With(labelValues ...string) metrics.Counter {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := 0; i+1 < len(labelValues); i += 2 {
		if labelValues[i] == "method" {
			c.method = append(c.method, labelValues[i+1])
		}
	}

	return c
}

func (c *methodCounter) Add(delta float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total += delta
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	req := profiling.RunRequest{TargetName: "fib_example", Runs: 2, MaxSeconds: 1}

	cases := []struct {
		desc    string
		err     error
		level   string
		message string
	}{
		{desc: "success", level: "level=INFO", message: "Run profile completed successfully"},
		{desc: "failure", err: errBoom, level: "level=WARN", message: "Run profile failed"},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			var logs bytes.Buffer
			svc := new(mocks.MockService)
			svc.On("RunProfile", mock.Anything, req).Return(profiling.Stats{ProfileID: "id-1", RunsExecuted: 2}, tc.err)

			lm := middleware.Logging(slog.New(slog.NewTextHandler(&logs, nil)), svc)
			_, err := lm.RunProfile(context.Background(), req)
			assert.ErrorIs(t, err, tc.err)

			out := logs.String()
			assert.Contains(t, out, tc.level)
			assert.Contains(t, out, tc.message)
			assert.Contains(t, out, "profile.target=fib_example")
			svc.AssertExpectations(t)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	t.Parallel()

	svc := new(mocks.MockService)
	svc.On("History", mock.Anything, time.Minute).Return([]snapshot.SystemSnapshot{}, nil)
	svc.On("ListTargets", mock.Anything).Return([]string{"a"}, nil)

	counter := &methodCounter{}
	mm := middleware.Metrics(counter, discard.NewHistogram(), svc)

	_, err := mm.History(context.Background(), time.Minute)
	require.NoError(t, err)
	_, err = mm.ListTargets(context.Background())
	require.NoError(t, err)
	_, err = mm.ListTargets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3.0, counter.total)
	assert.Equal(t, []string{"metrics-history", "list-targets", "list-targets"}, counter.method)
	svc.AssertExpectations(t)
}

func TestTracingMiddleware(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	req := profiling.RunRequest{TargetName: "flaky", Runs: 3, MaxSeconds: 1}
	svc := new(mocks.MockService)
	svc.On("RunProfile", mock.Anything, req).Return(profiling.Stats{}, errBoom)
	svc.On("ProcessMetrics", mock.Anything, int32(7)).Return(snapshot.ProcessSnapshot{PID: 7}, nil)

	tm := middleware.Tracing(tp.Tracer("test"), svc)
	_, err := tm.RunProfile(context.Background(), req)
	require.ErrorIs(t, err, errBoom)
	_, err = tm.ProcessMetrics(context.Background(), 7)
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "run-profile", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "process-metrics", spans[1].Name())
	assert.Equal(t, codes.Unset, spans[1].Status().Code)
}
