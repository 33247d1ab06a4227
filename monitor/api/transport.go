package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/pkg/api"
	"github.com/absmach/perfapi/pkg/profiling"
	apiutil "github.com/absmach/supermq/api/http/util"
	"github.com/go-chi/chi/v5"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	pidKey = "pid"

	includeCPUKey    = "include_cpu"
	includeMemoryKey = "include_memory"
	includeDiskIOKey = "include_disk_io"
	includeNetIOKey  = "include_net_io"
	cpuIntervalKey   = "cpu_interval"
	windowKey        = "window_seconds"
	workMSKey        = "work_ms"
)

func MakeHandler(svc monitor.Service, logger *slog.Logger) http.Handler {
	mux := chi.NewRouter()

	opts := []kithttp.ServerOption{
		kithttp.ServerErrorEncoder(api.LoggingErrorEncoder(logger, api.EncodeError)),
	}

	mux.Get("/metrics/system", otelhttp.NewHandler(kithttp.NewServer(
		systemMetricsEndpoint(svc),
		decodeSystemMetricsReq,
		api.EncodeResponse,
		opts...,
	), "system-metrics").ServeHTTP)
	mux.Get("/metrics/system/history", otelhttp.NewHandler(kithttp.NewServer(
		historyEndpoint(svc),
		decodeWindowReq(defHistoryWindow),
		api.EncodeResponse,
		opts...,
	), "metrics-history").ServeHTTP)
	mux.Get("/metrics/system/summary", otelhttp.NewHandler(kithttp.NewServer(
		summaryEndpoint(svc),
		decodeWindowReq(defSummaryWindow),
		api.EncodeResponse,
		opts...,
	), "metrics-summary").ServeHTTP)
	mux.Get("/metrics/process/{pid}", otelhttp.NewHandler(kithttp.NewServer(
		processMetricsEndpoint(svc),
		decodeProcessMetricsReq,
		api.EncodeResponse,
		opts...,
	), "process-metrics").ServeHTTP)

	mux.Route("/profile", func(r chi.Router) {
		r.Get("/targets", otelhttp.NewHandler(kithttp.NewServer(
			listTargetsEndpoint(svc),
			decodeEmptyReq,
			api.EncodeResponse,
			opts...,
		), "list-targets").ServeHTTP)
		r.Post("/run", otelhttp.NewHandler(kithttp.NewServer(
			runProfileEndpoint(svc),
			decodeRunProfileReq,
			api.EncodeResponse,
			opts...,
		), "run-profile").ServeHTTP)
		r.Post("/run_detailed", otelhttp.NewHandler(kithttp.NewServer(
			runProfileDetailedEndpoint(svc),
			decodeRunProfileReq,
			api.EncodeResponse,
			opts...,
		), "run-profile-detailed").ServeHTTP)
	})

	mux.Get("/simulate_work", otelhttp.NewHandler(kithttp.NewServer(
		simulateWorkEndpoint(svc),
		decodeSimulateWorkReq,
		api.EncodeResponse,
		opts...,
	), "simulate-work").ServeHTTP)
	mux.Get("/health", kithttp.NewServer(
		healthEndpoint(svc),
		decodeEmptyReq,
		api.EncodeResponse,
		opts...,
	).ServeHTTP)
	mux.Get("/", kithttp.NewServer(
		infoEndpoint(svc),
		decodeEmptyReq,
		api.EncodeResponse,
		opts...,
	).ServeHTTP)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

func decodeEmptyReq(context.Context, *http.Request) (any, error) {
	return nil, nil
}

func decodeSystemMetricsReq(_ context.Context, r *http.Request) (any, error) {
	var (
		req systemMetricsReq
		err error
	)
	if req.includeCPU, err = apiutil.ReadBoolQuery(r, includeCPUKey, true); err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}
	if req.includeMemory, err = apiutil.ReadBoolQuery(r, includeMemoryKey, true); err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}
	if req.includeDiskIO, err = apiutil.ReadBoolQuery(r, includeDiskIOKey, true); err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}
	if req.includeNetIO, err = apiutil.ReadBoolQuery(r, includeNetIOKey, true); err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}
	if req.cpuInterval, err = apiutil.ReadNumQuery[float64](r, cpuIntervalKey, defCPUInterval); err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}

	return req, nil
}

func decodeProcessMetricsReq(_ context.Context, r *http.Request) (any, error) {
	pid, err := strconv.ParseInt(chi.URLParam(r, pidKey), 10, 32)
	if err != nil {
		return nil, errors.Join(apiutil.ErrValidation, fmt.Errorf("pid must be an integer: %w", err))
	}

	return processMetricsReq{pid: pid}, nil
}

func decodeWindowReq(def float64) kithttp.DecodeRequestFunc {
	return func(_ context.Context, r *http.Request) (any, error) {
		w, err := apiutil.ReadNumQuery[float64](r, windowKey, def)
		if err != nil {
			return nil, errors.Join(apiutil.ErrValidation, err)
		}

		return windowReq{windowSeconds: w}, nil
	}
}

func decodeRunProfileReq(_ context.Context, r *http.Request) (any, error) {
	if !strings.Contains(r.Header.Get("Content-Type"), api.ContentType) {
		return nil, errors.Join(apiutil.ErrValidation, apiutil.ErrUnsupportedContentType)
	}

	req := runProfileReq{
		RunRequest: profiling.RunRequest{
			Runs:       profiling.DefaultRuns,
			MaxSeconds: profiling.DefaultMaxSeconds,
		},
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.Join(err, apiutil.ErrValidation)
	}

	return req, nil
}

func decodeSimulateWorkReq(_ context.Context, r *http.Request) (any, error) {
	ms, err := apiutil.ReadNumQuery[int64](r, workMSKey, defWorkMS)
	if err != nil {
		return nil, errors.Join(apiutil.ErrValidation, err)
	}

	return simulateWorkReq{workMS: ms}, nil
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
