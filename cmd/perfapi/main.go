package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/absmach/perfapi"
	"github.com/absmach/perfapi/monitor"
	"github.com/absmach/perfapi/monitor/api"
	"github.com/absmach/perfapi/monitor/middleware"
	"github.com/absmach/perfapi/pkg/history"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/absmach/perfapi/pkg/snapshot"
	"github.com/absmach/supermq/pkg/jaeger"
	"github.com/absmach/supermq/pkg/prometheus"
	"github.com/absmach/supermq/pkg/server"
	httpserver "github.com/absmach/supermq/pkg/server/http"
	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"
)

const (
	svcName       = "perfapi"
	defHTTPPort   = "8000"
	envPrefixHTTP = "PERFAPI_HTTP_"
	pathEnv       = ".env"
)

type envConfig struct {
	LogLevel        string        `env:"PERFAPI_LOG_LEVEL"            envDefault:"info"`
	InstanceID      string        `env:"PERFAPI_INSTANCE_ID"`
	ConfigFile      string        `env:"PERFAPI_CONFIG_FILE"`
	HistoryMax      int           `env:"PERFAPI_HISTORY_MAX_SAMPLES"  envDefault:"600"`
	HistoryInterval time.Duration `env:"PERFAPI_HISTORY_INTERVAL"     envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"PERFAPI_SHUTDOWN_TIMEOUT"     envDefault:"10s"`
	OTELURL         url.URL       `env:"PERFAPI_OTEL_URL"`
	TraceRatio      float64       `env:"PERFAPI_TRACE_RATIO"          envDefault:"0"`
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	envErr := loadEnvFile(pathEnv)

	cfg := envConfig{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to load configuration : %s", err.Error())
	}

	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("failed to parse log level: %s", err.Error())
	}
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	if envErr != nil {
		logger.Warn("failed to load env file", slog.String("path", pathEnv), slog.Any("error", envErr))
	}

	fileCfg := perfapi.Config{}
	if cfg.ConfigFile != "" {
		c, err := perfapi.LoadConfig(cfg.ConfigFile)
		if err != nil {
			logger.Error("failed to load config file", slog.String("path", cfg.ConfigFile), slog.Any("error", err))

			return
		}
		fileCfg = *c
	}
	if fileCfg.History.MaxSamples > 0 {
		cfg.HistoryMax = fileCfg.History.MaxSamples
	}
	if fileCfg.History.IntervalSeconds > 0 {
		cfg.HistoryInterval = fileCfg.History.Interval()
	}

	var tp trace.TracerProvider
	switch {
	case cfg.OTELURL == (url.URL{}):
		tp = noop.NewTracerProvider()
	default:
		sdktp, err := jaeger.NewProvider(ctx, svcName, cfg.OTELURL, cfg.InstanceID, cfg.TraceRatio)
		if err != nil {
			logger.Error("failed to initialize opentelemetry", slog.String("error", err.Error()))

			return
		}
		defer func() {
			if err := sdktp.Shutdown(context.Background()); err != nil {
				logger.Error("error shutting down tracer provider", slog.Any("error", err))
			}
		}()
		tp = sdktp
	}
	tracer := tp.Tracer(svcName)

	source := snapshot.NewSource()
	store := history.NewStore(cfg.HistoryMax)
	sampler := history.NewSampler(source, store, cfg.HistoryInterval, logger.With(slog.String("component", "history")))

	registry := profiling.NewRegistry(logger.With(slog.String("component", "profiling")))
	if !fileCfg.Profiler.DisableExamples {
		profiling.RegisterExamples(registry)
	}

	var probe profiling.ResourceProbe
	if !fileCfg.Profiler.DisableResourceProbe {
		p, err := profiling.NewProcessProbe()
		if err != nil {
			logger.Warn("resource probe unavailable, detailed profiling disabled", slog.Any("error", err))
		} else {
			probe = p
		}
	}
	runner := profiling.NewRunner(registry, profiling.NewCPUProfiler(), probe, logger.With(slog.String("component", "profiling")))

	svc := monitor.NewService(source, store, sampler, registry, runner, cfg.InstanceID)
	svc = middleware.Logging(logger, svc)
	svc = middleware.Tracing(tracer, svc)
	counter, latency := prometheus.MakeMetrics(svcName, "api")
	svc = middleware.Metrics(counter, latency, svc)

	if err := svc.Start(ctx); err != nil {
		logger.Error("failed to start history sampler", slog.String("error", err.Error()))

		return
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		if err := svc.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to stop history sampler", slog.Any("error", err))
		}
	}()

	httpServerConfig := server.Config{Port: defHTTPPort}
	if err := env.ParseWithOptions(&httpServerConfig, env.Options{Prefix: envPrefixHTTP}); err != nil {
		logger.Error(fmt.Sprintf("failed to load %s HTTP server configuration : %s", svcName, err.Error()))

		return
	}

	hs := httpserver.NewServer(ctx, cancel, svcName, httpServerConfig, api.MakeHandler(svc, logger), logger)

	g.Go(func() error {
		return hs.Start()
	})

	g.Go(func() error {
		return server.StopSignalHandler(ctx, cancel, logger, svcName, hs)
	})

	if err := g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%s service exited with error: %s", svcName, err))
	}
}

// loadEnvFile loads path into the environment when it exists.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	return godotenv.Load(path)
}
