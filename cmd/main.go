package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-power-scheduler/internal/config"
	"github.com/KasumiMercury/primind-power-scheduler/internal/handler"
	"github.com/KasumiMercury/primind-power-scheduler/internal/health"
	"github.com/KasumiMercury/primind-power-scheduler/internal/infra/pvoutput"
	"github.com/KasumiMercury/primind-power-scheduler/internal/infra/repository"
	"github.com/KasumiMercury/primind-power-scheduler/internal/infra/schedulerecorder"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/logging"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/metrics"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/middleware"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/priority"
	"github.com/KasumiMercury/primind-power-scheduler/internal/service/schedule"
)

// Version is set via ldflags at build time
var Version = "dev"

const serviceModule = logging.Module("power-scheduler")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	obs, err := initObservability(ctx, cfg.LogLevel)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	resultRecorder, err := schedulerecorder.NewRecorder(ctx, schedulerecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize schedule result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule result recorder", slog.String("error", err.Error()))
		}
	}()

	redisClient := redis.NewClient(cfg.Redis.Options())

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	plantCache := repository.NewPlantRepository(redisClient, cfg.PVOutput.PlantCacheTTL)
	plantSource := repository.NewCachedPlantSource(
		plantCache,
		pvoutput.NewClient(cfg.PVOutput.FetchTimeout, cfg.PVOutput.MaxPageBytes),
		scheduleMetrics,
	)

	scheduleService := schedule.NewService(
		plantSource,
		resultRecorder,
		priority.NewClassifier(),
		scheduleMetrics,
		cfg.Schedule,
		cfg.PVOutput.PlantURLs,
	)
	scheduleHandler := handler.NewScheduleHandler(scheduleService, cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-power-scheduler/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(Version, map[string]health.CheckFunc{
		"redis": health.RedisCheck(redisClient),
	})
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/schedule", scheduleHandler.HandleSchedule)
		v1.GET("/supply", scheduleHandler.HandleSupply)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("schedule_date", cfg.Schedule.Date.Format(time.DateOnly)),
			slog.Int("start_hour", cfg.Schedule.StartHour),
			slog.Int("end_hour", cfg.Schedule.EndHour),
			slog.Duration("interval", cfg.Schedule.Interval),
			slog.Int("plant_count", len(cfg.PVOutput.PlantURLs)),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
