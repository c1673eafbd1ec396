package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dayboard/dayboard/internal/clock"
	"github.com/dayboard/dayboard/internal/config"
	"github.com/dayboard/dayboard/internal/handlers"
	"github.com/dayboard/dayboard/internal/logger"
	"github.com/dayboard/dayboard/internal/middleware"
	"github.com/dayboard/dayboard/internal/progress"
	"github.com/dayboard/dayboard/internal/stats"
	"github.com/dayboard/dayboard/internal/store"
	"github.com/dayboard/dayboard/internal/suggest"
	"github.com/dayboard/dayboard/internal/tasks"
	"github.com/dayboard/dayboard/internal/telemetry"
	"github.com/dayboard/dayboard/internal/templates"
	"github.com/dayboard/dayboard/internal/workers"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.DebugMode || *debugFlag

	// Debug mode switches to the human-readable console encoder
	var zapLogger *zap.Logger
	if debugMode {
		zapLogger, err = logger.NewDevelopment(true)
	} else {
		zapLogger, err = logger.New(false)
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		if syncErr := logger.Sync(zapLogger); syncErr != nil {
			// Ignore sync errors on shutdown
			_ = syncErr
		}
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Duration("refresh_interval", cfg.RefreshInterval),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// OpenTelemetry tracing (optional)
	var tracerProvider *sdktrace.TracerProvider
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "dayboard-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := telemetry.Shutdown(shutdownCtx, tracerProvider); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Persistent store
	redisStore, err := store.NewRedisStore(cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_create_store", zap.Error(err))
	}
	defer func() {
		if err := redisStore.Close(); err != nil {
			zapLogger.Warn("failed_to_close_store", zap.Error(err))
		}
	}()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisStore.Ping(pingCtx); err != nil {
		pingCancel()
		zapLogger.Fatal("failed_to_connect_to_store", zap.Error(err))
	}
	pingCancel()
	zapLogger.Info("connected_to_store")

	// Engines
	systemClock := clock.System()
	ids := clock.UUIDs()

	statsEngine := stats.NewEngine(redisStore, zapLogger, cfg.Rules.PointsPerLevel)
	taskStore := tasks.NewStore(redisStore, systemClock, ids, zapLogger)
	suggester := suggest.NewEngine(suggest.Policy{
		SuppressIfCategoryPresent: cfg.Rules.SuppressIfCategoryPresent,
	})

	var templateSource templates.Source
	if cfg.TemplateBaseURL != "" {
		templateSource = templates.NewHTTPSource(cfg.TemplateBaseURL, zapLogger)
	}

	coordinator := progress.NewCoordinator(
		statsEngine,
		taskStore,
		suggester,
		templateSource,
		redisStore,
		systemClock,
		zapLogger,
		progress.Options{
			PointsPerTask:  cfg.Rules.PointsPerTask,
			MaxSuggestions: cfg.Rules.MaxSuggestions,
		},
	)

	// Handlers
	dashboardHandler := handlers.NewDashboardHandler(coordinator, zapLogger)
	healthChecker := handlers.NewHealthChecker(redisStore)

	// Router and middleware
	r := mux.NewRouter()

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("dayboard-api"))
	}
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.ContentType)
	r.Use(middleware.Recovery(zapLogger))
	r.Use(middleware.Logging(zapLogger))

	rateLimitMW, err := middleware.RateLimit(redisStore.Client(), cfg.RateLimit)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")

	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(rateLimitMW)
	dashboardHandler.RegisterRoutes(apiRouter)

	// Background refresh of today's tasks
	refreshCtx, refreshCancel := context.WithCancel(context.Background())
	defer refreshCancel()
	refresher := workers.NewRefresher(coordinator, cfg.RefreshInterval, zapLogger)
	go func() {
		if err := refresher.Start(refreshCtx); err != nil && err != context.Canceled {
			zapLogger.Error("refresher_stopped_with_error", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	refreshCancel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}
