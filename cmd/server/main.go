package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/mvarma/portfolio-api/internal/config"
	"github.com/mvarma/portfolio-api/internal/database"
	"github.com/mvarma/portfolio-api/internal/handlers"
	"github.com/mvarma/portfolio-api/internal/logger"
	"github.com/mvarma/portfolio-api/internal/middleware"
	"github.com/mvarma/portfolio-api/internal/ratelimit"
	"github.com/mvarma/portfolio-api/internal/services/newsletter"
	"github.com/mvarma/portfolio-api/internal/services/relay"
	"github.com/mvarma/portfolio-api/internal/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/zap"
)

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	newLogger := logger.NewProductionLogger
	if debugMode {
		newLogger = logger.NewDevelopmentLogger
	}
	zapLogger, err := newLogger(debugMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("frontend_url", cfg.FrontendURL),
		zap.Bool("relay_configured", cfg.RelayEndpointURL != ""),
		zap.Bool("store_configured", cfg.DatabaseURL != ""),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	var tracerProvider interface{ Shutdown(context.Context) error }
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(context.Background(), "portfolio-api", cfg.OTELEndpoint)
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized",
					zap.String("endpoint", cfg.OTELEndpoint),
				)
				defer func() {
					shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer shutdownCancel()
					if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	// Connect to the subscriber store when configured. A missing DATABASE_URL
	// degrades the newsletter endpoints to 503 rather than preventing startup.
	var db *database.DB
	var newsletterService *newsletter.Service
	if cfg.DatabaseURL != "" {
		db, err = database.New(cfg.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_database")

		subscriberRepo := database.NewSubscriberRepository(db)
		newsletterService = newsletter.NewService(subscriberRepo, zapLogger)
	} else {
		zapLogger.Warn("database_not_configured_newsletter_disabled")
	}

	relayClient := relay.NewClient(cfg.RelayEndpointURL, zapLogger)
	if !relayClient.Configured() {
		zapLogger.Warn("relay_not_configured_contact_disabled")
	}

	// Independent per-endpoint sliding windows over the same 15-minute span
	contactLimiter := ratelimit.NewSlidingWindow(cfg.RateLimitWindow, cfg.ContactRateMax)
	newsletterLimiter := ratelimit.NewSlidingWindow(cfg.RateLimitWindow, cfg.NewsletterRateMax)

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	go contactLimiter.Start(sweepCtx, ratelimit.DefaultSweepInterval)
	go newsletterLimiter.Start(sweepCtx, ratelimit.DefaultSweepInterval)

	// Initialize handlers
	contactHandler := handlers.NewContactHandler(relayClient, contactLimiter, zapLogger)
	newsletterHandler := handlers.NewNewsletterHandler(newsletterService, newsletterLimiter, zapLogger)
	healthChecker := handlers.NewHealthChecker(db)

	// Setup router
	r := mux.NewRouter()

	zapLogger.Info("setting_up_middleware")

	if cfg.OTELEnabled && tracerProvider != nil {
		r.Use(otelmux.Middleware("portfolio-api"))
		zapLogger.Info("otel_middleware_enabled")
	}
	// 1. Security headers (should be set on all responses)
	r.Use(middleware.SecurityHeaders(cfg.EnableHSTS))
	// 2. CORS for the frontend origin
	r.Use(middleware.CORS([]string{cfg.FrontendURL}))
	// 3. Request size limits (protects against DoS)
	r.Use(middleware.MaxRequestSize(middleware.DefaultMaxRequestSize))
	// 4. Content-Type validation for POST/PATCH/PUT requests
	r.Use(middleware.ContentType)
	// 5. Request timeout
	r.Use(middleware.Timeout(30 * time.Second))
	// 6. Error handler (catches panics)
	r.Use(middleware.ErrorHandler(zapLogger))
	// 7. Audit logging (rate limit violations)
	r.Use(middleware.Audit(zapLogger))
	// 8. Logging (innermost, executes last before handler)
	r.Use(middleware.Logging(zapLogger))

	// Coarse API-wide rate limit. The submission endpoints additionally
	// enforce their own sliding windows.
	globalLimitMW, err := middleware.GlobalRateLimit(cfg.GlobalRateLimit, cfg.RedisURL)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limit_middleware", zap.Error(err))
	}

	// Public routes (no rate limiting for health checks)
	r.HandleFunc("/healthz", healthChecker.HealthCheck).Methods("GET")
	r.HandleFunc("/version", versionInfo).Methods("GET")

	// OpenAPI spec (public)
	openAPIHandler := handlers.NewOpenAPIHandler(filepath.Join("api", "openapi", "openapi.yaml"))
	openAPIHandler.RegisterRoutes(r)

	// API v1 routes
	apiRouter := r.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(globalLimitMW)

	contactHandler.RegisterRoutes(apiRouter.PathPrefix("/contact").Subrouter())
	newsletterHandler.RegisterRoutes(apiRouter.PathPrefix("/newsletter").Subrouter())

	// Catch-all OPTIONS handler for preflight requests
	// The CORS middleware will have set headers before this is called
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Setup server
	srv := &http.Server{
		Addr:           ":" + cfg.ServerPort,
		Handler:        r,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("server_starting",
			zap.String("port", cfg.ServerPort),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")
	sweepCancel()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server_forced_to_shutdown", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func versionInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"version":"1.0.0","service":"portfolio-api"}`)); err != nil {
		// Response is already committed, nothing to do
		_ = err
	}
}
