// Package app assembles the HTTP server: configuration, logging,
// telemetry, the provider client, services, and the chi router with its
// middleware chain. The application owns lifecycle; everything below it
// is constructed once and shut down in reverse order.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stocklens/internal/config"
	apperrors "stocklens/internal/errors"
	"stocklens/internal/infrastructure"
	custommw "stocklens/internal/middleware"
	"stocklens/internal/provider"
	"stocklens/internal/services"
	httptransport "stocklens/internal/transport/http"
	"stocklens/pkg/contracts"
)

// Application wires the full server together.
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Server        *http.Server

	client   *provider.Client
	stocks   *services.StockService
	analysis *services.AnalysisService
}

// NewApplication constructs the application from configuration. It fails
// fast on anything that would make the server useless: bad config,
// broken telemetry, an empty credential pool.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	client, err := provider.NewClient(cfg.Provider, logger, otelProviders.Fetch)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}

	stocks := services.NewStockService(client, cfg.Cache, logger)

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		client:        client,
		stocks:        stocks,
		analysis:      services.NewAnalysisService(stocks, logger),
	}
	app.createServer()

	return app, nil
}

// setupRouter builds the middleware chain and mounts all routes.
func (a *Application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.CORS(custommw.CORSConfig{}))
	if a.Config.Server.RateLimitRPS > 0 {
		limiter := custommw.NewRateLimiter(a.Config.Server.RateLimitRPS, a.Config.Server.RateLimitBurst, a.Logger)
		r.Use(limiter.Handler)
	}
	r.Use(custommw.Compress(5))

	errorHandler := apperrors.NewErrorHandler(a.Logger, false)
	stockHandler := httptransport.NewStockHandler(a.stocks, a.analysis, a.Logger, errorHandler)
	healthHandler := httptransport.NewHealthHandler(contracts.Version, a.client.PoolSize(), a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		// A zero WriteTimeout means no request deadline.
		if a.Config.Server.WriteTimeout > 0 {
			r.Use(custommw.Timeout(a.Config.Server.WriteTimeout, a.Logger))
		}

		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Mount("/stocks", stockHandler.Routes())
	})

	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	return r
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.setupRouter(),
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start runs the server until the context is canceled or the listener
// fails.
func (a *Application) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr),
			slog.String("version", contracts.Version),
			slog.Int("key_pool", a.client.PoolSize()))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		return a.Stop()
	}
}

// Stop shuts the server and telemetry down gracefully within the
// configured shutdown timeout.
func (a *Application) Stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	a.Logger.Info("shutting down")

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
	}
	infrastructure.CloseLogFile()

	return errors.Join(errs...)
}

// Run starts the application and blocks until SIGINT or SIGTERM.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Start(ctx)
}
