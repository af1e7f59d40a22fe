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

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/charts"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/config"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	apierrors "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/errors"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/exporter"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/infrastructure"
	customMiddleware "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/middleware"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/series"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/services"
	handlers "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/transport/http"
	ws "github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/websocket"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.BusinessMetrics
	Services      *ServiceContainer
	WebSocketHub  *ws.Hub

	errorHandler *apierrors.ErrorHandler
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	// Dataset is nil when the outcomes file could not be loaded.
	Dataset   *dataset.Dataset
	LoadErr   error
	Dashboard *services.DashboardService
	Health    *services.HealthService
	Validator *customMiddleware.Validator
	Renderer  *charts.Renderer
	Exporter  *exporter.Exporter
}

// NewApplication loads the configuration, initializes the global logger and
// builds the application.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires every component from cfg. A dataset that fails to load is not
// fatal: the server starts, reports not ready and answers data requests with
// 503 until restarted with a readable file.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	ctx := context.Background()

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("dataset", cfg.Dataset.File))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, contracts.Version, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateBusinessMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		errorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	app.initializeServices(ctx)
	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices loads the dataset and builds the services on top of it
func (a *Application) initializeServices(ctx context.Context) {
	ds, loadErr := dataset.Load(ctx, a.Config.Dataset.File)

	var source services.SeriesSource
	if loadErr != nil {
		a.Logger.ErrorContext(ctx, "Dataset not loaded, serving without data",
			slog.String("file", a.Config.Dataset.File),
			slog.String("error", loadErr.Error()))
	} else {
		source = series.NewBuilder(ds)
	}

	a.WebSocketHub = ws.NewHub(a.Metrics, a.Logger)

	a.Services = &ServiceContainer{
		Dataset:   ds,
		LoadErr:   loadErr,
		Dashboard: services.NewDashboardService(source, a.Metrics, a.Logger),
		Health:    services.NewHealthService(ds, loadErr, a.WebSocketHub, a.Logger),
		Validator: customMiddleware.NewValidator(a.Logger),
		Renderer:  charts.NewRenderer(a.Config.Charts.Width, a.Config.Charts.Height, a.Metrics, a.Logger),
		Exporter:  exporter.New(exporter.WriteOptions{BOMPrefix: true}, a.Metrics, a.Logger),
	}
}

// setupRouter builds the route tree. /ws and /metrics sit outside the main
// middleware group: the websocket connection is hijacked and must not be
// wrapped, timed out or compressed.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.NotFound(a.errorHandler.NotFound)
	r.MethodNotAllowed(a.errorHandler.MethodNotAllowed)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Preflight requests never reach a route, so CORS runs before routing.
	if a.Config.Security.EnableCORS {
		r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
			AllowedOrigins: a.Config.Security.AllowedOrigins,
			Logger:         a.Logger,
		}))
	}

	dispatcher := ws.NewDispatcher(a.Services.Dashboard, a.Services.Validator, a.Metrics, a.Logger)
	r.Method(http.MethodGet, "/ws", ws.NewHandler(a.WebSocketHub, dispatcher, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.Logger))
	r.Method(http.MethodGet, "/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP))

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(a.errorHandler.Recoverer)
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
				a.errorHandler,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger, a.errorHandler))
		r.Use(customMiddleware.Compress(5))

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.Services.Health, a.Logger)
	r.Mount("/api/health", healthHandler.Routes())
	r.Get("/api/version", healthHandler.Version)

	dashboardHandler := handlers.NewDashboardHandler(
		a.Services.Dashboard,
		a.Services.Renderer,
		a.Services.Exporter,
		a.Services.Validator,
		a.Logger,
		a.errorHandler,
	)
	r.Mount("/api", dashboardHandler.Routes())
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the websocket hub and the HTTP server. A listener failure
// calls cancel.
func (a *Application) Start(ctx context.Context, cancel context.CancelFunc) error {
	a.WebSocketHub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.ErrorContext(ctx, "Server error", slog.String("error", err.Error()))
			cancel()
		}
	}()

	ready := a.Services.Dataset != nil
	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", a.Server.Addr),
		slog.Bool("dataset_loaded", ready))
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	// Shutdown leaves hijacked connections alone; the hub closes them.
	a.WebSocketHub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(ctx, stop); err != nil {
		return err
	}

	<-ctx.Done()
	a.Logger.Info("Received interrupt signal")

	return a.Stop(context.Background())
}
