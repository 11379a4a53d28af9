package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"retail-sales-api/internal/config"
	"retail-sales-api/internal/database"
	"retail-sales-api/internal/handlers"
	"retail-sales-api/internal/middleware"
	"retail-sales-api/internal/query"
	"retail-sales-api/internal/repositories"
	"retail-sales-api/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server owns the echo instance and the HTTP listener
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	registry *prometheus.Registry
	logger   *slog.Logger
}

// New wires repositories, services, handlers and middleware onto a fresh echo instance
func New(cfg *config.Config, db *database.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.Validator = handlers.NewValidator()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	s := &Server{
		echo:     e,
		cfg:      cfg,
		registry: prometheus.NewRegistry(),
		logger:   logger,
	}

	transactionRepo := repositories.NewTransactionRepository(db.DB)
	exportService := services.NewExportService()
	metrics := services.NewPrometheusMetrics(s.registry)
	transactionService := services.NewTransactionService(transactionRepo, exportService, metrics, cfg.Query.ExportLimit)

	transactionHandler := handlers.NewTransactionHandler(transactionService, exportService, handlers.TransactionHandlerConfig{
		PageOptions: query.PageOptions{
			DefaultLimit: cfg.Query.DefaultLimit,
			MaxLimit:     cfg.Query.MaxLimit,
		},
		ExposeErrors: !cfg.IsProduction(),
	})
	healthHandler := handlers.NewHealthCheckHandler(db)

	s.registerMiddleware()
	s.registerRoutes(transactionHandler, healthHandler)

	return s
}

func (s *Server) registerMiddleware() {
	s.echo.Use(middleware.PanicRecovery())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(middleware.RequestLogger(s.logger))
	s.echo.Use(middleware.SecurityHeaders(middleware.SecurityHeadersConfig{
		HSTS: s.cfg.IsProduction(),
	}))
	s.echo.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  s.cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.TraceIDHeader},
		ExposeHeaders: []string{echo.HeaderContentDisposition, middleware.TraceIDHeader},
	}))
}

func (s *Server) registerRoutes(th *handlers.TransactionHandler, hh *handlers.HealthCheckHandler) {
	s.echo.GET("/", hh.Index)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		prometheus.Gatherers{s.registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)))

	api := s.echo.Group("/api")
	api.GET("/health", hh.HealthCheck)

	// route level so unmatched methods still answer 405
	limiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		RequestsPerSecond: s.cfg.Security.RateLimitPerSecond,
		Burst:             s.cfg.Security.RateLimitBurst,
	})

	transactions := api.Group("/transactions")
	transactions.GET("", th.ListTransactions, limiter)
	transactions.GET("/filters", th.GetFilterOptions, limiter)
	transactions.GET("/export", th.ExportTransactions, limiter)
	transactions.GET("/stats", th.GetTransactionStats, limiter)
	transactions.GET("/:id", th.GetTransaction, limiter)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Address is the configured listen address
func (s *Server) Address() string {
	return net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("server starting", "address", s.Address(), "environment", s.cfg.Server.Environment)

	if err := s.echo.Start(s.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
