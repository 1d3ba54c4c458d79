package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/auth-api/docs"
	"github.com/99minutos/auth-api/internal/api/handler"
	"github.com/99minutos/auth-api/internal/api/middleware"
	"github.com/99minutos/auth-api/internal/core/ports"
	"github.com/99minutos/auth-api/internal/infrastructure/http/handlers"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	AuthService ports.AuthService
	Articles    ports.ArticleCatalog
	// HealthChecks are pinged by /health/ready, keyed by dependency name.
	HealthChecks map[string]handlers.Check

	Log               zerolog.Logger
	LoadingDelay      time.Duration
	GenericAuthErrors bool
	EnableSwagger     bool

	// Metrics are served on /metrics when both are set.
	MetricsRegisterer prometheus.Registerer
	MetricsGatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))
	if deps.MetricsRegisterer != nil && deps.MetricsGatherer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Namespace:  "auth",
			Subsystem:  "http",
			Registerer: deps.MetricsRegisterer,
		}))
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{})))
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.GenericAuthErrors, deps.Log)
	profileHandler := handler.NewProfileHandler()
	newsHandler := handler.NewNewsHandler(deps.Articles)
	statusHandler := handler.NewStatusHandler(deps.LoadingDelay)
	authMiddleware := middleware.Auth(deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth", authHandler.Login)

	private := e.Group("/private", authMiddleware)
	private.GET("/me", profileHandler.Me)
	private.GET("/news", newsHandler.List)

	// --- Status routes (no auth required) ---
	e.GET("/", statusHandler.Root)
	e.GET("/loading", statusHandler.Loading)
	e.GET("/data", statusHandler.Data)
	e.GET("/error", statusHandler.Error)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	if deps.EnableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
