// @title                       Auth API
// @version                     1.0
// @description                 Issues opaque bearer tokens and serves endpoints gated behind them.
// @host                        localhost:7070
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/99minutos/auth-api/internal/api"
	"github.com/99minutos/auth-api/internal/infrastructure/config"
	apphttp "github.com/99minutos/auth-api/internal/infrastructure/http"
	"github.com/99minutos/auth-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "auth-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer app.Close()

	e := api.NewRouter(api.Dependencies{
		AuthService:       app.authService,
		Articles:          app.articles,
		HealthChecks:      app.healthChecks,
		Log:               log,
		LoadingDelay:      cfg.LoadingDelay,
		GenericAuthErrors: cfg.Auth.GenericErrors,
		EnableSwagger:     !cfg.IsProduction(),
		MetricsRegisterer: prometheus.DefaultRegisterer,
		MetricsGatherer:   prometheus.DefaultGatherer,
	})

	log.Info().
		Str("env", cfg.Env).
		Str("token_backend", cfg.Auth.TokenBackend).
		Str("user_backend", cfg.Auth.UserBackend).
		Dur("token_ttl", cfg.Auth.TokenTTL).
		Msg("auth api starting")

	if err := apphttp.Serve(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("server stopped")
}
