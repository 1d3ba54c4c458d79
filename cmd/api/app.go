package main

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/99minutos/auth-api/internal/core/ports"
	"github.com/99minutos/auth-api/internal/core/service"
	"github.com/99minutos/auth-api/internal/infrastructure/config"
	mongostore "github.com/99minutos/auth-api/internal/infrastructure/db/mongo"
	redisstore "github.com/99minutos/auth-api/internal/infrastructure/db/redis"
	"github.com/99minutos/auth-api/internal/infrastructure/http/handlers"
	"github.com/99minutos/auth-api/internal/infrastructure/memory"
	"github.com/99minutos/auth-api/internal/infrastructure/queue"
	"github.com/99minutos/auth-api/pkg/logger"
)

const closeTimeout = 5 * time.Second

// app holds the wired collaborators and the resources to release on exit.
type app struct {
	authService  *service.AuthService
	articles     ports.ArticleCatalog
	healthChecks map[string]handlers.Check

	log         zerolog.Logger
	mongoClient *mongo.Client
	redisClient *goredis.Client
	dispatcher  *queue.Dispatcher
	stopAudit   context.CancelFunc
}

func buildApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	log := logger.Get()
	a := &app{
		articles:     memory.NewArticleCatalog(nil),
		healthChecks: map[string]handlers.Check{},
		log:          log,
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var (
		users ports.UserRepository
		sink  ports.AuditRepository = queue.NewLogSink(log)
	)

	switch cfg.Auth.UserBackend {
	case config.BackendMongo:
		client, db, connErr := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if connErr != nil {
			return nil, connErr
		}
		a.mongoClient = client

		repo := mongostore.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		users = repo
		sink = mongostore.NewAuditRepository(db)
		a.healthChecks["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		}
		log.Info().Str("db", cfg.Mongo.Database).Msg("connected to MongoDB")
	default:
		users = memory.NewUserRepository()
	}

	var tokens ports.TokenStore
	switch cfg.Auth.TokenBackend {
	case config.BackendRedis:
		client, connErr := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if connErr != nil {
			return nil, connErr
		}
		a.redisClient = client
		tokens = redisstore.NewTokenStore(client, cfg.Auth.TokenTTL)
		a.healthChecks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
	default:
		tokens = memory.NewTokenStore(cfg.Auth.TokenTTL)
	}

	seed := []service.SeedUser{{
		Login:    cfg.Seed.Login,
		Password: cfg.Seed.Password,
		Name:     cfg.Seed.Name,
		Avatar:   cfg.Seed.Avatar,
	}}
	if err := service.Seed(ctx, users, seed, log); err != nil {
		return nil, err
	}

	// Audit workers run until Close, which comes after the server has
	// stopped; events still buffered then are written before Wait returns.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	a.stopAudit = stopAudit
	a.dispatcher = queue.NewDispatcher(cfg.Audit.Workers, sink, log)
	a.dispatcher.Start(auditCtx)

	a.authService = service.NewAuthService(users, tokens, a.dispatcher, log)
	return a, nil
}

// Close stops the audit workers and disconnects from the backends.
func (a *app) Close() {
	if a.stopAudit != nil {
		a.stopAudit()
		a.dispatcher.Wait()
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close")
		}
	}
	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Warn().Err(err).Msg("mongo disconnect")
		}
	}
}
