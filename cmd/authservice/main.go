package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderdispatcher/auth-service/internal/api"
	"github.com/orderdispatcher/auth-service/internal/api/middleware"
	"github.com/orderdispatcher/auth-service/internal/core/domain"
	"github.com/orderdispatcher/auth-service/internal/core/service"
	"github.com/orderdispatcher/auth-service/internal/infrastructure/config"
	mongodb "github.com/orderdispatcher/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/orderdispatcher/auth-service/internal/infrastructure/db/redis"
	"github.com/orderdispatcher/auth-service/internal/infrastructure/queue"
	"github.com/orderdispatcher/auth-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Connections (process lifetime, shared across requests) ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	amqpCfg := queue.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		Queue:      cfg.RabbitMQ.Queue,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
	}
	amqpConn, err := queue.Connect(amqpCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("rabbitmq connection failed")
	}
	defer amqpConn.Close()

	// --- Role mapping ---
	roleTable := domain.DefaultRoleTable()
	if cfg.RoleTable != "" {
		roleTable, err = domain.ParseRoleTable(cfg.RoleTable)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid ROLE_TABLE")
		}
	}

	// --- Stores ---
	credRepo := mongodb.NewCredentialRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	if err := credRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("credential indexes failed")
	}
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("profile indexes failed")
	}
	if err := credRepo.SeedRoles(ctx, roleNames(roleTable)); err != nil {
		log.Fatal().Err(err).Msg("role seeding failed")
	}

	// --- Services ---
	issuer := service.NewTokenService(
		credRepo,
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.ExpireMinutes)*time.Minute,
	)

	publisher := queue.NewRetryingPublisher(
		queue.NewProfilePublisher(amqpConn, amqpCfg),
		cfg.Publish.RetryWorkers,
		cfg.Publish.RetryAttempts,
		time.Duration(cfg.Publish.RetryDelaySec)*time.Second,
		log,
	)
	publisher.Start(ctx)

	authService := service.NewAuthService(credRepo, issuer, publisher, roleTable, log)
	profileService := service.NewProfileService(profileRepo, log)

	e := api.NewRouter(api.Deps{
		AuthService:    authService,
		ProfileService: profileService,
		AuthOptions: middleware.Options{
			Secret:   cfg.JWT.Secret,
			Issuer:   cfg.JWT.Issuer,
			Audience: cfg.JWT.Audience,
			Denylist: redisdb.NewTokenDenylist(rdb),
		},
		Mongo: db,
		Redis: rdb,
		AMQP:  amqpConn,
		Log:   log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("auth service started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("auth service stopped")
}

func roleNames(table domain.RoleTable) []string {
	seen := make(map[string]struct{}, len(table))
	names := make([]string, 0, len(table))
	for _, role := range table {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		names = append(names, role)
	}
	return names
}
