package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "github.com/pathagar/bookshop-api/docs"
	"github.com/pathagar/bookshop-api/internal/api"
	"github.com/pathagar/bookshop-api/internal/core/service"
	"github.com/pathagar/bookshop-api/internal/infrastructure/config"
	mongoinfra "github.com/pathagar/bookshop-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/pathagar/bookshop-api/internal/infrastructure/db/redis"
	"github.com/pathagar/bookshop-api/internal/infrastructure/payment"
	"github.com/pathagar/bookshop-api/internal/infrastructure/queue"
	"github.com/pathagar/bookshop-api/internal/realtime"
	"github.com/pathagar/bookshop-api/pkg/logger"
)

// @title        Pathagar Bookshop API
// @version      1.0
// @description  REST backend for the Pathagar online bookshop.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongoinfra.Connect(ctx, mongoinfra.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisinfra.Connect(ctx, redisinfra.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongoinfra.NewUserRepository(db)
	cartRepo := mongoinfra.NewCartRepository(db)
	paymentRepo := mongoinfra.NewPaymentRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}
	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("cart index bootstrap failed")
	}
	if err := paymentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("payment index bootstrap failed")
	}

	// --- Process-wide handles, owned here for the process lifetime ---
	tokens := service.NewTokenService(cfg.JWTSecret)
	provider := payment.NewStripeProvider(cfg.Stripe.SecretKey)

	activityRepo := mongoinfra.NewActivityRepository(db)
	activityService := service.NewActivityService(activityRepo, log)
	dispatcher := queue.NewDispatcher(0, activityService, log)
	dispatcher.Start(ctx)

	hub := realtime.NewHub(tokens, cfg.Chat.RequireAuth, log)

	e := api.NewRouter(api.Deps{
		DB:       db,
		Redis:    rdb,
		Tokens:   tokens,
		Provider: provider,
		Activity: dispatcher,
		Hub:      hub,
		TokenTTL: cfg.TokenTTL,
		RoleTTL:  cfg.Redis.RoleTTL,
		Logger:   log,
	})

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		_ = e.Shutdown(context.Background())
	}()

	log.Info().Str("port", cfg.Port).Bool("chat_auth", cfg.Chat.RequireAuth).Msg("server starting")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Info().Err(err).Msg("server stopped")
	}
}
