package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/movemate/logistics-api/internal/api"
	"github.com/movemate/logistics-api/internal/core/service"
	"github.com/movemate/logistics-api/internal/infrastructure/db/mongo"
	redisdb "github.com/movemate/logistics-api/internal/infrastructure/db/redis"
	"github.com/movemate/logistics-api/internal/infrastructure/queue"
	"github.com/movemate/logistics-api/internal/pkg/config"
	"github.com/movemate/logistics-api/pkg/logger"
)

// @title        Movemate LogisticExpress API
// @version      1.0
// @description  Shipment tracking, support tickets and live chat for the Movemate logistics site and its admin console.
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	shipmentRepo := mongo.NewShipmentRepository(db)
	ticketRepo := mongo.NewTicketRepository(db)
	chatRepo := mongo.NewChatRepository(db)
	authRepo := mongo.NewAuthRepository(db)
	for _, ensure := range []func(context.Context) error{
		shipmentRepo.EnsureIndexes,
		ticketRepo.EnsureIndexes,
		chatRepo.EnsureIndexes,
		authRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	visitorStore := redisdb.NewVisitorStore(rdb)
	reminderGuard := redisdb.NewReminderGuard(rdb)

	// The dispatcher is built before the chat service so the reminder
	// scheduler can enqueue into it; the chat service is late-bound as the
	// dispatcher's processor in Start.
	dispatcher := queue.NewDispatcher(cfg.ChatWorkers, log)
	scheduler := service.NewTimerScheduler(
		time.Duration(cfg.ChatReminderSeconds)*time.Second,
		dispatcher.Enqueue,
		log,
	)
	defer scheduler.Stop()

	chatService := service.NewChatService(chatRepo, visitorStore, reminderGuard, scheduler, log)
	dispatcher.Start(ctx, chatService)

	svcs := api.Services{
		Shipments: service.NewShipmentService(shipmentRepo, log),
		Tickets:   service.NewTicketService(ticketRepo, log),
		Chats:     chatService,
		Analytics: service.NewAnalyticsService(shipmentRepo, log),
		Auth:      service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour),
	}

	e := api.NewRouter(db, rdb, svcs, api.RouterConfig{
		JWTSecret:     cfg.JWTSecret,
		PublicBaseURL: cfg.PublicBaseURL,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting api server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
