// Command api runs the TailorMate HTTP server.
//
// @title        TailorMate API
// @version      1.0
// @description  REST API for the TailorMate tailoring-business platform.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tailormate/tailormate-api/internal/api"
	"github.com/tailormate/tailormate-api/internal/core/service"
	"github.com/tailormate/tailormate-api/internal/infrastructure/bus"
	"github.com/tailormate/tailormate-api/internal/infrastructure/config"
	mongodb "github.com/tailormate/tailormate-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tailormate/tailormate-api/internal/infrastructure/db/redis"
	"github.com/tailormate/tailormate-api/internal/infrastructure/mail"
	"github.com/tailormate/tailormate-api/internal/infrastructure/storage"
	"github.com/tailormate/tailormate-api/pkg/logger"
	"github.com/tailormate/tailormate-api/pkg/password"
	"github.com/tailormate/tailormate-api/pkg/token"

	_ "github.com/tailormate/tailormate-api/docs"
)

const (
	resetThrottleWindow = time.Minute
	busBuffer           = 64
	shutdownGrace       = 10 * time.Second
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Datastores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	tailorRepo := mongodb.NewTailorRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	appointmentRepo := mongodb.NewAppointmentRepository(db)
	measurementRepo := mongodb.NewMeasurementRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":        userRepo.EnsureIndexes,
		"tailors":      tailorRepo.EnsureIndexes,
		"clients":      clientRepo.EnsureIndexes,
		"orders":       orderRepo.EnsureIndexes,
		"appointments": appointmentRepo.EnsureIndexes,
		"measurements": measurementRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Infrastructure ---
	eventBus := bus.New(busBuffer, log)
	defer eventBus.Close()

	uploads, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload dir unavailable")
	}

	mailer := mail.NewSMTPMailer(mail.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		User: cfg.SMTP.User,
		Pass: cfg.SMTP.Pass,
		From: cfg.SMTP.From,
	})
	throttle := redisdb.NewResetThrottle(rdb, resetThrottleWindow)

	hasher := password.NewHasher()
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// --- Services ---
	notificationService := service.NewNotificationService(notificationRepo, eventBus, log)
	authService := service.NewAuthService(userRepo, tailorRepo, hasher, tokens, mailer, throttle, cfg.ResetTokenTTL, cfg.AppBaseURL, log)
	userService := service.NewUserService(userRepo, hasher, log)
	tailorService := service.NewTailorService(tailorRepo, log)
	clientService := service.NewClientService(clientRepo, measurementRepo, orderRepo, log)
	orderService := service.NewOrderService(orderRepo, clientRepo, notificationService, log)
	appointmentService := service.NewAppointmentService(appointmentRepo, notificationService, log)
	measurementService := service.NewMeasurementService(measurementRepo, clientRepo, log)

	e := api.NewRouter(api.Deps{
		Log:           log,
		Tokens:        tokens,
		DB:            db,
		RDB:           rdb,
		Auth:          authService,
		Users:         userService,
		Tailors:       tailorService,
		Clients:       clientService,
		Orders:        orderService,
		Appointments:  appointmentService,
		Measurements:  measurementService,
		Notifications: notificationService,
		Bus:           eventBus,
		Uploads:       uploads,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
