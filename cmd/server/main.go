package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm/logger"

	"stock-tracker-api/internal/application/services"
	"stock-tracker-api/internal/config"
	"stock-tracker-api/internal/infrastructure"
	"stock-tracker-api/internal/infrastructure/db/postgres"
	"stock-tracker-api/internal/infrastructure/messaging"
	"stock-tracker-api/internal/interface/httpapi"
)

func main() {
	config.LoadDotenv()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbLogLevel := logger.Warn
	if cfg.LogSQL {
		dbLogLevel = logger.Info
	}
	db, err := postgres.Open(postgres.Options{
		Driver:          cfg.DatabaseDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        dbLogLevel,
	})
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	log.Println("[db] connected and migrated")

	redisService := infrastructure.NewRedisService(ctx, infrastructure.RedisOptions{
		URL:      cfg.RedisURL,
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisService.Close()

	publisher, err := messaging.ConnectNats(cfg.NatsURL)
	if err != nil {
		log.Printf("[nats] connect failed, events disabled: %v", err)
		publisher = messaging.NewNatsPublisher(nil)
	}
	defer publisher.Close()

	googleVerifier, err := infrastructure.NewGoogleVerifier(ctx, cfg.GoogleClientID)
	if err != nil {
		log.Fatalf("[auth] %v", err)
	}
	if cfg.GoogleClientID == "" {
		log.Println("[auth] GOOGLE_CLIENT_ID not set; Google sign-in will reject every token")
	}

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(
		postgres.NewUserRepository(db),
		jwtService,
		infrastructure.NewBcryptHasher(cfg.BcryptCost),
		googleVerifier,
		redisService,
		publisher,
		infrastructure.NewResendMailer(cfg.EmailAPIKey, cfg.EmailSender),
		cfg.ProfileCacheTTL,
	)
	watchlistService := services.NewWatchlistService(postgres.NewWatchlistRepository(db), publisher)

	authLimiter := infrastructure.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute)
	go authLimiter.Run(ctx)

	e := httpapi.NewServer(httpapi.Dependencies{
		AuthService:      authService,
		WatchlistService: watchlistService,
		Tokens:           jwtService,
		AuthLimiter:      authLimiter,
		CORSOrigins:      cfg.CORSOrigins,
	})
	e.Server.ReadHeaderTimeout = 10 * time.Second

	go func() {
		addr := ":" + cfg.Port
		log.Printf("[http] listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[http] server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[http] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
