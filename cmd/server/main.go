package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/segyhp/invoice-marketplace/internal/config"
	"github.com/segyhp/invoice-marketplace/internal/handler"
	"github.com/segyhp/invoice-marketplace/internal/idempotency"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	"github.com/segyhp/invoice-marketplace/internal/service"
	"github.com/segyhp/invoice-marketplace/internal/storage"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
	"github.com/segyhp/invoice-marketplace/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	checks := []handler.Check{
		{Name: "database", Ping: db.PingContext},
		{Name: "redis", Ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	// Document links are optional; without storage invoices are served without them.
	var documents service.DocumentURLer
	if cfg.StorageEnabled() {
		store, err := storage.NewDocumentStore(&cfg.Storage)
		if err != nil {
			slog.Error("failed to initialize document storage", "error", err)
			os.Exit(1)
		}
		documents = store
		checks = append(checks, handler.Check{Name: "storage", Ping: store.Ping})
	} else {
		slog.Warn("document storage not configured, download links disabled")
	}

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	offerRepo := repository.NewOfferRepository(db, cfg.Database.TxTimeout)
	dealRepo := repository.NewDealRepository(db, cfg.Database.TxTimeout)
	userRepo := repository.NewUserRepository(db)
	kycRepo := repository.NewKYCRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)

	// Initialize services
	kycService := service.NewKYCService(kycRepo)
	listingService := service.NewListingService(invoiceRepo, documents, cfg.Business.DefaultCurrency)
	offerService := service.NewOfferService(offerRepo, invoiceRepo)
	dealService := service.NewDealService(dealRepo, offerRepo, invoiceRepo, userRepo, kycService)
	favoriteService := service.NewFavoriteService(favoriteRepo, invoiceRepo)

	router := handler.NewRouter(handler.RouterConfig{
		Auth:           &cfg.Auth,
		Idempotency:    idempotency.NewRedisStore(redisClient),
		IdempotencyTTL: cfg.Business.IdempotencyTTL,
	}, handler.Handlers{
		Health:   handler.NewHealthHandler(cfg.Health.Timeout, checks...),
		Invoice:  handler.NewInvoiceHandler(listingService),
		Offer:    handler.NewOfferHandler(offerService, dealService),
		Deal:     handler.NewDealHandler(dealService),
		KYC:      handler.NewKYCHandler(kycService),
		Favorite: handler.NewFavoriteHandler(favoriteService),
	})

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.CORSMiddleware(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
