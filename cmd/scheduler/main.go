package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/invoice-marketplace/internal/config"
	"github.com/segyhp/invoice-marketplace/internal/repository"
	"github.com/segyhp/invoice-marketplace/internal/service"
	"github.com/segyhp/invoice-marketplace/internal/sweeper"
	"github.com/segyhp/invoice-marketplace/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(&logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	slog.Info("starting offer expiry scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	db.SetMaxOpenConns(2)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	offerService := service.NewOfferService(
		repository.NewOfferRepository(db, cfg.Database.TxTimeout),
		repository.NewInvoiceRepository(db),
	)
	expirySweeper := sweeper.New(offerService, sweeper.NewRedisLocker(redisClient), &cfg.Scheduler)

	// Initialize cron scheduler
	c := cron.New(cron.WithLocation(cfg.Location()))

	if _, err := expirySweeper.Register(c, cfg.Scheduler.SweepSchedule); err != nil {
		slog.Error("failed to schedule offer expiry sweep", "error", err)
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	slog.Info("scheduler started", "schedule", cfg.Scheduler.SweepSchedule, "timezone", cfg.Scheduler.Timezone)

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down scheduler")
	<-c.Stop().Done()
	slog.Info("scheduler stopped")
}
