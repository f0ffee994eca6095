package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dan-burt/padelbook1/internal/booking"
	"github.com/dan-burt/padelbook1/internal/config"
	"github.com/dan-burt/padelbook1/internal/court"
	"github.com/dan-burt/padelbook1/internal/db"
	"github.com/dan-burt/padelbook1/internal/email"
	"github.com/dan-burt/padelbook1/internal/logger"
	"github.com/dan-burt/padelbook1/internal/player"
	"github.com/dan-burt/padelbook1/internal/scheduler"
	"github.com/dan-burt/padelbook1/internal/server"
)

// @title Padelbook API
// @version 1.0
// @description Court bookings, rosters and fee splitting for a padel group.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Environment, cfg.LogLevel)

	if err := run(cfg); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

// run returns rather than exiting so its deferred closes always run.
func run(cfg *config.Config) error {
	logger.Info("Starting padelbook", "environment", cfg.Environment, "port", cfg.Port)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Migrations completed")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	var (
		cache    booking.CalendarCache
		mailer   *email.Service
		notifier booking.Notifier
	)
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, calendar cache and reminders disabled", "addr", cfg.RedisAddr, "error", err)
	} else {
		cache = booking.NewRedisCache(rdb, cfg.CalendarCacheTTL)
		if cfg.RemindersEnabled() {
			mailer = email.New(rdb, email.Settings{
				From:     cfg.EmailFrom,
				FromName: cfg.EmailFromName,
				SMTPHost: cfg.SMTPHost,
				SMTPPort: cfg.SMTPPort,
				SMTPUser: cfg.SMTPUser,
				SMTPPass: cfg.SMTPPass,
			})
			notifier = mailer
		}
	}

	players := player.NewRepository(database)
	courts := court.NewService(court.NewRepository(database), cfg.BaseRate)
	bookings := booking.NewService(booking.NewRepository(database), players, courts, cache, notifier, cfg.StoreTimeout)

	jobs, err := scheduler.New()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	if mailer != nil {
		if err := scheduler.RegisterReminderJob(jobs, bookings, cfg.ReminderCron, 2*time.Minute); err != nil {
			return fmt.Errorf("register reminder job: %w", err)
		}
		if _, err := jobs.AddJob("email_queue_length", "* * * * *", func() {
			mailer.QueueLength(context.Background())
		}); err != nil {
			return fmt.Errorf("register queue gauge job: %w", err)
		}
	}

	srv := server.New(cfg, server.Handlers{
		Bookings: booking.NewHandler(bookings),
		Players:  player.NewHandler(players),
		Courts:   court.NewHandler(courts),
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "port", cfg.Port)
		return srv.Start()
	})

	if mailer != nil {
		g.Go(func() error {
			mailer.Start(gctx)
			return nil
		})
	}

	jobs.Start()

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := jobs.Stop(); err != nil {
			logger.Error("Scheduler shutdown failed", "error", err)
		}
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
