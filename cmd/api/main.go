package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kento03Onodera/pick-re-crm/internal/agents"
	"github.com/Kento03Onodera/pick-re-crm/internal/dashboard"
	"github.com/Kento03Onodera/pick-re-crm/internal/events"
	apphttp "github.com/Kento03Onodera/pick-re-crm/internal/http"
	"github.com/Kento03Onodera/pick-re-crm/internal/http/router"
	"github.com/Kento03Onodera/pick-re-crm/internal/leads"
	"github.com/Kento03Onodera/pick-re-crm/internal/notification"
	"github.com/Kento03Onodera/pick-re-crm/internal/properties"
	propservice "github.com/Kento03Onodera/pick-re-crm/internal/properties/service"
	"github.com/Kento03Onodera/pick-re-crm/internal/scheduler"
	"github.com/Kento03Onodera/pick-re-crm/internal/settings"
	"github.com/Kento03Onodera/pick-re-crm/internal/storage"
	"github.com/Kento03Onodera/pick-re-crm/platform/config"
	"github.com/Kento03Onodera/pick-re-crm/platform/db"
	"github.com/Kento03Onodera/pick-re-crm/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Redis backs the settings cache; the API degrades gracefully without it.
	var redisClient *redis.Client
	if cfg.IsRedisEnabled() {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid redis url", "error", err)
			panic("invalid redis url: " + err.Error())
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		log.Info("redis client initialized")
	} else {
		log.Warn("REDIS_URL not configured; settings cache and search digests disabled")
	}

	digestScheduler, closeScheduler := initDigestScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Object storage for property images and agent avatars (MinIO)
	var storageSvc *storage.Service
	if cfg.IsMinIOEnabled() {
		storageSvc, err = storage.New(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure storage buckets", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBuckets(ctx)
		}); err != nil {
			log.Error("failed to ensure storage buckets exist", "error", err)
			panic("failed to ensure storage buckets exist: " + err.Error())
		}
		log.Info("storage service initialized")
	} else {
		log.Warn("MINIO_ENDPOINT not configured; image uploads disabled")
	}

	var propertyUploader propservice.Uploader
	var avatarUploader agents.AvatarUploader
	if storageSvc != nil {
		propertyUploader = storageSvc
		avatarUploader = storageSvc
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule := leads.NewModule(pool, eventBus, digestScheduler)
	propertiesModule := properties.NewModule(pool, eventBus, propertyUploader)
	settingsModule := settings.NewModule(pool, redisClient, eventBus)
	dashboardModule := dashboard.NewModule(leadsModule.Repository(), settingsModule.Service())
	agentsModule := agents.NewModule(pool, cfg, eventBus, avatarUploader)

	// Notification module fans domain events out over SSE
	notificationModule := notification.NewModule(log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			agentsModule,
			leadsModule,
			propertiesModule,
			settingsModule,
			dashboardModule,
			notificationModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initDigestScheduler builds the asynq client for property search digests.
// A nil client is a valid no-op scheduler when Redis is absent.
func initDigestScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize digest scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
