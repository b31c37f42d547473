package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"promopro_backend/internal/adapters"
	"promopro_backend/internal/adapters/storage"
	"promopro_backend/internal/catalog"
	"promopro_backend/internal/email"
	"promopro_backend/internal/events"
	apphttp "promopro_backend/internal/http"
	"promopro_backend/internal/http/router"
	"promopro_backend/internal/leads"
	"promopro_backend/internal/notification"
	"promopro_backend/internal/quotes"
	"promopro_backend/internal/quotes/session"
	"promopro_backend/internal/whatsapp"
	"promopro_backend/platform/config"
	"promopro_backend/platform/db"
	"promopro_backend/platform/logger"
	"promopro_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
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

	// Session store: Redis when configured, in-process otherwise
	sessionStore, closeSessions := initSessionStore(ctx, cfg, log)
	if closeSessions != nil {
		defer closeSessions()
	}

	// Storage service for artwork uploads (MinIO, optional)
	var storageSvc storage.StorageService
	if cfg.IsMinIOEnabled() {
		minioSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure artwork bucket", 5, 2*time.Second, func() error {
			return minioSvc.EnsureBucketExists(ctx, cfg.GetMinioBucketArtworkSamples())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketArtworkSamples())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		storageSvc = minioSvc
		log.Info("storage service initialized", "artworkBucket", cfg.GetMinioBucketArtworkSamples())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; artwork uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	sender := email.NewSMTPSender(cfg)
	whatsappClient := whatsapp.NewClient(cfg, log)
	notificationModule := notification.NewModule(sender, whatsappClient, cfg, cfg, log)
	notificationModule.Register(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	catalogModule := catalog.NewModule(pool, cfg, log)
	leadsModule := leads.NewModule(pool, eventBus, cfg, log)

	leadSink := adapters.NewLeadSinkAdapter(leadsModule.Service())
	artworkStorage := adapters.NewArtworkStorageAdapter(storageSvc, cfg)
	quotesModule := quotes.NewModule(sessionStore, catalogModule.Repository(), leadSink, artworkStorage, cfg, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			catalogModule,
			quotesModule,
			leadsModule,
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
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_ADDR not configured; using in-process session store")
		return session.NewMemoryStore(cfg.GetSessionTTL()), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
	})
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return client.Ping(ctx).Err()
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis session store initialized", "addr", cfg.GetRedisAddr())

	return session.NewRedisStore(client, cfg.GetSessionTTL()), func() {
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
