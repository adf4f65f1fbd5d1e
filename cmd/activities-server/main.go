// cmd/activities-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"activities-service/internal/common/aws"
	"activities-service/internal/common/config"
	"activities-service/internal/common/database"
	"activities-service/internal/common/logger"
	"activities-service/internal/common/observability"
	"activities-service/internal/models"
	"activities-service/internal/notify"
	"activities-service/internal/registry"
	"activities-service/internal/server"
	"activities-service/pkg/seed"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting activities service",
		zap.String("environment", cfg.App.Environment),
		zap.String("backend", cfg.Registry.Backend),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		zapLog.Fatal("seed catalog load failed", zap.Error(err))
	}
	zapLog.Info("seed catalog loaded", zap.Int("activities", len(catalog)))

	store, cleanup, err := buildStore(ctx, cfg, catalog, zapLog)
	if err != nil {
		zapLog.Fatal("store init failed", zap.Error(err))
	}
	defer cleanup()

	notifier, err := buildNotifier(ctx, cfg)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	srv, err := server.New(server.Config{
		Store:          store,
		Notifier:       notifier,
		Logger:         log,
		Obs:            obs,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
		StaticRedirect: cfg.Server.StaticRedirect,
	})
	if err != nil {
		zapLog.Fatal("server init failed", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("activities service stopped")
}

func loadCatalog(cfg *config.Config) (models.Registry, error) {
	if cfg.Registry.SeedFile != "" {
		return seed.LoadFile(cfg.Registry.SeedFile)
	}
	return seed.Default(), nil
}

func buildStore(ctx context.Context, cfg *config.Config, catalog models.Registry, zapLog *zap.Logger) (registry.Store, func(), error) {
	opts := registry.Options{EnforceCapacity: cfg.Registry.EnforceCapacity}

	switch cfg.Registry.Backend {
	case "memory":
		return registry.NewMemoryStore(catalog, opts), func() {}, nil

	case "redis":
		var rdb *database.RedisClient
		err := retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("Redis connected successfully")

		store := registry.NewRedisStore(rdb.GetClient(), opts)
		if err := store.Seed(ctx, catalog); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		return store, func() { rdb.Close() }, nil

	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("PostgreSQL connected successfully")

		store := registry.NewPostgresStore(pg.GetDB(), opts)
		if err := store.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		if err := store.Seed(ctx, catalog); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return store, func() { pg.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown registry backend %q", cfg.Registry.Backend)
	}
}

func buildNotifier(ctx context.Context, cfg *config.Config) (notify.Notifier, error) {
	switch cfg.Notifications.Mode {
	case "ses":
		client, err := aws.NewSESClient(ctx, cfg.Notifications.Region)
		if err != nil {
			return nil, err
		}
		return notify.NewEmailNotifier(client, cfg.Notifications.Sender), nil
	case "sns":
		client, err := aws.NewSNSClient(ctx, cfg.Notifications.Region)
		if err != nil {
			return nil, err
		}
		return notify.NewTopicNotifier(client, cfg.Notifications.TopicARN), nil
	default:
		return notify.Noop{}, nil
	}
}
