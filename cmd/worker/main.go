// cmd/worker/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/procure-be/internal/adapters/db"
	redis_a "github.com/ammerola/procure-be/internal/adapters/redis_adapter"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/internal/pkg/config"
	"github.com/ammerola/procure-be/internal/pkg/logger"
	"github.com/ammerola/procure-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	if err := config.ApplyProductionSecrets(ctx, cfg, slogger.Logger); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	log := logger.SetupLogger(cfg.Logging.Level, cfg.Logging.Format).Logger
	log.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	database, err := initDatabase(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddress(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, cfg.Redis.KeyPrefix, log)

	// Services. The worker applies imports but never enqueues them.
	clock := services.SystemClock
	orchestrator := services.NewOrderMutationOrchestrator(
		db.NewUnitOfWork(database, log), clock, cfg.Order.MaxCommitRetries, log)
	orderService := services.NewPurchaseOrderService(orchestrator,
		db.NewPurchaseOrderRepository(database, log), cache, clock, log)
	stockService := services.NewStockService(db.NewStockRepository(database, log),
		cache, cfg.Stock.CacheTTL, clock, log)
	importService := services.NewImportService(db.NewImportLogRepository(database, log),
		stockService, nil, cfg.Stock.MaxImportRows, clock, log)

	redisOpt := workers.RedisOpt(cfg.Asynq)
	srv := asynq.NewServer(redisOpt, workers.ServerConfig(cfg.Asynq, log))

	mux := workers.NewServeMux(
		workers.NewImportProcessor(importService, log),
		workers.NewStatusProcessor(orderService, log),
		workers.NewCleanupProcessor(stockService, importService,
			cfg.Stock.SnapshotRetention, cfg.Asynq.ImportLogRetention, clock, log),
		log,
	)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   workers.NewLogAdapter(log.With(slog.String("component", "scheduler"))),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("failed to enqueue periodic task", slog.String("error", err.Error()))
				return
			}
			log.Info("periodic task enqueued", slog.String("task_type", info.Type), slog.String("task_id", info.ID))
		},
	})
	if err := workers.RegisterPeriodicTasks(scheduler, cfg.Asynq); err != nil {
		log.Error("failed to register periodic tasks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	log.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("status_refresh_cron", cfg.Asynq.StatusRefreshCron),
		slog.String("cleanup_cron", cfg.Asynq.CleanupCron))

	sig := <-shutdown
	log.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	log.Info("worker shutdown complete")
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, logger)
}
