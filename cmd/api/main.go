// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/procure-be/internal/adapters/db"
	redis_a "github.com/ammerola/procure-be/internal/adapters/redis_adapter"
	"github.com/ammerola/procure-be/internal/adapters/storage"
	"github.com/ammerola/procure-be/internal/core/services"
	"github.com/ammerola/procure-be/internal/handlers"
	"github.com/ammerola/procure-be/internal/handlers/middleware"
	"github.com/ammerola/procure-be/internal/pkg/config"
	"github.com/ammerola/procure-be/internal/pkg/logger"
	"github.com/ammerola/procure-be/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	slogger := logger.SetupLogger("info", "json")
	slogger.Info("starting procurement API",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.ApplyProductionSecrets(ctx, cfg, slogger.Logger); err != nil {
		slogger.Error("failed to load secrets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	log := logger.NewLogger(&logger.LogConfig{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		Output:         cfg.Logging.Output,
		AuditFile:      cfg.Logging.AuditFile,
		EnableSampling: cfg.Logging.EnableSampling,
		SampleRate:     cfg.Logging.SampleRate,
		AddSource:      cfg.App.Debug,
		Environment:    cfg.App.Environment,
		ServiceName:    cfg.App.Name,
		ServiceVersion: Version,
	}).Logger
	slog.SetDefault(log)
	log.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.Logging.Level),
	)

	if *migrateOnly || cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, log); err != nil {
			log.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if *migrateOnly {
			return
		}
	}

	deps, err := initializeDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, log)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}
		log.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	handlers handlers.Set
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)
	database, err := db.NewDatabase(ctx, databaseConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("address", cfg.GetRedisAddress()))
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddress(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		PoolTimeout:  cfg.Redis.PoolTimeout,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, cfg.Redis.KeyPrefix, logger)

	asynqRedisOpt := workers.RedisOpt(cfg.Asynq)
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	logger.Info("initializing attachment storage", slog.String("driver", cfg.Storage.Driver))
	fileStorage, err := storage.New(ctx, cfg.Storage, logger)
	if err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Repositories
	orderRepo := db.NewPurchaseOrderRepository(database, logger)
	stockRepo := db.NewStockRepository(database, logger)
	importLogs := db.NewImportLogRepository(database, logger)
	attachmentRepo := db.NewAttachmentRepository(database, logger)

	// Services
	clock := services.SystemClock
	orchestrator := services.NewOrderMutationOrchestrator(
		db.NewUnitOfWork(database, logger), clock, cfg.Order.MaxCommitRetries, logger)
	orderService := services.NewPurchaseOrderService(orchestrator, orderRepo, cache, clock, logger)
	stockService := services.NewStockService(stockRepo, cache, cfg.Stock.CacheTTL, clock, logger)
	importService := services.NewImportService(importLogs, stockService,
		workers.NewImportQueue(deps.asynqClient, cfg.Asynq.RetryMax, logger),
		cfg.Stock.MaxImportRows, clock, logger)
	maxUpload := int64(cfg.Storage.MaxUploadMB) << 20
	attachmentService := services.NewAttachmentService(attachmentRepo, orderRepo, fileStorage,
		maxUpload, cfg.Storage.PresignTTL, logger)
	dashboardService := services.NewDashboardService(orderRepo, stockRepo, cache, cfg.Stock.CacheTTL, clock, logger)

	// Handlers
	deps.handlers = handlers.Set{
		PurchaseOrders: handlers.NewPurchaseOrderHandler(orderService, logger),
		Stock:          handlers.NewStockHandler(stockService, clock, logger),
		Imports:        handlers.NewImportHandler(importService, logger),
		Attachments:    handlers.NewAttachmentHandler(attachmentService, maxUpload, logger),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, logger),
		Health:         handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, fileStorage, cfg, logger),
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps.handlers)

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(ctx, cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if cfg.Security.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.Security.RequestTimeout))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}
