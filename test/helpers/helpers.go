// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/adapters/db"
	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config

	// Migrations points at the same database for migrator tests
	Migrations *db.MigrationConfig
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// FixedClock returns a clock pinned to t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Date builds a UTC midnight date
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Dec parses a decimal literal and panics on bad input
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SetupTestDB creates a PostgreSQL container with the schema migrated
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_procure",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_procure",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    30 * time.Minute,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     10 * time.Second,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
			dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
			dbConfig.Database, dbConfig.SSLMode),
		TableName:  "schema_migrations",
		SchemaName: "public",
	}
	err = db.RunMigrationsWithRetry(context.Background(), migrationConfig, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:    database.Pool(),
		Database:   database,
		Resource:   resource,
		Pool:       pool,
		Config:     dbConfig,
		Migrations: migrationConfig,
	}
}

// SetupTestRedis creates an in-memory Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a mock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		db.Close()
	})

	return mock, db
}

// LoadTestConfig returns a configuration that passes Validate
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			Debug:       true,
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "text",
			Output: "stdout",
		},
		Database: config.DatabaseConfig{
			Host:               "localhost",
			Port:               "5432",
			User:               "test",
			Password:           "test",
			Name:               "test_procure",
			SSLMode:            "disable",
			MaxConnections:     10,
			MinConnections:     2,
			EnableQueryLogging: true,
		},
		Redis: config.RedisConfig{
			Host:      "localhost",
			Port:      "6379",
			TTL:       time.Hour,
			PoolSize:  10,
			KeyPrefix: "procure-test",
		},
		Asynq: config.AsynqConfig{
			RedisAddr:          "localhost:6379",
			RedisDB:            1,
			Concurrency:        2,
			Queues:             map[string]int{"critical": 6, "default": 3, "low": 1},
			RetryMax:           1,
			ShutdownTimeout:    time.Second,
			StatusRefreshCron:  "5 0 * * *",
			CleanupCron:        "30 3 * * *",
			ImportLogRetention: 30 * 24 * time.Hour,
		},
		Storage: config.StorageConfig{
			Driver:      "local",
			LocalDir:    os.TempDir(),
			MaxUploadMB: 5,
			PresignTTL:  time.Minute,
		},
		Order: config.OrderConfig{MaxCommitRetries: 3},
		Stock: config.StockConfig{
			CacheTTL:          time.Minute,
			SnapshotRetention: 90 * 24 * time.Hour,
			MaxImportRows:     1000,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
			RequestTimeout:    5 * time.Second,
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
	}
}

// CreateTestProduct creates a test product
func CreateTestProduct(overrides ...func(*domain.Product)) *domain.Product {
	p := &domain.Product{
		SKU:          "SKU-" + uuid.NewString()[:8],
		Name:         "Test Ceramic Mug",
		BaseQuantity: 10,
		MinLimit:     5,
	}
	for _, override := range overrides {
		override(p)
	}
	return p
}

// CreateTestHeader creates a test purchase order header
func CreateTestHeader(overrides ...func(*domain.PurchaseOrderHeader)) *domain.PurchaseOrderHeader {
	eta := Date(2025, time.January, 15)
	h := &domain.PurchaseOrderHeader{
		ID:                    uuid.New(),
		PONumber:              "PO-" + uuid.NewString()[:8],
		SupplierName:          "Yiwu Trading Co",
		OrderType:             domain.OrderTypeImported,
		ShippingType:          domain.ShippingTypeCar,
		OrderDate:             Date(2025, time.January, 1),
		EstimatedDate:         &eta,
		ExchangeRate:          Dec("5.00"),
		TotalCostForeign:      Dec("1000.00"),
		ShippingRatePerVolume: Dec("4000.00"),
		TransportationCost:    decimal.Zero,
		Status:                domain.StatusPending,
	}
	for _, override := range overrides {
		override(h)
	}
	return h
}

// CreateTestPurchaseOrder creates an aggregate with one line item per qty,
// each on its own SKU, prorated as of the order date
func CreateTestPurchaseOrder(skus []string, qtys []int64, overrides ...func(*domain.PurchaseOrderHeader)) *domain.PurchaseOrder {
	po := domain.NewPurchaseOrder(*CreateTestHeader(overrides...))
	for i, qty := range qtys {
		sku := fmt.Sprintf("SKU-%d", i+1)
		if i < len(skus) {
			sku = skus[i]
		}
		if _, err := po.UpsertItem(nil, sku, qty); err != nil {
			panic(err)
		}
	}
	po.Recompute(po.Header.OrderDate)
	return po
}

// CreateTestSnapshot creates a test stock snapshot
func CreateTestSnapshot(sku string, date time.Time, qty int64) domain.StockSnapshot {
	return domain.StockSnapshot{SKU: sku, SnapshotDate: date, Quantity: qty}
}

// CreateTestSale creates a test sale
func CreateTestSale(orderID, sku string, qty int64, overrides ...func(*domain.Sale)) domain.Sale {
	s := domain.Sale{
		OrderID:  orderID,
		SKU:      sku,
		Qty:      qty,
		Platform: "shopee",
		SoldAt:   Date(2025, time.January, 10).Add(10 * time.Hour),
	}
	for _, override := range overrides {
		override(&s)
	}
	return s
}

// CreateTestImportLog creates a pending import log
func CreateTestImportLog(kind domain.ImportKind, overrides ...func(*domain.ImportLog)) *domain.ImportLog {
	l := &domain.ImportLog{
		ID:        uuid.New(),
		Kind:      kind,
		Source:    "test.csv",
		Status:    domain.ImportPending,
		CreatedAt: time.Now().UTC(),
	}
	for _, override := range overrides {
		override(l)
	}
	return l
}

// TruncateAllTables truncates all tables in the test database
func TruncateAllTables(t *testing.T, db *pgxpool.Pool) {
	t.Helper()

	tables := []string{
		"po_attachments",
		"po_receipts",
		"po_receipt_batches",
		"po_line_items",
		"purchase_orders",
		"stock_snapshots",
		"sales",
		"import_logs",
		"products",
	}

	for _, table := range tables {
		_, err := db.Exec(context.Background(), fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}

// SeedProducts inserts products directly
func SeedProducts(t *testing.T, db *pgxpool.Pool, products ...*domain.Product) {
	t.Helper()

	for _, p := range products {
		_, err := db.Exec(context.Background(), `
			INSERT INTO products (sku, name, base_quantity, min_limit)
			VALUES ($1, $2, $3, $4)`,
			p.SKU, p.Name, p.BaseQuantity, p.MinLimit)
		require.NoError(t, err, "Failed to seed product %s", p.SKU)
	}
}
