// internal/pkg/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Asynq    AsynqConfig
	Storage  StorageConfig
	Order    OrderConfig
	Stock    StockConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	Debug       bool
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Level          string
	Format         string // json, text
	Output         string
	AuditFile      string
	EnableSampling bool
	SampleRate     float64
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `required:"true"`
	Port               string `required:"true"`
	User               string
	Password           string
	Name               string `required:"true"`
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	// MigrationPath overrides the embedded migrations when set
	MigrationPath string
	AutoMigrate   bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
	PoolTimeout  time.Duration
	TTL          time.Duration
	KeyPrefix    string
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	StrictPriority  bool
	RetryMax        int
	ShutdownTimeout time.Duration
	// StatusRefreshCron schedules the purchase order status refresh
	StatusRefreshCron string
	CleanupCron       string
	// ImportLogRetention is how long finished import logs are kept
	ImportLogRetention time.Duration
}

// StorageConfig holds attachment storage configuration
type StorageConfig struct {
	// Driver is "s3" or "local"
	Driver          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string // For MinIO in development
	UsePathStyle    bool
	KeyPrefix       string
	CreateBucket    bool
	LocalDir        string
	MaxUploadMB     int
	PresignTTL      time.Duration
}

// OrderConfig tunes the purchase order write path
type OrderConfig struct {
	// MaxCommitRetries bounds how often a commit that lost a version race is re-run
	MaxCommitRetries int
}

// StockConfig tunes stock resolution
type StockConfig struct {
	CacheTTL          time.Duration
	SnapshotRetention time.Duration
	MaxImportRows     int
}

// SecurityConfig holds HTTP security configuration
type SecurityConfig struct {
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	SecureHeaders     bool
	RequestIDHeader   string
	RequestTimeout    time.Duration
	// SecretsName names the AWS Secrets Manager secret read in production
	SecretsName string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string `required:"true"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	GracefulTimeout time.Duration
}

// Load loads configuration from the environment, reading .env in development
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using environment variables",
				slog.String("error", err.Error()))
		} else {
			logger.Info(".env file loaded successfully")
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults()

	redisHost := getEnv("REDIS_HOST", "localhost")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "procure-api"),
			Environment: env,
			Version:     getEnv("APP_VERSION", "dev"),
			Debug:       getBoolEnv("APP_DEBUG", env == "development"),
		},
		Logging: LoggingConfig{
			Level:          getEnv("LOG_LEVEL", "info"),
			Format:         getEnv("LOG_FORMAT", "json"),
			Output:         getEnv("LOG_OUTPUT", "stdout"),
			AuditFile:      getEnv("LOG_AUDIT_FILE", ""),
			EnableSampling: getBoolEnv("LOG_SAMPLING", false),
			SampleRate:     getFloatEnv("LOG_SAMPLE_RATE", 1.0),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", "procure"),
			Password:           getEnv("DB_PASSWORD", "procure_dev"),
			Name:               getEnv("DB_NAME", "procure"),
			SSLMode:            getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:     int32(getIntEnv("DB_MAX_CONNECTIONS", 25)),
			MinConnections:     int32(getIntEnv("DB_MIN_CONNECTIONS", 5)),
			MaxConnLifetime:    getDurationEnv("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    getDurationEnv("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  getDurationEnv("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     getDurationEnv("DB_CONNECT_TIMEOUT", 10*time.Second),
			StatementCacheMode: getEnv("DB_STATEMENT_CACHE_MODE", "describe"),
			EnableQueryLogging: getBoolEnv("DB_QUERY_LOGGING", false),
			MigrationPath:      getEnv("DB_MIGRATION_PATH", ""),
			AutoMigrate:        getBoolEnv("DB_AUTO_MIGRATE", env == "development"),
		},
		Redis: RedisConfig{
			Host:         redisHost,
			Port:         redisPort,
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			MaxRetries:   getIntEnv("REDIS_MAX_RETRIES", 3),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			TTL:          getDurationEnv("REDIS_TTL", 10*time.Minute),
			KeyPrefix:    getEnv("REDIS_KEY_PREFIX", "procure"),
		},
		Asynq: AsynqConfig{
			RedisAddr:          fmt.Sprintf("%s:%s", redisHost, redisPort),
			RedisPassword:      getEnv("REDIS_PASSWORD", ""),
			RedisDB:            getIntEnv("ASYNQ_REDIS_DB", 1),
			Concurrency:        getIntEnv("ASYNQ_CONCURRENCY", 10),
			Queues:             parseQueues(getEnv("ASYNQ_QUEUES", "critical:6,default:3,low:1")),
			StrictPriority:     getBoolEnv("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:           getIntEnv("ASYNQ_RETRY_MAX", 3),
			ShutdownTimeout:    getDurationEnv("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
			StatusRefreshCron:  getEnv("ASYNQ_STATUS_REFRESH_CRON", "5 0 * * *"),
			CleanupCron:        getEnv("ASYNQ_CLEANUP_CRON", "30 3 * * *"),
			ImportLogRetention: getDurationEnv("IMPORT_LOG_RETENTION", 30*24*time.Hour),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "local"),
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Bucket:          getEnv("AWS_S3_BUCKET", "procure-attachments"),
			Endpoint:        getEnv("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    getBoolEnv("AWS_S3_PATH_STYLE", env == "development"),
			KeyPrefix:       getEnv("AWS_S3_KEY_PREFIX", ""),
			CreateBucket:    getBoolEnv("AWS_S3_CREATE_BUCKET", env == "development"),
			LocalDir:        getEnv("STORAGE_LOCAL_DIR", "./data/attachments"),
			MaxUploadMB:     getIntEnv("STORAGE_MAX_UPLOAD_MB", 20),
			PresignTTL:      getDurationEnv("STORAGE_PRESIGN_TTL", 15*time.Minute),
		},
		Order: OrderConfig{
			MaxCommitRetries: getIntEnv("ORDER_MAX_COMMIT_RETRIES", 3),
		},
		Stock: StockConfig{
			CacheTTL:          getDurationEnv("STOCK_CACHE_TTL", 5*time.Minute),
			SnapshotRetention: getDurationEnv("STOCK_SNAPSHOT_RETENTION", 90*24*time.Hour),
			MaxImportRows:     getIntEnv("STOCK_MAX_IMPORT_ROWS", 50000),
		},
		Security: SecurityConfig{
			RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitDuration: getDurationEnv("RATE_LIMIT_DURATION", time.Minute),
			AllowedOrigins:    getSliceEnv("ALLOWED_ORIGINS", []string{"*"}),
			SecureHeaders:     getBoolEnv("SECURE_HEADERS", env == "production"),
			RequestIDHeader:   getEnv("REQUEST_ID_HEADER", "X-Request-ID"),
			RequestTimeout:    getDurationEnv("REQUEST_TIMEOUT", 30*time.Second),
			SecretsName:       getEnv("AWS_SECRETS_NAME", ""),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes:  getIntEnv("SERVER_MAX_HEADER_BYTES", 1<<20),
			GracefulTimeout: getDurationEnv("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate runs the validators that apply to the configured environment
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}, &ProcurementValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}
	for _, v := range validators {
		if err := v.Validate(c); err != nil {
			return err
		}
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetRedisAddress returns host:port of the cache Redis
func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "procure-api")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
}

// getEnv reads key through viper so AutomaticEnv and defaults both apply
func getEnv(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := getEnv(key, ""); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := getEnv(key, ""); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := getEnv(key, ""); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := getEnv(key, ""); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := getEnv(key, ""); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	for _, pair := range strings.Split(queuesStr, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		if priority, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil && name != "" {
			queues[name] = priority
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
