package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "procure-api", cfg.App.Name)
	assert.Equal(t, 3, cfg.Order.MaxCommitRetries)
	assert.Equal(t, 5*time.Minute, cfg.Stock.CacheTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1}, cfg.Asynq.Queues)
	assert.Equal(t, "localhost:6379", cfg.Asynq.RedisAddr)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("ORDER_MAX_COMMIT_RETRIES", "7")
	t.Setenv("STOCK_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("REDIS_HOST", "cache")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Order.MaxCommitRetries)
	assert.Equal(t, 30*time.Second, cfg.Stock.CacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "cache:6379", cfg.GetRedisAddress())
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Name: "procure-api", Environment: "test"},
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Host: "localhost", Port: "5432", Name: "procure", MaxConnections: 10, MinConnections: 1},
		Redis:    RedisConfig{PoolSize: 10},
		Asynq:    AsynqConfig{Concurrency: 5},
		Storage:  StorageConfig{Driver: "local", LocalDir: "/tmp/attachments"},
		Order:    OrderConfig{MaxCommitRetries: 3},
		Security: SecurityConfig{RateLimitRequests: 100, AllowedOrigins: []string{"*"}},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		errText string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing_required_database_name",
			mutate:  func(c *Config) { c.Database.Name = "" },
			wantErr: ErrMissingRequiredConfig,
		},
		{
			name:    "placeholder_counts_as_missing",
			mutate:  func(c *Config) { c.Database.Host = "MISSING_DB_HOST" },
			wantErr: ErrMissingRequiredConfig,
		},
		{
			name:    "negative_commit_retries",
			mutate:  func(c *Config) { c.Order.MaxCommitRetries = -1 },
			errText: "max_commit_retries",
		},
		{
			name:    "unknown_storage_driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			errText: "unknown storage driver",
		},
		{
			name: "production_rejects_wildcard_origin",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "vault"
				c.Database.SSLMode = "require"
				c.Security.SecureHeaders = true
				c.Storage = StorageConfig{Driver: "s3", Bucket: "b"}
			},
			errText: "wildcard origin",
		},
		{
			name: "production_rejects_empty_password",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.SSLMode = "require"
			},
			wantErr: ErrMissingRequiredConfig,
		},
		{
			name: "production_rejects_auto_migrate",
			mutate: func(c *Config) {
				c.App.Environment = "production"
				c.Database.Password = "vault"
				c.Database.SSLMode = "require"
				c.Database.AutoMigrate = true
			},
			errText: "auto migrate",
		},
		{
			name:    "zero_queue_priority",
			mutate:  func(c *Config) { c.Asynq.Queues = map[string]int{"critical": 0} },
			errText: "positive priority",
		},
		{
			name:    "negative_import_rows",
			mutate:  func(c *Config) { c.Stock.MaxImportRows = -5 },
			errText: "max_import_rows",
		},
		{
			name:    "s3_without_bucket",
			mutate:  func(c *Config) { c.Storage = StorageConfig{Driver: "s3"} },
			wantErr: ErrMissingRequiredConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

type fakeSecrets map[string]string

func (f fakeSecrets) Lookup(_ context.Context, keys []string) (map[string]string, error) {
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := f[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

type fakeSecretValues struct {
	doc   string
	err   error
	calls int
}

func (f *fakeSecretValues) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{Name: in.SecretId, SecretString: aws.String(f.doc)}, nil
}

func TestLoadSecrets_OverridesOnlyPresentKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Password = "from-env"
	cfg.Storage.AccessKeyID = "keep-me"

	err := LoadSecrets(context.Background(), cfg, fakeSecrets{
		SecretDBPassword:    "from-vault",
		SecretRedisPassword: "redis-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "from-vault", cfg.Database.Password)
	assert.Equal(t, "redis-secret", cfg.Redis.Password)
	assert.Equal(t, "redis-secret", cfg.Asynq.RedisPassword)
	assert.Equal(t, "keep-me", cfg.Storage.AccessKeyID)
}

func TestEnvSecretsProvider(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")

	got, err := EnvSecretsProvider{}.Lookup(context.Background(), []string{"DB_PASSWORD", "NOT_SET_ANYWHERE"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_PASSWORD": "pw"}, got)
}

func TestAWSSecretsProvider_CachesDocument(t *testing.T) {
	client := &fakeSecretValues{doc: `{"DB_PASSWORD":"vault-pw","REDIS_PASSWORD":"vault-redis"}`}
	p := newAWSSecretsProvider(client, "procure/prod", discardLogger())
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	got, err := p.Lookup(context.Background(), []string{SecretDBPassword, SecretAWSAccessKeyID})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{SecretDBPassword: "vault-pw"}, got)

	_, err = p.Lookup(context.Background(), []string{SecretRedisPassword})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	now = now.Add(10 * time.Minute)
	_, err = p.Lookup(context.Background(), []string{SecretRedisPassword})
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)

	p.Invalidate()
	_, err = p.Lookup(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
}

func TestAWSSecretsProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeSecretValues
		errText string
	}{
		{name: "client_error", client: &fakeSecretValues{err: errors.New("access denied")}, errText: "access denied"},
		{name: "malformed_document", client: &fakeSecretValues{doc: "not json"}, errText: "failed to parse secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newAWSSecretsProvider(tt.client, "procure/prod", discardLogger())
			_, err := p.Lookup(context.Background(), []string{SecretDBPassword})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
