// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Credential names looked up in the secret document
const (
	SecretDBPassword         = "DB_PASSWORD"
	SecretRedisPassword      = "REDIS_PASSWORD"
	SecretAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	SecretAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
)

// SecretsProvider returns the subset of keys it knows about. Missing keys
// are not an error.
type SecretsProvider interface {
	Lookup(ctx context.Context, keys []string) (map[string]string, error)
}

// secretValueGetter is the part of the Secrets Manager client we call
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsProvider reads a JSON secret document from AWS Secrets Manager
// and keeps it for ttl
type AWSSecretsProvider struct {
	client     secretValueGetter
	secretName string
	ttl        time.Duration
	now        func() time.Time
	logger     *slog.Logger

	mu        sync.Mutex
	doc       map[string]string
	fetchedAt time.Time
}

// NewAWSSecretsProvider builds a provider from the default AWS credential chain
func NewAWSSecretsProvider(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsProvider, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newAWSSecretsProvider(secretsmanager.NewFromConfig(awsCfg), secretName, logger), nil
}

func newAWSSecretsProvider(client secretValueGetter, secretName string, logger *slog.Logger) *AWSSecretsProvider {
	return &AWSSecretsProvider{
		client:     client,
		secretName: secretName,
		ttl:        5 * time.Minute,
		now:        time.Now,
		logger:     logger.With(slog.String("component", "secrets"), slog.String("secret_name", secretName)),
	}
}

// Lookup returns the requested keys, fetching the document when the cached
// copy is older than ttl
func (p *AWSSecretsProvider) Lookup(ctx context.Context, keys []string) (map[string]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.doc == nil || p.now().Sub(p.fetchedAt) >= p.ttl {
		doc, err := p.fetch(ctx)
		if err != nil {
			return nil, err
		}
		p.doc, p.fetchedAt = doc, p.now()
	}

	found := make(map[string]string, len(keys))
	for _, key := range keys {
		if v, ok := p.doc[key]; ok {
			found[key] = v
		}
	}
	return found, nil
}

// Invalidate forces the next Lookup to fetch the document again
func (p *AWSSecretsProvider) Invalidate() {
	p.mu.Lock()
	p.doc = nil
	p.mu.Unlock()
}

func (p *AWSSecretsProvider) fetch(ctx context.Context) (map[string]string, error) {
	p.logger.InfoContext(ctx, "fetching secret document")

	out, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(p.secretName),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", p.secretName, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", p.secretName)
	}

	var doc map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse secret %s: %w", p.secretName, err)
	}
	return doc, nil
}

// EnvSecretsProvider resolves secrets from the process environment
type EnvSecretsProvider struct{}

// Lookup returns the keys that are set and non-empty
func (EnvSecretsProvider) Lookup(_ context.Context, keys []string) (map[string]string, error) {
	found := make(map[string]string, len(keys))
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			found[key] = v
		}
	}
	return found, nil
}

// LoadSecrets overrides credentials in cfg with values from provider. Keys
// absent from the provider leave the configured value untouched.
func LoadSecrets(ctx context.Context, cfg *Config, provider SecretsProvider) error {
	secrets, err := provider.Lookup(ctx, []string{
		SecretDBPassword, SecretRedisPassword, SecretAWSAccessKeyID, SecretAWSSecretAccessKey,
	})
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	if v, ok := secrets[SecretDBPassword]; ok {
		cfg.Database.Password = v
	}
	if v, ok := secrets[SecretRedisPassword]; ok {
		cfg.Redis.Password = v
		cfg.Asynq.RedisPassword = v
	}
	if v, ok := secrets[SecretAWSAccessKeyID]; ok {
		cfg.Storage.AccessKeyID = v
	}
	if v, ok := secrets[SecretAWSSecretAccessKey]; ok {
		cfg.Storage.SecretAccessKey = v
	}
	return nil
}

// ApplyProductionSecrets pulls credentials from Secrets Manager when running
// in production with a secret configured, then re-validates cfg
func ApplyProductionSecrets(ctx context.Context, cfg *Config, logger *slog.Logger) error {
	if !cfg.IsProduction() || cfg.Security.SecretsName == "" {
		return nil
	}
	provider, err := NewAWSSecretsProvider(ctx, cfg.Storage.Region, cfg.Security.SecretsName, logger)
	if err != nil {
		return err
	}
	if err := LoadSecrets(ctx, cfg, provider); err != nil {
		return err
	}
	return cfg.Validate()
}
