// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrMissingRequiredConfig is returned when a required value is empty or a placeholder
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Validator checks one aspect of the configuration
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator checks required fields and connection pool sizing
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	switch {
	case cfg.Database.MaxConnections < cfg.Database.MinConnections:
		return fmt.Errorf("database max_connections must be >= min_connections")
	case cfg.Redis.PoolSize <= 0:
		return fmt.Errorf("redis pool_size must be positive")
	case cfg.Asynq.Concurrency <= 0:
		return fmt.Errorf("asynq concurrency must be positive")
	case cfg.Security.RateLimitRequests <= 0:
		return fmt.Errorf("rate_limit_requests must be positive")
	}
	for name, weight := range cfg.Asynq.Queues {
		if weight <= 0 {
			return fmt.Errorf("asynq queue %q needs a positive priority", name)
		}
	}
	return nil
}

// ProcurementValidator checks the knobs of the order, stock and attachment
// features
type ProcurementValidator struct{}

// Validate performs feature validation
func (v *ProcurementValidator) Validate(cfg *Config) error {
	switch {
	case cfg.Order.MaxCommitRetries < 0:
		return fmt.Errorf("order max_commit_retries cannot be negative")
	case cfg.Stock.CacheTTL < 0:
		return fmt.Errorf("stock cache_ttl cannot be negative")
	case cfg.Stock.MaxImportRows < 0:
		return fmt.Errorf("stock max_import_rows cannot be negative")
	case cfg.Stock.SnapshotRetention < 0, cfg.Asynq.ImportLogRetention < 0:
		return fmt.Errorf("retention periods cannot be negative")
	case cfg.Storage.MaxUploadMB < 0:
		return fmt.Errorf("storage max_upload_mb cannot be negative")
	}

	switch cfg.Storage.Driver {
	case "local":
		if cfg.Storage.LocalDir == "" {
			return fmt.Errorf("%w: storage local_dir", ErrMissingRequiredConfig)
		}
	case "s3":
		if cfg.Storage.Bucket == "" {
			return fmt.Errorf("%w: storage bucket", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	switch {
	case strings.HasPrefix(cfg.Database.Password, "MISSING_"), cfg.Database.Password == "":
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	case cfg.Database.SSLMode == "disable":
		return fmt.Errorf("database SSL must be enabled in production")
	case cfg.Database.AutoMigrate:
		return fmt.Errorf("auto migrate must be disabled in production")
	case !cfg.Security.SecureHeaders:
		return fmt.Errorf("secure headers must be enabled in production")
	case cfg.Storage.Driver == "local":
		return fmt.Errorf("local attachment storage cannot be used in production")
	}
	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}
	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name
		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if fieldType.Tag.Get("required") == "true" && isZeroValue(field) {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
		}

		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
