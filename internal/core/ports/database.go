// internal/core/ports/database.go
package ports

import "context"

// Database is what the health endpoints need from the Postgres pool
type Database interface {
	Ping(ctx context.Context) error
	// Health reports pool statistics for the detailed health response
	Health(ctx context.Context) map[string]interface{}
}
