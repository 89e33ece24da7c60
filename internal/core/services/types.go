// internal/core/services/types.go
package services

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ammerola/procure-be/internal/core/ports"
)

// Clock returns the current time; services take one so tests can pin "today"
type Clock func() time.Time

// SystemClock is the wall clock in UTC
func SystemClock() time.Time { return time.Now().UTC() }

// Pagination defaults shared by list endpoints
const (
	defaultPageSize = 50
	maxPageSize     = 500
)

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func totalPages(count int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}

// Cache key layout. Stock levels live under stock:<sku>:g<generation>:<date>;
// the generation counter of a sku is bumped on every write that moves its
// stock, so fills that raced the write land on keys nobody reads.
const (
	stockKeyPrefix   = "stock"
	stockGenPrefix   = "stock-gen"
	dashboardKey     = "dashboard:summary"
	stockKeyWildcard = "*"
)

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func stockKey(sku string, generation int64, asOf time.Time) string {
	return strings.Join([]string{
		stockKeyPrefix, sku, "g" + strconv.FormatInt(generation, 10), asOf.Format(time.DateOnly),
	}, ":")
}

func stockGenerationKey(sku string) string {
	return stockGenPrefix + ":" + sku
}

// stockPattern matches every cached level of sku; glob metacharacters in the
// sku are escaped so they match literally.
func stockPattern(sku string) string {
	return strings.Join([]string{stockKeyPrefix, globEscaper.Replace(sku), stockKeyWildcard}, ":")
}

// invalidateStock retires the cached levels of each sku and the dashboard
// summary. Failures are logged, never returned.
func invalidateStock(ctx context.Context, cache ports.CacheRepository, logger *slog.Logger, skus ...string) {
	if cache == nil {
		return
	}
	for _, sku := range skus {
		if sku == "" {
			continue
		}
		if err := cache.BumpGeneration(ctx, stockGenerationKey(sku)); err != nil {
			logger.WarnContext(ctx, "failed to bump stock cache generation",
				slog.String("sku", sku),
				slog.String("error", err.Error()))
		}
		if err := cache.DeletePattern(ctx, stockPattern(sku)); err != nil {
			logger.WarnContext(ctx, "failed to invalidate stock cache",
				slog.String("sku", sku),
				slog.String("error", err.Error()))
		}
	}
	if err := cache.Delete(ctx, dashboardKey); err != nil {
		logger.WarnContext(ctx, "failed to invalidate dashboard cache",
			slog.String("error", err.Error()))
	}
}
