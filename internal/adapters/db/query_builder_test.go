package db

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/core/domain"
	"github.com/ammerola/procure-be/internal/core/ports"
)

func TestFiguresQuery(t *testing.T) {
	asOf := time.Date(2025, time.March, 4, 17, 45, 0, 0, time.UTC)
	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	query, args, err := figuresQuery(asOf, figureColumns...).
		Where(squirrel.Eq{"x.sku": "MUG-1"}).
		ToSql()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{day, "MUG-1"}, args)
	assert.Contains(t, query, "s.snapshot_date = $1")
	assert.Contains(t, query, "x.sku = $2")
	assert.NotContains(t, query, "received_date")
	assert.NotContains(t, query, "sold_at")
	assert.Contains(t, query, "COALESCE(f.snapshot_qty, f.base_quantity + f.received_qty - f.sold_qty)")
	assert.NotContains(t, query, "?")
}

func TestApplyStockFilters(t *testing.T) {
	asOf := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		params   ports.StockReportParams
		contains []string
		argCount int
	}{
		{
			name:     "no_filters",
			params:   ports.StockReportParams{AsOf: asOf},
			argCount: 1,
		},
		{
			name:     "search_matches_sku_or_name",
			params:   ports.StockReportParams{AsOf: asOf, Search: " mug "},
			contains: []string{"x.sku ILIKE $2", "x.name ILIKE $3"},
			argCount: 3,
		},
		{
			name:     "status_filters_on_derived_status",
			params:   ports.StockReportParams{AsOf: asOf, Status: domain.StockLow},
			contains: []string{"x.stock_status = $2"},
			argCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := applyStockFilters(figuresQuery(tt.params.AsOf, "COUNT(*)"), tt.params).ToSql()
			require.NoError(t, err)

			assert.Len(t, args, tt.argCount)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			if tt.params.Search != "" {
				assert.Equal(t, "%mug%", args[1])
			}
		})
	}
}

func TestApplyListFilters(t *testing.T) {
	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC)

	query, args, err := applyListFilters(
		squirrel.Select("COUNT(*)").From("purchase_orders h").PlaceholderFormat(squirrel.Dollar),
		ports.ListParams{
			Search:      "yiwu",
			Status:      domain.StatusOverdue,
			OrderedFrom: &from,
			OrderedTo:   &to,
		},
	).ToSql()
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"%yiwu%", "%yiwu%", domain.StatusOverdue, from, to}, args)
	assert.Contains(t, query, "h.po_number ILIKE $1")
	assert.Contains(t, query, "h.supplier_name ILIKE $2")
	assert.Contains(t, query, "h.status = $3")
	assert.Contains(t, query, "h.order_date >= $4")
	assert.Contains(t, query, "h.order_date <= $5")
}

func TestConfigURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password = "p@ss word/1"
	cfg.ConnectTimeout = 5 * time.Second

	parsed, err := pgxpool.ParseConfig(cfg.URL())
	require.NoError(t, err)
	assert.Equal(t, "p@ss word/1", parsed.ConnConfig.Password)
	assert.Equal(t, "procure", parsed.ConnConfig.Database)
	assert.Equal(t, uint16(5432), parsed.ConnConfig.Port)
	assert.Equal(t, 5*time.Second, parsed.ConnConfig.ConnectTimeout)
}

func TestQueryLogger(t *testing.T) {
	var buf bytes.Buffer
	l := queryLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	l.Log(context.Background(), tracelog.LogLevelError, "Query", map[string]any{"sql": "SELECT 1"})
	l.Log(context.Background(), tracelog.LogLevelTrace, "Prepare", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"ERROR"`)
	assert.Contains(t, lines[0], `"sql":"SELECT 1"`)
	assert.Contains(t, lines[1], `"level":"DEBUG"`)
}

func TestBuildPoolConfig(t *testing.T) {
	tests := []struct {
		name      string
		mode      string
		want      pgx.QueryExecMode
		wantError bool
	}{
		{name: "default_is_cache_describe", mode: "", want: pgx.QueryExecModeCacheDescribe},
		{name: "statement_cache", mode: "statement", want: pgx.QueryExecModeCacheStatement},
		{name: "simple_protocol", mode: "simple", want: pgx.QueryExecModeSimpleProtocol},
		{name: "unknown_mode", mode: "turbo", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.StatementCacheMode = tt.mode

			poolConfig, err := buildPoolConfig(cfg, slog.Default())
			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, poolConfig.ConnConfig.DefaultQueryExecMode)
			assert.Equal(t, "UTC", poolConfig.ConnConfig.RuntimeParams["timezone"])
			assert.Equal(t, cfg.MaxConnections, poolConfig.MaxConns)
		})
	}
}
