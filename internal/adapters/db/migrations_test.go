package db_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/adapters/db"
	"github.com/ammerola/procure-be/test/helpers"
)

func TestAppliedMigrations(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT version, dirty FROM public.schema_migrations ORDER BY version ASC`)

	tests := []struct {
		name      string
		setup     func(mock sqlmock.Sqlmock)
		want      []db.AppliedMigration
		wantError string
	}{
		{
			name: "lists_rows_in_order",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnRows(
					sqlmock.NewRows([]string{"version", "dirty"}).
						AddRow(1, false).
						AddRow(2, true))
			},
			want: []db.AppliedMigration{{Version: 1}, {Version: 2, Dirty: true}},
		},
		{
			name: "empty_table",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}))
			},
			want: []db.AppliedMigration{},
		},
		{
			name: "query_error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnError(errors.New("relation does not exist"))
			},
			wantError: "failed to query migrations",
		},
		{
			name: "scan_error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(query).WillReturnRows(
					sqlmock.NewRows([]string{"version", "dirty"}).AddRow("not-a-number", false))
			},
			wantError: "failed to scan migration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, sqlDB := helpers.SetupMockDB(t)
			tt.setup(mock)

			got, err := db.AppliedMigrations(context.Background(), sqlDB, "public", "schema_migrations")

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
