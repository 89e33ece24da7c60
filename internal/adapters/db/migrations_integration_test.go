//go:build integration
// +build integration

package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/procure-be/internal/adapters/db"
	"github.com/ammerola/procure-be/test/helpers"
)

func TestMigrator_RollbackAndReapply(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	ctx := context.Background()
	logger := helpers.TestLogger()

	var before *db.MigrationStatus
	err := db.WithMigrator(ctx, testDB.Migrations, logger, func(mg *db.Migrator) error {
		var err error
		before, err = mg.Status(ctx)
		return err
	})
	require.NoError(t, err)
	require.NotEmpty(t, before.Applied)
	assert.False(t, before.IsDirty)
	assert.Equal(t, uint(1), before.CurrentVersion)

	err = db.WithMigrator(ctx, testDB.Migrations, logger, func(mg *db.Migrator) error {
		return mg.Rollback(ctx, 1)
	})
	require.NoError(t, err)

	var exists bool
	require.NoError(t, testDB.PgxPool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'purchase_orders')`).Scan(&exists))
	assert.False(t, exists)

	require.NoError(t, db.RunMigrationsWithRetry(ctx, testDB.Migrations, logger, 1))

	err = db.WithMigrator(ctx, testDB.Migrations, logger, func(mg *db.Migrator) error {
		version, dirty, err := mg.Version()
		assert.Equal(t, before.CurrentVersion, version)
		assert.False(t, dirty)
		return err
	})
	require.NoError(t, err)
}

func TestMigrator_RejectsNonPositiveRollback(t *testing.T) {
	testDB := helpers.SetupTestDB(t)
	ctx := context.Background()

	err := db.WithMigrator(ctx, testDB.Migrations, helpers.TestLogger(), func(mg *db.Migrator) error {
		return mg.Rollback(ctx, 0)
	})
	assert.ErrorContains(t, err, "must be positive")
}
