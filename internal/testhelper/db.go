// Package testhelper provides a seeded in-memory database for package tests.
package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/johnquangdev/meeting-minutes/internal/adapter/repository"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
)

// NewDB opens an isolated in-memory SQLite database with the schema migrated.
// The database is closed when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err, "failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrateModels(db), "failed to migrate")

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// NewStore returns a Store over a fresh database with the system types seeded.
func NewStore(t *testing.T) repositories.Store {
	t.Helper()

	store := repository.NewStore(NewDB(t))
	require.NoError(t, database.Seed(context.Background(), store), "failed to seed")
	return store
}
