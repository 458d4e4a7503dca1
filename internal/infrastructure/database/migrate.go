package database

import (
	"embed"
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func migrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}
}

// Migrate brings the schema up to date. Postgres uses the embedded sql-migrate
// files; SQLite falls back to GORM AutoMigrate since the SQL is Postgres-specific.
func Migrate(db *gorm.DB, driver string) (int, error) {
	if driver == "sqlite" {
		log.Println("🔄 Auto-migrating SQLite schema...")
		if err := AutoMigrateModels(db); err != nil {
			return 0, err
		}
		log.Println("✅ SQLite schema ready")
		return 0, nil
	}

	log.Println("🔄 Applying embedded migrations using sql-migrate...")

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate up, error: %v", err)
	}

	n, err := migrate.Exec(sqlDB, "postgres", migrationSource(), migrate.Up)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migration, error: %v", err)
	}

	log.Printf("✅ Applied %d migrations!\n", n)
	return n, nil
}

// MigrateDown rolls back at most steps migrations (0 means all). Postgres only.
func MigrateDown(db *gorm.DB, driver string, steps int) (int, error) {
	if driver == "sqlite" {
		return 0, fmt.Errorf("migrate down is not supported for sqlite")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate down, error: %v", err)
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrationSource(), migrate.Down, steps)
	if err != nil {
		return 0, fmt.Errorf("failed to roll back migration, error: %v", err)
	}

	log.Printf("✅ Rolled back %d migrations!\n", n)
	return n, nil
}

// AutoMigrateModels creates the schema from the GORM models. Parents first.
func AutoMigrateModels(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.EntityType{},
		&entities.Entity{},
		&entities.MeetingType{},
		&entities.Meeting{},
		&entities.MeetingEntity{},
		&entities.ActionItem{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return nil
}
