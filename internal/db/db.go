package db

import (
	"fmt"
	"strings"
	"time"

	"pocketmeadery/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open connects to the local sqlite store. Foreign-key enforcement is enabled
// through the DSN so every pooled connection honors the schema's cascades.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}

	gormCfg := &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	database, err := gorm.Open(sqlite.Open(dsn(cfg.Path)), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return database, nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on"
}

// Migrate brings the store's schema up to the latest version. Each pending
// migration runs inside its own transaction and the version marker is only
// advanced after that migration committed, so a failure never skips or
// half-applies a version.
func Migrate(database *gorm.DB) error {
	if database == nil {
		return fmt.Errorf("database handle is nil")
	}
	return migrate(database, migrations)
}

func migrate(database *gorm.DB, pending [][]string) error {
	current, err := SchemaVersion(database)
	if err != nil {
		return err
	}

	for v := current; v < len(pending); v++ {
		err := database.Transaction(func(tx *gorm.DB) error {
			for _, statement := range pending[v] {
				if err := tx.Exec(statement).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("apply migration %d: %w", v+1, err)
		}

		if err := database.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)).Error; err != nil {
			return fmt.Errorf("persist schema version %d: %w", v+1, err)
		}
	}

	return nil
}

// SchemaVersion reads the persisted schema version marker, 0 if unset.
func SchemaVersion(database *gorm.DB) (int, error) {
	var version int
	if err := database.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// Configure opens the store, migrates it, and installs the global handle.
func Configure(cfg config.DatabaseConfig) (*gorm.DB, error) {
	database, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	DB = database

	return database, nil
}

func MustConfigure(cfg config.DatabaseConfig) *gorm.DB {
	database, err := Configure(cfg)
	if err != nil {
		panic(err)
	}

	return database
}

func Get() *gorm.DB {
	return DB
}
