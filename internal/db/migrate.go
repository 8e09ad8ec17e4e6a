package db

import (
	"fmt" // Error wrapping

	"ml_billing/internal/config" // Connection settings

	"github.com/sirupsen/logrus" // Logging

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
)

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN()) // MySQL DSN
	case "postgres":
		dialector = postgres.Open(cfg.DSN()) // PostgreSQL DSN
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

// Migrate creates the mirror tables, dropping them first when drop is set
func Migrate(db *gorm.DB, drop bool) error {
	if drop {
		if err := db.Migrator().DropTable(Models()...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		logrus.Info("Tables dropped.")
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
