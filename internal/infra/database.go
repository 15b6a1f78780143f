package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"reout/pkg/config"
	"reout/pkg/logger"
)

// OpenDatabase opens the relational ledger selected by LEDGER_BACKEND.
func OpenDatabase(cfg config.Config, log *logger.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.LedgerBackend {
	case config.LedgerPostgres:
		dialector = postgres.Open(cfg.PostgresURL)
	case config.LedgerSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("ledger backend %q is not a database", cfg.LedgerBackend)
	}

	level := gormlogger.Info
	if cfg.IsProduction() {
		level = gormlogger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(level)})
	if err != nil {
		log.Error("Error connecting to database", "backend", cfg.LedgerBackend, "error", err.Error())
		return nil, fmt.Errorf("connect %s: %w", cfg.LedgerBackend, err)
	}

	log.Info("Database connected", "backend", cfg.LedgerBackend)
	return db, nil
}

func CloseDatabase(db *gorm.DB, log *logger.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error("Error getting database instance", "error", err.Error())
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error("Error closing database connection", "error", err.Error())
	} else {
		log.Info("Database connection closed successfully")
	}
}
