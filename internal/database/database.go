package database

import (
	"fmt"

	"auction-settlement/internal/models"
	"auction-settlement/utils"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openObligationIndex enforces at most one pending or completed obligation per auction
const openObligationIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_obligations_one_open
ON payment_obligations (auction_id) WHERE status IN ('pending', 'completed')`

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
	}
}

// ConnectPostgres establishes a connection to the PostgreSQL database
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	utils.Info("Database connection established", map[string]any{"driver": "postgres"})
	return db, nil
}

// ConnectSQLite opens a SQLite database file (or a "file::memory:" DSN)
func ConnectSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}

	utils.Info("Database connection established", map[string]any{"driver": "sqlite", "path": path})
	return db, nil
}

// AutoMigrate creates or updates the settlement tables
func AutoMigrate(db *gorm.DB) error {
	settlementModels := []any{
		&models.Auction{},
		&models.Bid{},
		&models.PaymentObligation{},
		&models.Penalty{},
	}

	for _, model := range settlementModels {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %T: %w", model, err)
		}
	}

	if err := db.Exec(openObligationIndex).Error; err != nil {
		return fmt.Errorf("create open obligation index: %w", err)
	}

	utils.Info("Database migrations completed", nil)
	return nil
}
