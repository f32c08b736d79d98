package db

import (
	"fmt"
	"time"

	"github.com/yummiapp/yummi-api/internal/config"
	"github.com/yummiapp/yummi-api/internal/logger"
	"github.com/yummiapp/yummi-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectTimeout = 1 * time.Minute
	retryInterval  = 5 * time.Second
)

// New creates a new database connection and migrates the schema.
func New(cfg *config.Config) (*gorm.DB, error) {
	database, err := connectToDatabaseWithRetry(postgres.Open(cfg.EnvVars.DatabaseUrl), connectTimeout, retryInterval)
	if err != nil {
		return nil, err
	}
	if err := Migrate(database); err != nil {
		return nil, err
	}
	return database, nil
}

// Migrate creates or updates the favorites and shopping-list tables.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(
		&models.Favorite{},
		&models.Ingredient{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// connectToDatabaseWithRetry opens dialector, retrying every interval until
// timeout has passed.
func connectToDatabaseWithRetry(dialector gorm.Dialector, timeout, interval time.Duration) (*gorm.DB, error) {
	logger.Get().Info("connecting to database", zap.String("dialect", dialector.Name()))

	start := time.Now()
	for {
		database, err := gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			return database, nil
		}
		if time.Since(start) > timeout {
			return nil, fmt.Errorf("could not connect to database after %s: %w", timeout, err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(interval)
	}
}
