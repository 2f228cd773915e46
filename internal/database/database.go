package database

import (
	"os"
	"path/filepath"

	"github.com/Mrlaolu/luBoard/internal/database/models"
	"go.uber.org/zap"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Init opens (creating if needed) the sqlite contest-log database.
func Init(dsn string) (*gorm.DB, error) {
	if dsn != ":memory:" {
		if _, err := os.Stat(dsn); os.IsNotExist(err) {
			zap.S().Infof("database file not found at '%s', creating directory for it.", dsn)
			dbDir := filepath.Dir(dsn)
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				return nil, err
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Problem{},
		&models.Team{},
		&models.Submission{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Open opens an existing database without creating it.
func Open(dsn string) (*gorm.DB, error) {
	if _, err := os.Stat(dsn); err != nil {
		return nil, err
	}
	return Init(dsn)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
