package db

import (
	"signalx/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Signal{},
		&models.Strategy{},
	)
}
