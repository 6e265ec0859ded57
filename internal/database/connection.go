package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/thereayou/classchat/internal/models"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// Чаты и пользователи мигрируются внешним сервисом, наша таблица — messages.
	if err := db.AutoMigrate(&models.Message{}); err != nil {
		return err
	}

	d.db = db

	return nil
}
