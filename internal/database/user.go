package database

import (
	"context"

	"github.com/thereayou/classchat/internal/models"
)

func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
