package database

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/thereayou/classchat/internal/models"
)

func (d *Database) GetChat(ctx context.Context, id uint) (*models.Chat, error) {
	var chat models.Chat
	if err := d.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (d *Database) ChatExists(ctx context.Context, id uint) (bool, error) {
	_, err := d.GetChat(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsChatMember проверяет членство по таблице chat_members внешнего сервиса.
func (d *Database) IsChatMember(ctx context.Context, chatID, userID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Table("chat_members").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) GetUserChats(ctx context.Context, userID uint) ([]models.Chat, error) {
	var user models.User
	err := d.db.WithContext(ctx).Preload("Chats").First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return user.Chats, nil
}
