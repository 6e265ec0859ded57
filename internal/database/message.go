package database

import (
	"context"

	"github.com/thereayou/classchat/internal/models"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	return d.db.WithContext(ctx).Create(message).Error
}

// ChatMessages получает сообщения чата с пагинацией, от старых к новым.
func (d *Database) ChatMessages(ctx context.Context, chatID uint, limit int, beforeID *uint) ([]models.Message, error) {
	var messages []models.Message

	query := d.db.WithContext(ctx).Where("chat_id = ?", chatID)

	// Если указан beforeID, получаем сообщения строго до него
	if beforeID != nil {
		var before models.Message
		if err := d.db.WithContext(ctx).First(&before, "id = ?", *beforeID).Error; err == nil {
			query = query.Where(
				"sent_at < ? OR (sent_at = ? AND id < ?)",
				before.SentAt, before.SentAt, before.ID,
			)
		}
	}

	err := query.
		Order("sent_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	// Разворачиваем порядок, чтобы старые сообщения были первыми
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
