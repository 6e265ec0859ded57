package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thereayou/classchat/internal/models"
)

const (
	// Лимит длины текста сообщения в рунах
	maxTextLen = 4000

	defaultHistoryLimit = 50
)

type MessageDAO interface {
	SaveMessage(ctx context.Context, message *models.Message) error
	ChatMessages(ctx context.Context, chatID uint, limit int, beforeID *uint) ([]models.Message, error)
}

// ChatDirectory — реестр чатов внешнего сервиса, здесь только проверка существования.
type ChatDirectory interface {
	ChatExists(ctx context.Context, chatID uint) (bool, error)
}

// MessageStore владеет записями сообщений: валидация, серверная метка времени,
// монотонный id и упорядоченная история.
type MessageStore struct {
	dao   MessageDAO
	chats ChatDirectory
}

func NewMessageStore(dao MessageDAO, chats ChatDirectory) *MessageStore {
	return &MessageStore{dao: dao, chats: chats}
}

// Append сохраняет сообщение и возвращает его с назначенными id и sent_at.
// Возврат без ошибки означает, что запись долетела до базы.
func (s *MessageStore) Append(ctx context.Context, chatID, senderID uint, senderName, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if len([]rune(text)) > maxTextLen {
		return nil, ErrMessageTooLong
	}

	exists, err := s.chats.ChatExists(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, ErrChatNotFound
	}

	message := &models.Message{
		ChatID:     chatID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		SentAt:     time.Now().UTC(),
	}

	if err := s.dao.SaveMessage(ctx, message); err != nil {
		zap.L().Error("failed to save message",
			zap.Uint("chat_id", chatID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return message, nil
}

// History возвращает страницу истории чата от старых к новым.
// beforeID листает назад, limit ограничивается сверху вызывающим.
func (s *MessageStore) History(ctx context.Context, chatID uint, limit int, beforeID *uint) ([]models.Message, error) {
	exists, err := s.chats.ChatExists(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !exists {
		return nil, ErrChatNotFound
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	messages, err := s.dao.ChatMessages(ctx, chatID, limit, beforeID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return messages, nil
}
