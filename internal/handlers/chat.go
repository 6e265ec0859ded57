package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thereayou/classchat/internal/middleware"
	"github.com/thereayou/classchat/internal/models"
	"github.com/thereayou/classchat/internal/store"
)

type ChatHistory interface {
	History(ctx context.Context, chatID uint, limit int, beforeID *uint) ([]models.Message, error)
}

type ChatLister interface {
	ChatExists(ctx context.Context, chatID uint) (bool, error)
	IsChatMember(ctx context.Context, chatID, userID uint) (bool, error)
	GetUserChats(ctx context.Context, userID uint) ([]models.Chat, error)
}

type ChatHandler struct {
	messages ChatHistory
	chats    ChatLister
}

func NewChatHandler(messages ChatHistory, chats ChatLister) *ChatHandler {
	return &ChatHandler{messages: messages, chats: chats}
}

// GetChatMessages получает историю сообщений чата, от старых к новым
func (h *ChatHandler) GetChatMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	chatID, err := strconv.ParseUint(c.Param("chatID"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	exists, err := h.chats.ChatExists(c.Request.Context(), uint(chatID))
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to look up chat"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
		return
	}

	member, err := h.chats.IsChatMember(c.Request.Context(), uint(chatID), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to look up chat"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this chat"})
		return
	}

	// Параметры пагинации
	limit := 50
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var beforeID *uint
	if before := c.Query("before"); before != "" {
		if parsed, err := strconv.ParseUint(before, 10, 32); err == nil {
			id := uint(parsed)
			beforeID = &id
		}
	}

	messages, err := h.messages.History(c.Request.Context(), uint(chatID), limit, beforeID)
	if err != nil {
		if errors.Is(err, store.ErrChatNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to get messages"})
		return
	}

	if messages == nil {
		messages = []models.Message{}
	}

	c.JSON(http.StatusOK, messages)
}

// GetMyChats получает список чатов пользователя
func (h *ChatHandler) GetMyChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	chats, err := h.chats.GetUserChats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "failed to get chats"})
		return
	}

	if chats == nil {
		chats = []models.Chat{}
	}

	c.JSON(http.StatusOK, chats)
}
