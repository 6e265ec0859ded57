package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/thereayou/classchat/internal/middleware"
	"github.com/thereayou/classchat/internal/models"
	"github.com/thereayou/classchat/internal/ws"
)

type UserDirectory interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// WebSocketHandler управляет WebSocket соединениями
type WebSocketHandler struct {
	hub      *ws.Hub
	gateway  *Gateway
	users    UserDirectory
	upgrader websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, gateway *Gateway, users UserDirectory) *WebSocketHandler {
	return &WebSocketHandler{
		hub:     hub,
		gateway: gateway,
		users:   users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: проверять origin в prod
				return true
			},
		},
	}
}

// HandleWebSocket апгрейдит соединение и привязывает его к пользователю.
// Имя отправителя резолвится один раз здесь и дальше живёт в сессии.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), userID.(uint))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, user.ID, user.Name)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.gateway)
}
