package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub владеет жизненным циклом соединений. Подписки на чаты лежат в Registry
// и снимаются автоматически, когда соединение уходит.
type Hub struct {
	registry *Registry

	clients map[uuid.UUID]*Client

	// Каналы для регистрации/отмены регистрации
	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Контекст для graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
}

// NewHub создает новый Hub
func NewHub(registry *Registry) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:   registry,
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run запускает hub
func (h *Hub) Run() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)
		}
	}
}

// Stop останавливает hub и закрывает все соединения
func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		h.registry.UnsubscribeAll(client)
		close(client.Send)
		client.Conn.Close()
	}
	h.clients = make(map[uuid.UUID]*Client)
}

// Register регистрирует нового клиента
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister отменяет регистрацию клиента
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	zap.L().Info("client registered",
		zap.String("client_id", client.ID.String()),
		zap.Uint("user_id", client.UserID))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		h.registry.UnsubscribeAll(client)
		delete(h.clients, client.ID)
		close(client.Send)

		zap.L().Info("client unregistered",
			zap.String("client_id", client.ID.String()),
			zap.Uint("user_id", client.UserID))
	}
}
