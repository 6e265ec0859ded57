package ws

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Registry хранит эфемерные подписки соединений на чаты. Ничего не
// персистится: после рестарта клиенты заново шлют join_chat.
type Registry struct {
	mu sync.RWMutex

	// Подписчики по чатам
	chats map[uint]map[uuid.UUID]*Client

	// Чаты по соединениям, для отписки при дисконнекте
	byClient map[uuid.UUID]map[uint]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		chats:    make(map[uint]map[uuid.UUID]*Client),
		byClient: make(map[uuid.UUID]map[uint]struct{}),
	}
}

// Subscribe идемпотентна: повторная подписка ничего не меняет.
func (r *Registry) Subscribe(client *Client, chatID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chats[chatID]; !ok {
		r.chats[chatID] = make(map[uuid.UUID]*Client)
	}
	r.chats[chatID][client.ID] = client

	if _, ok := r.byClient[client.ID]; !ok {
		r.byClient[client.ID] = make(map[uint]struct{})
	}
	r.byClient[client.ID][chatID] = struct{}{}
}

func (r *Registry) Unsubscribe(client *Client, chatID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeUnsafe(client.ID, chatID)
}

// UnsubscribeAll вызывается при разрыве соединения.
func (r *Registry) UnsubscribeAll(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for chatID := range r.byClient[client.ID] {
		r.removeUnsafe(client.ID, chatID)
	}
}

func (r *Registry) removeUnsafe(clientID uuid.UUID, chatID uint) {
	if chat, ok := r.chats[chatID]; ok {
		delete(chat, clientID)
		if len(chat) == 0 {
			delete(r.chats, chatID)
		}
	}

	if chats, ok := r.byClient[clientID]; ok {
		delete(chats, chatID)
		if len(chats) == 0 {
			delete(r.byClient, clientID)
		}
	}
}

func (r *Registry) IsSubscribed(client *Client, chatID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byClient[client.ID][chatID]
	return ok
}

// Members возвращает срез подписчиков чата на момент вызова.
func (r *Registry) Members(chatID uint) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*Client, 0, len(r.chats[chatID]))
	for _, client := range r.chats[chatID] {
		members = append(members, client)
	}
	return members
}

// Broadcast раскладывает готовый кадр по очередям подписчиков. Медленный
// подписчик теряет кадр, отправителя это не блокирует. Возвращает число доставок.
func (r *Registry) Broadcast(chatID uint, message []byte) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	delivered := 0
	for _, client := range r.chats[chatID] {
		select {
		case client.Send <- message:
			delivered++
		default:
			zap.L().Warn("client queue full, frame dropped",
				zap.String("client_id", client.ID.String()),
				zap.Uint("chat_id", chatID))
		}
	}
	return delivered
}
