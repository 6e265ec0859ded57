package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/thereayou/classchat/internal/models"
	"github.com/thereayou/classchat/internal/store"
	"github.com/thereayou/classchat/internal/ws"
)

type ChatMessages interface {
	Append(ctx context.Context, chatID, senderID uint, senderName, text string) (*models.Message, error)
}

type ChatDirectory interface {
	IsChatMember(ctx context.Context, chatID, userID uint) (bool, error)
}

// Gateway — протокол соединения: join_chat подписывает в Registry,
// send_message сохраняет в стор и рассылает подписчикам чата.
type Gateway struct {
	messages ChatMessages
	chats    ChatDirectory
	registry *ws.Registry

	// Блокировки по чатам: append+broadcast для одного чата строго
	// последовательны, иначе подписчики могли бы увидеть разный порядок.
	mu        sync.Mutex
	chatLocks map[uint]*sync.Mutex
}

func NewGateway(messages ChatMessages, chats ChatDirectory, registry *ws.Registry) *Gateway {
	return &Gateway{
		messages:  messages,
		chats:     chats,
		registry:  registry,
		chatLocks: make(map[uint]*sync.Mutex),
	}
}

func (g *Gateway) HandleEvent(client *ws.Client, ev *ws.Event) error {
	switch ev.Type {
	case ws.EventJoinChat:
		var payload ws.JoinChatPayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			return ws.ErrInvalidEvent
		}
		g.handleJoin(client, payload.ChatID)
		return nil

	case ws.EventSendMessage:
		var payload ws.SendMessagePayload
		if err := json.Unmarshal(ev.Data, &payload); err != nil {
			return ws.ErrInvalidEvent
		}
		g.handleSend(client, payload)
		return nil

	default:
		zap.L().Warn("unknown event type", zap.String("type", string(ev.Type)))
		return nil
	}
}

// handleJoin проверяет чат у внешнего реестра и подписывает соединение.
// Не-члену чата отвечаем так же, как на несуществующий id.
func (g *Gateway) handleJoin(client *ws.Client, chatID uint) {
	member, err := g.chats.IsChatMember(context.Background(), chatID, client.UserID)
	if err != nil {
		g.sendError(client, err)
		return
	}
	if !member {
		g.sendError(client, store.ErrChatNotFound)
		return
	}

	g.registry.Subscribe(client, chatID)

	client.SendEvent(ws.EventJoined, ws.JoinChatPayload{ChatID: chatID})
}

// handleSend: личность берём из сессии соединения, sender_id из payload
// игнорируется. Ошибки уходят только отправителю, соединение живёт дальше.
func (g *Gateway) handleSend(client *ws.Client, payload ws.SendMessagePayload) {
	if !g.registry.IsSubscribed(client, payload.ChatID) {
		g.sendError(client, ws.ErrNotJoined)
		return
	}

	lock := g.chatLock(payload.ChatID)
	lock.Lock()
	defer lock.Unlock()

	// Background: разрыв соединения отправителя не должен отменять запись
	message, err := g.messages.Append(context.Background(), payload.ChatID, client.UserID, client.UserName, payload.Text)
	if err != nil {
		g.sendError(client, err)
		return
	}

	frame, err := ws.NewEvent(ws.EventReceiveMessage, message)
	if err != nil {
		g.sendError(client, err)
		return
	}

	g.registry.Broadcast(payload.ChatID, frame)
}

func (g *Gateway) chatLock(chatID uint) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()

	lock, ok := g.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		g.chatLocks[chatID] = lock
	}
	return lock
}

func (g *Gateway) sendError(client *ws.Client, err error) {
	client.SendError(errorCode(err), err.Error())
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, store.ErrEmptyMessage), errors.Is(err, store.ErrMessageTooLong):
		return "validation_error"
	case errors.Is(err, store.ErrChatNotFound):
		return "chat_not_found"
	case errors.Is(err, ws.ErrNotJoined):
		return "not_joined"
	case errors.Is(err, store.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal_error"
	}
}
