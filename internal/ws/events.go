package ws

import "encoding/json"

// EventType определяет типы событий протокола
type EventType string

const (
	// Клиент -> сервер
	EventJoinChat    EventType = "join_chat"
	EventSendMessage EventType = "send_message"

	// Сервер -> клиент
	EventJoined         EventType = "joined"
	EventReceiveMessage EventType = "receive_message"
	EventError          EventType = "error"
)

type Event struct {
	Type EventType       `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type JoinChatPayload struct {
	ChatID uint `json:"chat_id"`
}

// SendMessagePayload: sender_id остаётся в формате ради совместимости со старым
// фронтендом, сервер его игнорирует и берёт личность из аутентифицированной сессии.
type SendMessagePayload struct {
	ChatID   uint   `json:"chat_id"`
	SenderID uint   `json:"sender_id"`
	Text     string `json:"message_text"`
}

type ErrorPayload struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// NewEvent собирает событие с сериализованным payload.
func NewEvent(t EventType, data interface{}) ([]byte, error) {
	ev := Event{Type: t}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		ev.Data = raw
	}

	return json.Marshal(ev)
}
