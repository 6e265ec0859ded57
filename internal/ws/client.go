package ws

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Время ожидания записи
	writeWait = 10 * time.Second

	// Время ожидания pong от клиента
	pongWait = 60 * time.Second

	// Интервал отправки ping
	pingPeriod = (pongWait * 9) / 10

	// Максимальный размер входящего кадра
	maxFrameSize = 64 * 1024 // 64KB

	// Ёмкость исходящей очереди соединения
	sendQueueSize = 256
)

// EventHandler обрабатывает входящие события соединения.
type EventHandler interface {
	HandleEvent(client *Client, ev *Event) error
}

// Client — одно живое соединение с аутентифицированным пользователем.
// Набор подписок клиента живёт в Registry и умирает вместе с соединением.
type Client struct {
	ID       uuid.UUID
	UserID   uint
	UserName string
	Conn     *websocket.Conn
	Send     chan []byte
	Hub      *Hub
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, userName string) *Client {
	return &Client{
		ID:       uuid.New(),
		UserID:   userID,
		UserName: userName,
		Conn:     conn,
		Send:     make(chan []byte, sendQueueSize),
		Hub:      hub,
	}
}

// ReadPump читает события от клиента
func (c *Client) ReadPump(handler EventHandler) {
	defer func() {
		c.Hub.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		err := c.Conn.ReadJSON(&ev)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Warn("websocket read error",
					zap.String("client_id", c.ID.String()),
					zap.Error(err))
			}
			break
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &ev); err != nil {
				zap.L().Warn("error handling event",
					zap.String("client_id", c.ID.String()),
					zap.String("type", string(ev.Type)),
					zap.Error(err))
				c.SendError("bad_request", err.Error())
			}
		}
	}
}

// WritePump отправляет события клиенту
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub закрыл канал
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent кладёт событие в очередь соединения, не блокируясь на медленном клиенте.
func (c *Client) SendEvent(t EventType, data interface{}) error {
	msg, err := NewEvent(t, data)
	if err != nil {
		return err
	}

	select {
	case c.Send <- msg:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(code, errorMsg string) {
	c.SendEvent(EventError, ErrorPayload{
		Code:  code,
		Error: errorMsg,
	})
}
