package ws

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Send:   make(chan []byte, 4),
	}
}

func TestSubscribe_Idempotent(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(1)

	r.Subscribe(c, 7)
	r.Subscribe(c, 7)

	assert.Len(t, r.Members(7), 1)
	assert.True(t, r.IsSubscribed(c, 7))
}

func TestSubscribe_MultipleChats(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(1)

	r.Subscribe(c, 7)
	r.Subscribe(c, 8)

	assert.True(t, r.IsSubscribed(c, 7))
	assert.True(t, r.IsSubscribed(c, 8))
	assert.False(t, r.IsSubscribed(c, 9))
}

func TestUnsubscribe(t *testing.T) {
	r := NewRegistry()
	a := newTestClient(1)
	b := newTestClient(2)

	r.Subscribe(a, 7)
	r.Subscribe(b, 7)
	r.Unsubscribe(a, 7)

	members := r.Members(7)
	require.Len(t, members, 1)
	assert.Equal(t, b.ID, members[0].ID)
	assert.False(t, r.IsSubscribed(a, 7))
}

func TestUnsubscribeAll(t *testing.T) {
	r := NewRegistry()
	c := newTestClient(1)

	r.Subscribe(c, 7)
	r.Subscribe(c, 8)
	r.UnsubscribeAll(c)

	assert.Empty(t, r.Members(7))
	assert.Empty(t, r.Members(8))
	assert.False(t, r.IsSubscribed(c, 7))
	assert.False(t, r.IsSubscribed(c, 8))
}

func TestBroadcast_DeliversToAllMembers(t *testing.T) {
	r := NewRegistry()
	a := newTestClient(1)
	b := newTestClient(2)
	outsider := newTestClient(3)

	r.Subscribe(a, 7)
	r.Subscribe(b, 7)
	r.Subscribe(outsider, 8)

	delivered := r.Broadcast(7, []byte("hello"))

	assert.Equal(t, 2, delivered)
	assert.Len(t, a.Send, 1)
	assert.Len(t, b.Send, 1)
	assert.Empty(t, outsider.Send)
}

func TestBroadcast_DropsOnFullQueue(t *testing.T) {
	r := NewRegistry()
	slow := newTestClient(1)
	fast := newTestClient(2)

	r.Subscribe(slow, 7)
	r.Subscribe(fast, 7)

	for i := 0; i < cap(slow.Send); i++ {
		slow.Send <- []byte("backlog")
	}

	// Переполненная очередь не должна блокировать рассылку
	delivered := r.Broadcast(7, []byte("hello"))

	assert.Equal(t, 1, delivered)
	assert.Len(t, fast.Send, 1)
}
