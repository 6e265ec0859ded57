package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_UnregisterDropsSubscriptions(t *testing.T) {
	registry := NewRegistry()
	h := NewHub(registry)
	go h.Run()
	defer h.cancel()

	c := newTestClient(1)
	h.Register(c)

	require.Eventually(t, func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		_, ok := h.clients[c.ID]
		return ok
	}, time.Second, 10*time.Millisecond)

	registry.Subscribe(c, 7)
	registry.Subscribe(c, 8)

	h.Unregister(c)

	require.Eventually(t, func() bool {
		return len(registry.Members(7)) == 0 && len(registry.Members(8)) == 0
	}, time.Second, 10*time.Millisecond)

	// Канал закрыт, последующий broadcast клиента уже не видит
	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, registry.Broadcast(7, []byte("late")))
}
