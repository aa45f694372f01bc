package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"exam-prep-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func receive(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case raw := <-ch:
		var m Message
		require.NoError(t, json.Unmarshal(raw, &m))
		return m
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
	}
	return Message{}
}

func TestHubSendReachesEveryDeviceOfTheUser(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()

	phone := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	laptop := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	other := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 4)}
	h.register <- phone
	h.register <- laptop
	h.register <- other

	require.Eventually(t, func() bool { return h.Connected(userID) == 2 }, time.Second, 5*time.Millisecond)

	h.Send(userID, "focus", map[string]int{"remaining_seconds": 1499})

	for _, c := range []*Client{phone, laptop} {
		m := receive(t, c.Send)
		assert.Equal(t, "focus", m.Type)
		assert.Equal(t, map[string]interface{}{"remaining_seconds": float64(1499)}, m.Data)
	}
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	c := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- c
	h.unregister <- c

	require.Eventually(t, func() bool { return h.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHubDropsSlowClient(t *testing.T) {
	h := startHub(t)
	userID := uuid.New()
	slow := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	h.register <- slow
	require.Eventually(t, func() bool { return h.Connected(userID) == 1 }, time.Second, 5*time.Millisecond)

	h.Send(userID, "focus", 1)
	h.Send(userID, "focus", 2)

	require.Eventually(t, func() bool { return h.Connected(userID) == 0 }, time.Second, 5*time.Millisecond)
}
