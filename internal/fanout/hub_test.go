package fanout

import (
	"fmt"
	"testing"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func event(chatID, msgID string) Event {
	return Event{Type: EventNewMessage, ChatID: chatID, Message: &domain.Message{ID: msgID, ChatID: chatID}}
}

func drain(s *Session) []Event {
	var out []Event
	for {
		select {
		case ev := <-s.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestPublishReachesSubscribersInOrder(t *testing.T) {
	h := newTestHub()
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))

	for i := 0; i < 5; i++ {
		h.Publish("chat-1", 1, event("chat-1", fmt.Sprintf("m%d", i)))
	}

	got := drain(s)
	require.Len(t, got, 5)
	for i, ev := range got {
		assert.Equal(t, fmt.Sprintf("m%d", i), ev.Message.ID)
	}
}

func TestPublishExcludesSender(t *testing.T) {
	h := newTestHub()
	sender := h.Register(1)
	receiver := h.Register(2)
	require.NoError(t, h.Subscribe(sender.ID, "chat-1"))
	require.NoError(t, h.Subscribe(receiver.ID, "chat-1"))

	h.Publish("chat-1", 1, event("chat-1", "m1"))

	assert.Empty(t, drain(sender), "sender's own sessions stay quiet")
	assert.Len(t, drain(receiver), 1)
}

func TestPublishIsScopedToTopic(t *testing.T) {
	h := newTestHub()
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))

	h.Publish("chat-2", 1, event("chat-2", "m1"))
	assert.Empty(t, drain(s))
}

func TestAtMostOncePerSession(t *testing.T) {
	h := newTestHub()
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))

	h.Publish("chat-1", 1, event("chat-1", "m1"))
	assert.Len(t, drain(s), 1, "double subscribe must not double deliver")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	h := newTestHub()
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))
	h.Unsubscribe(s.ID, "chat-1")

	h.Publish("chat-1", 1, event("chat-1", "m1"))
	assert.Empty(t, drain(s))
}

func TestSlowSessionDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub()
	h.buffer = 2
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))

	for i := 0; i < 5; i++ {
		h.Publish("chat-1", 1, event("chat-1", fmt.Sprintf("m%d", i)))
	}

	got := drain(s)
	require.Len(t, got, 2, "overflow is dropped, not queued")
	assert.Equal(t, "m0", got[0].Message.ID)
	assert.Equal(t, "m1", got[1].Message.ID)
}

func TestDeregisterClosesAndForgets(t *testing.T) {
	h := newTestHub()
	s := h.Register(2)
	require.NoError(t, h.Subscribe(s.ID, "chat-1"))

	h.Deregister(s.ID)
	_, open := <-s.Events()
	assert.False(t, open, "channel closes on deregister")

	// Publishing afterwards must not panic on the closed channel.
	h.Publish("chat-1", 1, event("chat-1", "m1"))

	assert.ErrorIs(t, h.Subscribe(s.ID, "chat-1"), domain.ErrSessionNotFound)
	h.Deregister(s.ID)
}
