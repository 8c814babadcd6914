// Package fanout delivers new-message notifications to connected
// sessions. Delivery is best effort: sessions subscribe to the chats
// they care about, and a session that cannot keep up loses events
// rather than blocking the sender.
package fanout

import (
	"sync"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultBuffer = 64

// Event is a single notification pushed to a session.
type Event struct {
	Type    string          `json:"type"`
	ChatID  string          `json:"chat_id"`
	Message *domain.Message `json:"message,omitempty"`
}

const EventNewMessage = "new_message"

// Session is one connected client. A user may hold several sessions at
// once; each receives events independently.
type Session struct {
	ID     string
	UserID int
	events chan Event
}

// Events is the session's receive channel. It is closed on Deregister.
func (s *Session) Events() <-chan Event { return s.events }

type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	topics   map[string]map[string]*Session
	buffer   int
	log      zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Session),
		topics:   make(map[string]map[string]*Session),
		buffer:   defaultBuffer,
		log:      log,
	}
}

// Register creates a session for the user and returns it.
func (h *Hub) Register(userID int) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		events: make(chan Event, h.buffer),
	}
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	return s
}

// Deregister removes the session from every topic and closes its
// event channel. Deregistering an unknown session is a no-op.
func (h *Hub) Deregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)
	for chatID, subs := range h.topics {
		delete(subs, sessionID)
		if len(subs) == 0 {
			delete(h.topics, chatID)
		}
	}
	close(s.events)
}

func (h *Hub) Subscribe(sessionID, chatID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[sessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	subs, ok := h.topics[chatID]
	if !ok {
		subs = make(map[string]*Session)
		h.topics[chatID] = subs
	}
	subs[sessionID] = s
	return nil
}

func (h *Hub) Unsubscribe(sessionID, chatID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[chatID]
	if !ok {
		return
	}
	delete(subs, sessionID)
	if len(subs) == 0 {
		delete(h.topics, chatID)
	}
}

// Publish pushes the event to every session subscribed to the chat
// except the sender's own sessions. Sends never block: a session with a
// full buffer drops the event.
func (h *Hub) Publish(chatID string, senderID int, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.topics[chatID] {
		if s.UserID == senderID {
			continue
		}
		select {
		case s.events <- ev:
		default:
			h.log.Warn().
				Str("session_id", s.ID).
				Str("chat_id", chatID).
				Msg("session buffer full, dropping event")
		}
	}
}
