// Package ws exposes the realtime endpoint: one websocket per session,
// subscribed to chat topics on the fanout hub.
package ws

import (
	"net/http"
	"time"

	"github.com/fitmatch-app/backend/internal/delivery/http/middleware"
	"github.com/fitmatch-app/backend/internal/fanout"
	"github.com/fitmatch-app/backend/internal/presence"
	"github.com/fitmatch-app/backend/internal/usecase/chat"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Handler struct {
	hub      *fanout.Hub
	chats    *chat.UseCase
	presence *presence.Tracker
	secret   string
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *fanout.Hub, chats *chat.UseCase, tracker *presence.Tracker, secret string, log zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		chats:    chats,
		presence: tracker,
		secret:   secret,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// clientFrame is what clients send: subscribe/unsubscribe to a chat.
type clientFrame struct {
	Action string `json:"action"`
	ChatID string `json:"chat_id"`
}

// Serve upgrades the connection and runs it until the client goes away.
// The token travels as a query parameter because browsers cannot set
// headers on websocket dials.
func (h *Handler) Serve(c *gin.Context) {
	userID, err := middleware.ParseToken(c.Query("token"), h.secret)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	session := h.hub.Register(userID)
	_ = h.presence.Touch(c.Request.Context(), userID)
	h.log.Debug().Str("session_id", session.ID).Int("user_id", userID).Msg("websocket connected")

	go h.writePump(conn, session)
	h.readPump(c, conn, session)
}

func (h *Handler) readPump(c *gin.Context, conn *websocket.Conn, session *fanout.Session) {
	defer func() {
		h.hub.Deregister(session.ID)
		conn.Close()
	}()

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		switch frame.Action {
		case "subscribe":
			// Only participants may listen on a chat.
			if _, err := h.chats.Get(c.Request.Context(), frame.ChatID, session.UserID); err != nil {
				h.log.Debug().
					Str("chat_id", frame.ChatID).
					Int("user_id", session.UserID).
					Msg("subscribe refused")
				continue
			}
			_ = h.hub.Subscribe(session.ID, frame.ChatID)
		case "unsubscribe":
			h.hub.Unsubscribe(session.ID, frame.ChatID)
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, session *fanout.Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case ev, ok := <-session.Events():
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
