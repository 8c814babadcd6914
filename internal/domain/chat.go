package domain

import "time"

// Message is a single chat entry. ReadBy always contains the sender; Seq is
// assigned per chat in append order and is the source of truth for ordering
// (CreatedAt alone cannot disambiguate same-millisecond appends).
type Message struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  int       `json:"sender_id"`
	Content   string    `json:"content"`
	ReadBy    []int     `json:"read_by"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Message) ReadByUser(userID int) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Chat is the append-only message log for one accepted match. LastMessage and
// LastActivity are caches recomputed on every append, never a second source
// of truth.
type Chat struct {
	ID           string    `json:"id"`
	MatchID      int       `json:"match_id"`
	Participants [2]int    `json:"participants"`
	Messages     []Message `json:"messages"`
	LastMessage  *Message  `json:"last_message"`
	LastSeq      int64     `json:"-"`
	IsActive     bool      `json:"is_active"`
	LastActivity time.Time `json:"last_activity"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Chat) HasParticipant(userID int) bool {
	return c.Participants[0] == userID || c.Participants[1] == userID
}

func (c *Chat) OtherParticipant(userID int) (int, bool) {
	switch userID {
	case c.Participants[0]:
		return c.Participants[1], true
	case c.Participants[1]:
		return c.Participants[0], true
	}
	return 0, false
}

// Append adds a message and refreshes the cached lastMessage/lastActivity.
func (c *Chat) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.LastMessage = &c.Messages[len(c.Messages)-1]
	c.LastActivity = msg.CreatedAt
	c.LastSeq = msg.Seq
}

// UnreadCount counts messages not sent by userID that userID has not read.
func (c *Chat) UnreadCount(userID int) int {
	n := 0
	for i := range c.Messages {
		m := &c.Messages[i]
		if m.SenderID != userID && !m.ReadByUser(userID) {
			n++
		}
	}
	return n
}

// MarkRead adds userID to readBy on every unread message it did not send and
// returns how many messages changed. Calling it again without new messages
// returns 0.
func (c *Chat) MarkRead(userID int) int {
	n := 0
	for i := range c.Messages {
		m := &c.Messages[i]
		if m.SenderID != userID && !m.ReadByUser(userID) {
			m.ReadBy = append(m.ReadBy, userID)
			n++
		}
	}
	return n
}
