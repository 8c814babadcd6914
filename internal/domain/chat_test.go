package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testChat() *Chat {
	return &Chat{ID: "c1", Participants: [2]int{1, 2}, IsActive: true}
}

func TestChatAppendRefreshesCaches(t *testing.T) {
	c := testChat()
	at := time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)

	c.Append(Message{ID: "m1", SenderID: 1, ReadBy: []int{1}, Seq: 1, CreatedAt: at})
	c.Append(Message{ID: "m2", SenderID: 2, ReadBy: []int{2}, Seq: 2, CreatedAt: at.Add(time.Minute)})

	assert.Equal(t, "m2", c.LastMessage.ID)
	assert.Equal(t, at.Add(time.Minute), c.LastActivity)
	assert.Equal(t, int64(2), c.LastSeq)
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	c := testChat()
	c.Append(Message{ID: "m1", SenderID: 1, ReadBy: []int{1}, Seq: 1})
	c.Append(Message{ID: "m2", SenderID: 1, ReadBy: []int{1}, Seq: 2})
	c.Append(Message{ID: "m3", SenderID: 2, ReadBy: []int{2}, Seq: 3})

	assert.Equal(t, 1, c.UnreadCount(1))
	assert.Equal(t, 2, c.UnreadCount(2))

	assert.Equal(t, 2, c.MarkRead(2))
	assert.Equal(t, 0, c.MarkRead(2), "second mark is a no-op")
	assert.Equal(t, 0, c.UnreadCount(2))

	// Own messages are never counted or marked.
	assert.Equal(t, 1, c.MarkRead(1))
}

func TestOtherParticipant(t *testing.T) {
	c := testChat()
	other, ok := c.OtherParticipant(1)
	assert.True(t, ok)
	assert.Equal(t, 2, other)

	_, ok = c.OtherParticipant(3)
	assert.False(t, ok)
}
