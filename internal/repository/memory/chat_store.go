package memory

import (
	"context"
	"sort"

	"github.com/fitmatch-app/backend/internal/domain"
)

func (s *chatStore) GetByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, ok := s.chats[chatID]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return copyChat(ch), nil
}

func (s *chatStore) ListActiveForUser(ctx context.Context, userID int) ([]*domain.Chat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Chat
	for _, ch := range s.chats {
		if ch.IsActive && ch.HasParticipant(userID) {
			out = append(out, copyChat(ch))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastActivity.After(out[j].LastActivity)
	})
	return out, nil
}

func (s *chatStore) AppendMessage(ctx context.Context, chat *domain.Chat, msg *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.chats[chat.ID]
	if !ok {
		return domain.ErrChatNotFound
	}
	msg.Seq = stored.LastSeq + 1
	stored.Append(domain.Message{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		ReadBy:    append([]int(nil), msg.ReadBy...),
		Seq:       msg.Seq,
		CreatedAt: msg.CreatedAt,
	})
	chat.Append(*msg)
	return nil
}

func (s *chatStore) Archive(ctx context.Context, chatID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.chats[chatID]
	if !ok {
		return domain.ErrChatNotFound
	}
	ch.IsActive = false
	return nil
}

func (s *chatStore) MarkMessagesRead(ctx context.Context, chatID string, readerID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.chats[chatID]
	if !ok {
		return 0, domain.ErrChatNotFound
	}
	return ch.MarkRead(readerID), nil
}
