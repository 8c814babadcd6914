// Package chat implements the messaging flow on top of the chat ledger:
// sending, read receipts, chat listings and realtime notification fanout.
package chat

import (
	"context"
	"strings"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/fanout"
	"github.com/fitmatch-app/backend/internal/presence"
	"github.com/fitmatch-app/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UseCase struct {
	chats    repository.ChatRepository
	users    repository.UserRepository
	hub      *fanout.Hub
	presence *presence.Tracker
	clock    domain.Clock
	log      zerolog.Logger
}

func NewUseCase(
	chats repository.ChatRepository,
	users repository.UserRepository,
	hub *fanout.Hub,
	tracker *presence.Tracker,
	clock domain.Clock,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{chats: chats, users: users, hub: hub, presence: tracker, clock: clock, log: log}
}

// Summary is one row in a user's chat list.
type Summary struct {
	ChatID        string               `json:"chat_id"`
	Partner       domain.PublicProfile `json:"partner"`
	LastMessage   *domain.Message      `json:"last_message"`
	LastActivity  string               `json:"last_activity"`
	UnreadCount   int                  `json:"unread_count"`
	PartnerOnline bool                 `json:"partner_online"`
}

// Send appends a message to the chat and notifies the other
// participant's sessions. The sender is pre-marked as having read their
// own message. Archived chats do not accept new messages.
func (uc *UseCase) Send(ctx context.Context, chatID string, senderID int, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyMessage
	}

	chat, err := uc.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(senderID) || !chat.IsActive {
		return nil, domain.ErrChatNotFound
	}

	msg := &domain.Message{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   content,
		ReadBy:    []int{senderID},
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.chats.AppendMessage(ctx, chat, msg); err != nil {
		return nil, err
	}

	uc.hub.Publish(chatID, senderID, fanout.Event{
		Type:    fanout.EventNewMessage,
		ChatID:  chatID,
		Message: msg,
	})
	if err := uc.presence.Touch(ctx, senderID); err != nil {
		uc.log.Warn().Err(err).Int("user_id", senderID).Msg("presence touch failed")
	}
	return msg, nil
}

// MarkRead records that readerID has read every message in the chat and
// returns how many messages were newly marked. It is idempotent.
func (uc *UseCase) MarkRead(ctx context.Context, chatID string, readerID int) (int, error) {
	chat, err := uc.chats.GetByID(ctx, chatID)
	if err != nil {
		return 0, err
	}
	if !chat.HasParticipant(readerID) {
		return 0, domain.ErrChatNotFound
	}
	n, err := uc.chats.MarkMessagesRead(ctx, chatID, readerID)
	if err != nil {
		return 0, err
	}
	if err := uc.presence.Touch(ctx, readerID); err != nil {
		uc.log.Warn().Err(err).Int("user_id", readerID).Msg("presence touch failed")
	}
	return n, nil
}

// Get returns the full chat with its messages in sequence order. It
// does not alter read receipts; clients confirm reads explicitly.
// Archived chats report as not found, like everywhere else.
func (uc *UseCase) Get(ctx context.Context, chatID string, userID int) (*domain.Chat, error) {
	chat, err := uc.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(userID) || !chat.IsActive {
		return nil, domain.ErrChatNotFound
	}
	return chat, nil
}

// MessageView is a message plus its display timestamp.
type MessageView struct {
	domain.Message
	SentAt string `json:"sent_at"`
}

// Detail is the full view of one chat: history in sequence order with
// display timestamps, plus the other participant and their online flag.
type Detail struct {
	ChatID        string               `json:"chat_id"`
	MatchID       int                  `json:"match_id"`
	Partner       domain.PublicProfile `json:"partner"`
	PartnerOnline bool                 `json:"partner_online"`
	Messages      []MessageView        `json:"messages"`
	IsActive      bool                 `json:"is_active"`
}

// GetDetail renders the chat for display. Like Get, it leaves read
// receipts untouched.
func (uc *UseCase) GetDetail(ctx context.Context, chatID string, userID int) (*Detail, error) {
	chat, err := uc.Get(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	otherID, _ := chat.OtherParticipant(userID)
	other, err := uc.users.GetByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	online, err := uc.presence.IsOnline(ctx, otherID)
	if err != nil {
		uc.log.Warn().Err(err).Int("user_id", otherID).Msg("presence lookup failed")
	}

	now := uc.clock.Now()
	views := make([]MessageView, len(chat.Messages))
	for i, m := range chat.Messages {
		views[i] = MessageView{Message: m, SentAt: FormatRelativeTime(m.CreatedAt, now)}
	}
	return &Detail{
		ChatID:        chat.ID,
		MatchID:       chat.MatchID,
		Partner:       other.Public(),
		PartnerOnline: online,
		Messages:      views,
		IsActive:      chat.IsActive,
	}, nil
}

// ListForUser returns the user's active chats as list rows, most
// recently active first.
func (uc *UseCase) ListForUser(ctx context.Context, userID int) ([]Summary, error) {
	chats, err := uc.chats.ListActiveForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	out := make([]Summary, 0, len(chats))
	for _, chat := range chats {
		otherID, ok := chat.OtherParticipant(userID)
		if !ok {
			continue
		}
		other, err := uc.users.GetByID(ctx, otherID)
		if err != nil {
			return nil, err
		}
		online, err := uc.presence.IsOnline(ctx, otherID)
		if err != nil {
			uc.log.Warn().Err(err).Int("user_id", otherID).Msg("presence lookup failed")
		}
		out = append(out, Summary{
			ChatID:        chat.ID,
			Partner:       other.Public(),
			LastMessage:   chat.LastMessage,
			LastActivity:  FormatRelativeTime(chat.LastActivity, now),
			UnreadCount:   chat.UnreadCount(userID),
			PartnerOnline: online,
		})
	}
	return out, nil
}
