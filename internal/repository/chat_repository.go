package repository

import (
	"context"

	"github.com/fitmatch-app/backend/internal/domain"
)

type ChatRepository interface {
	// GetByID returns the chat with its full message history ordered by
	// seq ascending, or domain.ErrChatNotFound.
	GetByID(ctx context.Context, chatID string) (*domain.Chat, error)

	// ListActiveForUser returns the user's active chats with message
	// history, ordered by lastActivity descending.
	ListActiveForUser(ctx context.Context, userID int) ([]*domain.Chat, error)

	// AppendMessage durably appends msg to the chat: the per-chat sequence
	// number is assigned here, and the chat's cached lastMessage,
	// lastActivity and lastSeq are refreshed in the same commit. On return
	// msg.Seq is set and chat reflects the append.
	AppendMessage(ctx context.Context, chat *domain.Chat, msg *domain.Message) error

	// MarkMessagesRead adds readerID to readBy on every message in the
	// chat it did not send and has not read, returning the number of
	// messages changed. Idempotent.
	MarkMessagesRead(ctx context.Context, chatID string, readerID int) (int, error)

	// Archive soft-deletes the chat: it disappears from listings and
	// stops accepting messages, but its history is kept.
	Archive(ctx context.Context, chatID string) error
}
