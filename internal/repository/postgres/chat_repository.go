package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) repository.ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) GetByID(ctx context.Context, chatID string) (*domain.Chat, error) {
	chat, err := r.scanChatRow(r.db.QueryRowContext(ctx, `
		SELECT id, match_id, user_lo, user_hi, is_active, last_seq, last_activity, created_at
		FROM chats WHERE id = $1
	`, chatID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("get chat %s: %w", chatID, err)
	}
	if err := r.loadMessages(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *chatRepository) ListActiveForUser(ctx context.Context, userID int) ([]*domain.Chat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, match_id, user_lo, user_hi, is_active, last_seq, last_activity, created_at
		FROM chats
		WHERE is_active = true AND (user_lo = $1 OR user_hi = $1)
		ORDER BY last_activity DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats for user %d: %w", userID, err)
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		chat, err := r.scanChatRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		chats = append(chats, chat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, chat := range chats {
		if err := r.loadMessages(ctx, chat); err != nil {
			return nil, err
		}
	}
	return chats, nil
}

// AppendMessage assigns the next per-chat sequence number under the chat
// row's own counter, so concurrent sends to the same chat serialize on
// the UPDATE and never receive duplicate sequence numbers.
func (r *chatRepository) AppendMessage(ctx context.Context, chat *domain.Chat, msg *domain.Message) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append message: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		UPDATE chats SET last_seq = last_seq + 1, last_activity = $2
		WHERE id = $1
		RETURNING last_seq
	`, chat.ID, msg.CreatedAt).Scan(&msg.Seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrChatNotFound
		}
		return fmt.Errorf("advance chat %s sequence: %w", chat.ID, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, content, read_by, seq, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, msg.ID, msg.ChatID, msg.SenderID, msg.Content, pq.Array(toInt64s(msg.ReadBy)), msg.Seq, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append message: %w", err)
	}
	chat.Append(*msg)
	return nil
}

// MarkMessagesRead adds the reader to read_by on every message they have
// not read yet, skipping their own messages. Re-running it is a no-op.
func (r *chatRepository) MarkMessagesRead(ctx context.Context, chatID string, readerID int) (int, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM chats WHERE id = $1)`, chatID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	if !exists {
		return 0, domain.ErrChatNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE messages SET read_by = array_append(read_by, $2)
		WHERE chat_id = $1 AND sender_id <> $2 AND NOT ($2 = ANY(read_by))
	`, chatID, readerID)
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark messages read: %w", err)
	}
	return int(affected), nil
}

func (r *chatRepository) Archive(ctx context.Context, chatID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE chats SET is_active = false WHERE id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("archive chat %s: %w", chatID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive chat %s: %w", chatID, err)
	}
	if affected == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}

func (r *chatRepository) scanChatRow(row interface{ Scan(...interface{}) error }) (*domain.Chat, error) {
	var chat domain.Chat
	err := row.Scan(
		&chat.ID, &chat.MatchID, &chat.Participants[0], &chat.Participants[1],
		&chat.IsActive, &chat.LastSeq, &chat.LastActivity, &chat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) loadMessages(ctx context.Context, chat *domain.Chat) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, chat_id, sender_id, content, read_by, seq, created_at
		FROM messages WHERE chat_id = $1 ORDER BY seq ASC
	`, chat.ID)
	if err != nil {
		return fmt.Errorf("load messages for chat %s: %w", chat.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		var readBy pq.Int64Array
		err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content, &readBy, &msg.Seq, &msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("scan message: %w", err)
		}
		msg.ReadBy = fromInt64s(readBy)
		chat.Messages = append(chat.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(chat.Messages) > 0 {
		chat.LastMessage = &chat.Messages[len(chat.Messages)-1]
	}
	return nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func fromInt64s(ids []int64) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
