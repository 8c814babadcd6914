package repository

import (
	"context"
	"time"

	"github.com/fitmatch-app/backend/internal/domain"
)

type MatchRepository interface {
	// Create persists a new pending like. Returns
	// domain.ErrPendingMatchExists when a pending record for the sorted
	// pair already exists (unique constraint scoped to status=pending).
	Create(ctx context.Context, match *domain.Match) error

	GetByID(ctx context.Context, id int) (*domain.Match, error)

	// FindPending returns the pending record for the sorted pair, or
	// domain.ErrMatchNotFound.
	FindPending(ctx context.Context, userLo, userHi int) (*domain.Match, error)

	// FindAccepted returns an accepted record for the sorted pair, or
	// domain.ErrMatchNotFound.
	FindAccepted(ctx context.Context, userLo, userHi int) (*domain.Match, error)

	// AcceptMutual commits the mutual-like transition as one unit: the
	// reciprocal pending record flips to accepted, the invoking record is
	// inserted already accepted, and the chat is created. A concurrent
	// reader never observes a partial transition. Fails with
	// domain.ErrAlreadyMatched if the reciprocal record is no longer
	// pending.
	AcceptMutual(ctx context.Context, reciprocalID int, match *domain.Match, chat *domain.Chat) error

	// Reject transitions a pending record to rejected.
	Reject(ctx context.Context, id int, at time.Time) error

	// ListAccepted returns accepted matches for the user ordered by
	// lastInteraction descending.
	ListAccepted(ctx context.Context, userID int) ([]*domain.Match, error)
}
