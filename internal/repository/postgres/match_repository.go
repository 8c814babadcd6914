package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `id, user_lo, user_hi, status, match_score,
	criteria_goals, criteria_workouts, criteria_availability, criteria_location,
	initiated_by, created_at, last_interaction`

func scanMatch(row interface{ Scan(...interface{}) error }) (*domain.Match, error) {
	var m domain.Match
	err := row.Scan(
		&m.ID, &m.UserLo, &m.UserHi, &m.Status, &m.Score,
		&m.Criteria.FitnessGoals, &m.Criteria.WorkoutPreferences,
		&m.Criteria.Availability, &m.Criteria.Location,
		&m.InitiatedBy, &m.CreatedAt, &m.LastInteraction,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a pending match record. A partial unique index on
// (user_lo, user_hi) WHERE status = 'pending' rejects a second pending
// record for the same pair, which Create reports as ErrPendingMatchExists.
func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	query := `
		INSERT INTO matches (
			user_lo, user_hi, status, match_score,
			criteria_goals, criteria_workouts, criteria_availability, criteria_location,
			initiated_by, created_at, last_interaction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	err := r.db.QueryRowContext(
		ctx, query,
		match.UserLo, match.UserHi, string(match.Status), match.Score,
		match.Criteria.FitnessGoals, match.Criteria.WorkoutPreferences,
		match.Criteria.Availability, match.Criteria.Location,
		match.InitiatedBy, match.CreatedAt, match.LastInteraction,
	).Scan(&match.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.ErrPendingMatchExists
		}
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("get match %d: %w", id, err)
	}
	return m, nil
}

func (r *matchRepository) FindPending(ctx context.Context, userLo, userHi int) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE user_lo = $1 AND user_hi = $2 AND status = 'pending'`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, userLo, userHi))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("find pending match: %w", err)
	}
	return m, nil
}

func (r *matchRepository) FindAccepted(ctx context.Context, userLo, userHi int) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE user_lo = $1 AND user_hi = $2 AND status = 'accepted'
		ORDER BY last_interaction DESC
		LIMIT 1`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, userLo, userHi))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, fmt.Errorf("find accepted match: %w", err)
	}
	return m, nil
}

// AcceptMutual completes a mutual like in a single transaction: the
// reciprocal pending record flips to accepted, the caller's record is
// inserted already accepted, and the pair's chat is created. The guarded
// UPDATE keeps the whole operation a no-op when a concurrent request
// already resolved the reciprocal record.
func (r *matchRepository) AcceptMutual(ctx context.Context, reciprocalID int, match *domain.Match, chat *domain.Chat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin accept mutual: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE matches SET status = 'accepted', last_interaction = $2
		WHERE id = $1 AND status = 'pending'
	`, reciprocalID, match.LastInteraction)
	if err != nil {
		return fmt.Errorf("accept reciprocal match %d: %w", reciprocalID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("accept reciprocal match %d: %w", reciprocalID, err)
	}
	if affected == 0 {
		return domain.ErrAlreadyMatched
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO matches (
			user_lo, user_hi, status, match_score,
			criteria_goals, criteria_workouts, criteria_availability, criteria_location,
			initiated_by, created_at, last_interaction
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`,
		match.UserLo, match.UserHi, string(match.Status), match.Score,
		match.Criteria.FitnessGoals, match.Criteria.WorkoutPreferences,
		match.Criteria.Availability, match.Criteria.Location,
		match.InitiatedBy, match.CreatedAt, match.LastInteraction,
	).Scan(&match.ID)
	if err != nil {
		return fmt.Errorf("insert accepted match: %w", err)
	}

	chat.MatchID = match.ID
	_, err = tx.ExecContext(ctx, `
		INSERT INTO chats (id, match_id, user_lo, user_hi, is_active, last_seq, last_activity, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
	`, chat.ID, chat.MatchID, chat.Participants[0], chat.Participants[1],
		chat.IsActive, chat.LastActivity, chat.CreatedAt)
	if err != nil {
		return fmt.Errorf("create chat for match %d: %w", match.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit accept mutual: %w", err)
	}
	return nil
}

func (r *matchRepository) Reject(ctx context.Context, id int, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE matches SET status = 'rejected', last_interaction = $2
		WHERE id = $1 AND status = 'pending'
	`, id, at)
	if err != nil {
		return fmt.Errorf("reject match %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reject match %d: %w", id, err)
	}
	if affected == 1 {
		return nil
	}

	var status string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM matches WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrMatchNotFound
		}
		return fmt.Errorf("reject match %d: %w", id, err)
	}
	if status == string(domain.MatchAccepted) {
		return domain.ErrAlreadyMatched
	}
	// Already rejected: idempotent.
	return nil
}

func (r *matchRepository) ListAccepted(ctx context.Context, userID int) ([]*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches
		WHERE status = 'accepted' AND (user_lo = $1 OR user_hi = $1)
		ORDER BY last_interaction DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list accepted matches: %w", err)
	}
	defer rows.Close()

	var matches []*domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
