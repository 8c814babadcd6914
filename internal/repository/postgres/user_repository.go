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

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, profile_image, fitness_level, fitness_goals,
	preferred_workouts, availability, location_lat, location_lon, active, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*domain.UserProfile, error) {
	var u domain.UserProfile
	var goals, workouts pq.StringArray
	err := row.Scan(
		&u.ID, &u.Name, &u.ProfileImage, &u.FitnessLevel, &goals,
		&workouts, &u.Availability, &u.LocationLat, &u.LocationLon, &u.Active, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.FitnessGoals = []string(goals)
	u.PreferredWorkouts = []string(workouts)
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// FindNearby answers the geospatial candidate query with a haversine
// distance bound evaluated in SQL, plus optional attribute filters.
func (r *userRepository) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, filter repository.NearbyFilter) ([]*domain.UserProfile, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filter.ExcludeUserID != 0 {
		query += fmt.Sprintf(" AND id <> $%d", argCount)
		args = append(args, filter.ExcludeUserID)
		argCount++
	}
	if filter.ActiveOnly {
		query += " AND active = true"
	}
	if filter.FitnessLevel != "" {
		query += fmt.Sprintf(" AND fitness_level = $%d", argCount)
		args = append(args, string(filter.FitnessLevel))
		argCount++
	}
	if len(filter.GoalsAny) > 0 {
		query += fmt.Sprintf(" AND fitness_goals && $%d", argCount)
		args = append(args, pq.Array(filter.GoalsAny))
		argCount++
	}
	if len(filter.WorkoutsAny) > 0 {
		query += fmt.Sprintf(" AND preferred_workouts && $%d", argCount)
		args = append(args, pq.Array(filter.WorkoutsAny))
		argCount++
	}

	query += fmt.Sprintf(`
		AND 6371000 * acos(least(1.0,
			cos(radians($%d)) * cos(radians(location_lat)) * cos(radians(location_lon) - radians($%d))
			+ sin(radians($%d)) * sin(radians(location_lat))
		)) <= $%d`, argCount, argCount+1, argCount, argCount+2)
	args = append(args, lat, lon, radiusMeters)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find nearby users: %w", err)
	}
	defer rows.Close()

	var users []*domain.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nearby user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *userRepository) Create(ctx context.Context, profile *domain.UserProfile, passwordHash string) error {
	query := `
		INSERT INTO users (
			name, profile_image, fitness_level, fitness_goals, preferred_workouts,
			availability, location_lat, location_lon, active, password_hash
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.Name, profile.ProfileImage, string(profile.FitnessLevel),
		pq.Array(profile.FitnessGoals), pq.Array(profile.PreferredWorkouts),
		profile.Availability, profile.LocationLat, profile.LocationLon,
		profile.Active, passwordHash,
	).Scan(&profile.ID, &profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
