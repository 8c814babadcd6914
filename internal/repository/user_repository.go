package repository

import (
	"context"

	"github.com/fitmatch-app/backend/internal/domain"
)

// NearbyFilter narrows a geospatial candidate query. Zero-valued fields are
// not applied.
type NearbyFilter struct {
	ExcludeUserID int
	FitnessLevel  domain.FitnessLevel
	GoalsAny      []string
	WorkoutsAny   []string
	ActiveOnly    bool
}

// UserRepository is the user directory consumed by the matching core. The
// core only reads it; Create exists for seeding and tests.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (*domain.UserProfile, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, filter NearbyFilter) ([]*domain.UserProfile, error)
	Create(ctx context.Context, profile *domain.UserProfile, passwordHash string) error
}
