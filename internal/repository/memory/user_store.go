package memory

import (
	"context"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/repository"
)

func (s *userStore) GetByID(ctx context.Context, id int) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (s *userStore) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, filter repository.NearbyFilter) ([]*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.UserProfile
	for _, u := range s.users {
		if u.ID == filter.ExcludeUserID {
			continue
		}
		if filter.ActiveOnly && !u.Active {
			continue
		}
		if filter.FitnessLevel != "" && u.FitnessLevel != filter.FitnessLevel {
			continue
		}
		if len(filter.GoalsAny) > 0 && !anyOverlap(u.FitnessGoals, filter.GoalsAny) {
			continue
		}
		if len(filter.WorkoutsAny) > 0 && !anyOverlap(u.PreferredWorkouts, filter.WorkoutsAny) {
			continue
		}
		if domain.HaversineKm(lat, lon, u.LocationLat, u.LocationLon)*1000 > radiusMeters {
			continue
		}
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (s *userStore) Create(ctx context.Context, profile *domain.UserProfile, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.ID == 0 {
		profile.ID = s.nextUserID
		s.nextUserID++
	} else if profile.ID >= s.nextUserID {
		s.nextUserID = profile.ID + 1
	}
	s.users[profile.ID] = copyUser(profile)
	return nil
}

func anyOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
