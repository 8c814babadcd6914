// Package match implements the partner matching flow: compatibility
// scoring, like/reject handling and the mutual-match transition that
// opens a chat for the pair.
package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type UseCase struct {
	users   repository.UserRepository
	matches repository.MatchRepository
	clock   domain.Clock
	log     zerolog.Logger
}

func NewUseCase(users repository.UserRepository, matches repository.MatchRepository, clock domain.Clock, log zerolog.Logger) *UseCase {
	return &UseCase{users: users, matches: matches, clock: clock, log: log}
}

// LikeResult reports the outcome of a like. When the like completed a
// mutual match, Mutual is true and ChatID names the freshly created chat.
type LikeResult struct {
	Match  *domain.Match
	Mutual bool
	ChatID string
}

// Candidate is a scored nearby profile.
type Candidate struct {
	Profile    domain.PublicProfile `json:"profile"`
	Score      int                  `json:"match_score"`
	Criteria   domain.MatchCriteria `json:"match_criteria"`
	DistanceKm float64              `json:"distance_km"`
}

// MutualMatch pairs an accepted match with the other user's public profile.
type MutualMatch struct {
	Match   *domain.Match        `json:"match"`
	Partner domain.PublicProfile `json:"partner"`
}

// Like records userID liking targetID. If the target already has a
// pending like on userID, both records become accepted and a chat is
// created atomically. Liking the same pair twice yields
// ErrPendingMatchExists; liking an already-accepted pair yields
// ErrAlreadyMatched.
func (uc *UseCase) Like(ctx context.Context, userID, targetID int) (*LikeResult, error) {
	if userID == targetID {
		return nil, domain.ErrCannotLikeSelf
	}

	liker, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	target, err := uc.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	lo, hi := domain.SortPair(userID, targetID)
	if _, err := uc.matches.FindAccepted(ctx, lo, hi); err == nil {
		return nil, domain.ErrAlreadyMatched
	} else if !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, err
	}

	score, criteria := Score(liker, target)
	criteria.Location = domain.WithinRange(
		liker.LocationLat, liker.LocationLon,
		target.LocationLat, target.LocationLon,
		MaxMatchDistanceMeters,
	)

	reciprocal, err := uc.matches.FindPending(ctx, lo, hi)
	switch {
	case err == nil:
		if reciprocal.InitiatedBy == userID {
			return nil, domain.ErrPendingMatchExists
		}
		return uc.acceptMutual(ctx, reciprocal, userID, lo, hi, score, criteria)
	case errors.Is(err, domain.ErrMatchNotFound):
	default:
		return nil, err
	}

	now := uc.clock.Now()
	match := &domain.Match{
		UserLo:          lo,
		UserHi:          hi,
		Status:          domain.MatchPending,
		Score:           score,
		Criteria:        criteria,
		InitiatedBy:     userID,
		CreatedAt:       now,
		LastInteraction: now,
	}
	err = uc.matches.Create(ctx, match)
	if errors.Is(err, domain.ErrPendingMatchExists) {
		// Lost a race with the target's like. Re-check once: if the
		// winner is the reciprocal like, this becomes a mutual match.
		reciprocal, ferr := uc.matches.FindPending(ctx, lo, hi)
		if ferr != nil || reciprocal.InitiatedBy == userID {
			return nil, domain.ErrPendingMatchExists
		}
		return uc.acceptMutual(ctx, reciprocal, userID, lo, hi, score, criteria)
	}
	if err != nil {
		return nil, err
	}
	return &LikeResult{Match: match}, nil
}

func (uc *UseCase) acceptMutual(ctx context.Context, reciprocal *domain.Match, userID, lo, hi, score int, criteria domain.MatchCriteria) (*LikeResult, error) {
	now := uc.clock.Now()
	match := &domain.Match{
		UserLo:          lo,
		UserHi:          hi,
		Status:          domain.MatchAccepted,
		Score:           score,
		Criteria:        criteria,
		InitiatedBy:     userID,
		CreatedAt:       now,
		LastInteraction: now,
	}
	chat := &domain.Chat{
		ID:           uuid.NewString(),
		Participants: [2]int{lo, hi},
		IsActive:     true,
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := uc.matches.AcceptMutual(ctx, reciprocal.ID, match, chat); err != nil {
		return nil, err
	}
	uc.log.Info().
		Int("user_lo", lo).
		Int("user_hi", hi).
		Str("chat_id", chat.ID).
		Msg("mutual match accepted")
	return &LikeResult{Match: match, Mutual: true, ChatID: chat.ID}, nil
}

// Reject turns down a pending match addressed to userID. Rejecting an
// already-rejected match is a no-op; an accepted match cannot be rejected.
func (uc *UseCase) Reject(ctx context.Context, userID, matchID int) error {
	match, err := uc.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}
	if !match.HasUser(userID) {
		return domain.ErrMatchNotFound
	}
	if match.InitiatedBy == userID {
		return fmt.Errorf("%w: cannot reject own like", domain.ErrMatchNotFound)
	}
	return uc.matches.Reject(ctx, matchID, uc.clock.Now())
}

// ListMutual returns the caller's accepted matches, newest interaction
// first, with the partner's public profile attached. A mutual match is
// stored as two accepted records; only the most recent one per pair is
// returned.
func (uc *UseCase) ListMutual(ctx context.Context, userID int) ([]MutualMatch, error) {
	matches, err := uc.matches.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[[2]int]bool)
	out := make([]MutualMatch, 0, len(matches))
	for _, m := range matches {
		pair := [2]int{m.UserLo, m.UserHi}
		if seen[pair] {
			continue
		}
		seen[pair] = true

		otherID, ok := m.OtherUser(userID)
		if !ok {
			continue
		}
		other, err := uc.users.GetByID(ctx, otherID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, MutualMatch{Match: m, Partner: other.Public()})
	}
	return out, nil
}

// Nearby returns active profiles within matching range of userID that
// share the caller's fitness level and at least one goal and workout
// type, scored and sorted by compatibility.
func (uc *UseCase) Nearby(ctx context.Context, userID int) ([]Candidate, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := repository.NearbyFilter{
		ExcludeUserID: userID,
		FitnessLevel:  user.FitnessLevel,
		GoalsAny:      user.FitnessGoals,
		WorkoutsAny:   user.PreferredWorkouts,
		ActiveOnly:    true,
	}
	profiles, err := uc.users.FindNearby(ctx, user.LocationLat, user.LocationLon, MaxMatchDistanceMeters, filter)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		score, criteria := Score(user, p)
		criteria.Location = true
		candidates = append(candidates, Candidate{
			Profile:    p.Public(),
			Score:      score,
			Criteria:   criteria,
			DistanceKm: domain.HaversineKm(user.LocationLat, user.LocationLon, p.LocationLat, p.LocationLon),
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates, nil
}
