package memory

import (
	"context"
	"sort"
	"time"

	"github.com/fitmatch-app/backend/internal/domain"
)

func (s *matchStore) Create(ctx context.Context, match *domain.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findPendingLocked(match.UserLo, match.UserHi) != nil {
		return domain.ErrPendingMatchExists
	}
	match.ID = s.nextMatchID
	s.nextMatchID++
	s.matches[match.ID] = copyMatch(match)
	return nil
}

func (s *matchStore) GetByID(ctx context.Context, id int) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, domain.ErrMatchNotFound
	}
	return copyMatch(m), nil
}

func (s *matchStore) FindPending(ctx context.Context, userLo, userHi int) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if m := s.findPendingLocked(userLo, userHi); m != nil {
		return copyMatch(m), nil
	}
	return nil, domain.ErrMatchNotFound
}

func (s *matchStore) FindAccepted(ctx context.Context, userLo, userHi int) (*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.matches {
		if m.UserLo == userLo && m.UserHi == userHi && m.Status == domain.MatchAccepted {
			return copyMatch(m), nil
		}
	}
	return nil, domain.ErrMatchNotFound
}

func (s *matchStore) AcceptMutual(ctx context.Context, reciprocalID int, match *domain.Match, chat *domain.Chat) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reciprocal, ok := s.matches[reciprocalID]
	if !ok {
		return domain.ErrMatchNotFound
	}
	if reciprocal.Status != domain.MatchPending {
		return domain.ErrAlreadyMatched
	}

	reciprocal.Status = domain.MatchAccepted
	reciprocal.LastInteraction = match.LastInteraction

	match.ID = s.nextMatchID
	s.nextMatchID++
	s.matches[match.ID] = copyMatch(match)

	chat.MatchID = match.ID
	s.chats[chat.ID] = copyChat(chat)
	return nil
}

func (s *matchStore) Reject(ctx context.Context, id int, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return domain.ErrMatchNotFound
	}
	switch m.Status {
	case domain.MatchAccepted:
		return domain.ErrAlreadyMatched
	case domain.MatchRejected:
		return nil
	}
	m.Status = domain.MatchRejected
	m.LastInteraction = at
	return nil
}

func (s *matchStore) ListAccepted(ctx context.Context, userID int) ([]*domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Match
	for _, m := range s.matches {
		if m.Status == domain.MatchAccepted && m.HasUser(userID) {
			out = append(out, copyMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastInteraction.After(out[j].LastInteraction)
	})
	return out, nil
}

func (s *Store) findPendingLocked(userLo, userHi int) *domain.Match {
	for _, m := range s.matches {
		if m.UserLo == userLo && m.UserHi == userHi && m.Status == domain.MatchPending {
			return m
		}
	}
	return nil
}
