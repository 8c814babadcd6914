// Package memory provides a mutex-guarded in-memory implementation of the
// repository interfaces, used by tests and local development. Values are
// copied on the way in and out so callers never alias stored state.
package memory

import (
	"sync"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/repository"
)

type Store struct {
	mu          sync.RWMutex
	users       map[int]*domain.UserProfile
	matches     map[int]*domain.Match
	chats       map[string]*domain.Chat
	nextUserID  int
	nextMatchID int
}

func NewStore() *Store {
	return &Store{
		users:       make(map[int]*domain.UserProfile),
		matches:     make(map[int]*domain.Match),
		chats:       make(map[string]*domain.Chat),
		nextUserID:  1,
		nextMatchID: 1,
	}
}

// Users returns the user directory view of the store.
func (s *Store) Users() repository.UserRepository { return &userStore{s} }

// Matches returns the match store view.
func (s *Store) Matches() repository.MatchRepository { return &matchStore{s} }

// Chats returns the chat store view.
func (s *Store) Chats() repository.ChatRepository { return &chatStore{s} }

type userStore struct{ *Store }
type matchStore struct{ *Store }
type chatStore struct{ *Store }

func copyUser(u *domain.UserProfile) *domain.UserProfile {
	c := *u
	c.FitnessGoals = append([]string(nil), u.FitnessGoals...)
	c.PreferredWorkouts = append([]string(nil), u.PreferredWorkouts...)
	c.Availability = append(domain.Availability(nil), u.Availability...)
	return &c
}

func copyMatch(m *domain.Match) *domain.Match {
	c := *m
	return &c
}

func copyChat(ch *domain.Chat) *domain.Chat {
	c := *ch
	c.Messages = make([]domain.Message, len(ch.Messages))
	for i, m := range ch.Messages {
		c.Messages[i] = m
		c.Messages[i].ReadBy = append([]int(nil), m.ReadBy...)
	}
	c.LastMessage = nil
	if len(c.Messages) > 0 {
		c.LastMessage = &c.Messages[len(c.Messages)-1]
	}
	return &c
}
