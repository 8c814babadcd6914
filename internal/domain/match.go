package domain

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// MatchCriteria records which compatibility dimensions overlapped when the
// like was recorded.
type MatchCriteria struct {
	FitnessGoals       bool `json:"fitnessGoals"`
	WorkoutPreferences bool `json:"workoutPreferences"`
	Availability       bool `json:"availability"`
	Location           bool `json:"location"`
}

// Match is a like from InitiatedBy on the other half of the pair. The pair is
// unordered; it is stored sorted (UserLo < UserHi) so the one-pending-per-pair
// constraint can live on plain columns.
type Match struct {
	ID              int           `json:"id"`
	UserLo          int           `json:"user_lo"`
	UserHi          int           `json:"user_hi"`
	Status          MatchStatus   `json:"status"`
	Score           int           `json:"match_score"`
	Criteria        MatchCriteria `json:"match_criteria"`
	InitiatedBy     int           `json:"initiated_by"`
	CreatedAt       time.Time     `json:"created_at"`
	LastInteraction time.Time     `json:"last_interaction"`
}

// SortPair normalizes an unordered user pair.
func SortPair(a, b int) (lo, hi int) {
	if a > b {
		return b, a
	}
	return a, b
}

func (m *Match) HasUser(userID int) bool {
	return m.UserLo == userID || m.UserHi == userID
}

func (m *Match) OtherUser(userID int) (int, bool) {
	switch userID {
	case m.UserLo:
		return m.UserHi, true
	case m.UserHi:
		return m.UserLo, true
	}
	return 0, false
}
