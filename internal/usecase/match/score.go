package match

import (
	"math"

	"github.com/fitmatch-app/backend/internal/domain"
)

// Weights of the compatibility dimensions. They sum to 100.
const (
	goalsWeight        = 30
	workoutsWeight     = 30
	levelWeight        = 20
	availabilityWeight = 20
)

// MaxMatchDistanceMeters bounds the location criterion: pairs within this
// distance of each other count as location-compatible.
const MaxMatchDistanceMeters = 10_000

// Score computes how compatible b is as a training partner for a, on a
// 0..100 scale. The score is deliberately asymmetric: overlap fractions
// are taken against a's own goals, workouts and availability, so
// Score(a, b) answers "how much of what a wants does b cover".
//
// The returned criteria flags record which dimensions overlapped at all;
// the location flag is left for the caller, which knows both positions.
func Score(a, b *domain.UserProfile) (int, domain.MatchCriteria) {
	var criteria domain.MatchCriteria
	var total float64

	if shared := countShared(a.FitnessGoals, b.FitnessGoals); shared > 0 {
		criteria.FitnessGoals = true
		total += goalsWeight * float64(shared) / float64(len(a.FitnessGoals))
	}
	if shared := countShared(a.PreferredWorkouts, b.PreferredWorkouts); shared > 0 {
		criteria.WorkoutPreferences = true
		total += workoutsWeight * float64(shared) / float64(len(a.PreferredWorkouts))
	}
	if a.FitnessLevel == b.FitnessLevel {
		total += levelWeight
	}
	if hits := countOverlappingSlots(a.Availability, b.Availability); hits > 0 {
		criteria.Availability = true
		total += availabilityWeight * float64(hits) / float64(a.Availability.TotalSlots())
	}

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, criteria
}

func countShared(a, b []string) int {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	n := 0
	for _, v := range a {
		if set[v] {
			n++
		}
	}
	return n
}

// countOverlappingSlots counts every overlapping slot pair on matching
// weekdays. One wide slot of a's can therefore score several hits, so
// the availability fraction may exceed 1; the final clamp bounds it.
func countOverlappingSlots(a, b domain.Availability) int {
	hits := 0
	for _, day := range a {
		other, ok := b.Day(day.Day)
		if !ok {
			continue
		}
		for _, slot := range day.TimeSlots {
			for _, theirs := range other.TimeSlots {
				if slot.Overlaps(theirs) {
					hits++
				}
			}
		}
	}
	return hits
}
