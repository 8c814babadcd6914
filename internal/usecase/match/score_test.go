package match

import (
	"testing"

	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func profile(level domain.FitnessLevel, goals, workouts []string, avail domain.Availability) *domain.UserProfile {
	return &domain.UserProfile{
		FitnessLevel:      level,
		FitnessGoals:      goals,
		PreferredWorkouts: workouts,
		Availability:      avail,
	}
}

func mondayEvening() domain.Availability {
	return domain.Availability{
		{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "18:00", End: "19:00"}}},
	}
}

func TestScoreEndToEnd(t *testing.T) {
	a := profile(domain.LevelIntermediate,
		[]string{"endurance", "weightLoss"},
		[]string{"running"},
		mondayEvening())
	b := profile(domain.LevelIntermediate,
		[]string{"endurance"},
		[]string{"running", "yoga"},
		mondayEvening())

	// 30*(1/2) + 30*(1/1) + 20 + 20*(1/1) = 85
	score, criteria := Score(a, b)
	assert.Equal(t, 85, score)
	assert.True(t, criteria.FitnessGoals)
	assert.True(t, criteria.WorkoutPreferences)
	assert.True(t, criteria.Availability)
	assert.False(t, criteria.Location, "location is the caller's concern")
}

func TestScoreAsymmetry(t *testing.T) {
	a := profile(domain.LevelIntermediate,
		[]string{"endurance", "weightLoss"},
		[]string{"running", "cycling"},
		mondayEvening())
	b := profile(domain.LevelIntermediate,
		[]string{"endurance"},
		[]string{"running", "yoga"},
		mondayEvening())

	// The denominators come from the first argument's sets, so the score
	// answers "how much of what I want does the other cover".
	ab, _ := Score(a, b) // 15 + 15 + 20 + 20
	ba, _ := Score(b, a) // 30 + 15 + 20 + 20
	assert.Equal(t, 70, ab)
	assert.Equal(t, 85, ba)
	assert.NotEqual(t, ab, ba)
}

func TestScoreDisjointProfilesCappedByAvailability(t *testing.T) {
	a := profile(domain.LevelBeginner,
		[]string{"weightLoss"},
		[]string{"yoga"},
		mondayEvening())
	b := profile(domain.LevelAdvanced,
		[]string{"muscleGain"},
		[]string{"strength"},
		mondayEvening())

	score, criteria := Score(a, b)
	assert.LessOrEqual(t, score, 20)
	assert.False(t, criteria.FitnessGoals)
	assert.False(t, criteria.WorkoutPreferences)
	assert.True(t, criteria.Availability)
}

func TestScoreEmptySetsContributeZero(t *testing.T) {
	a := profile(domain.LevelIntermediate, nil, nil, nil)
	b := profile(domain.LevelIntermediate,
		[]string{"endurance"},
		[]string{"running"},
		mondayEvening())

	score, criteria := Score(a, b)
	assert.Equal(t, 20, score, "only the level term remains")
	assert.False(t, criteria.FitnessGoals)
	assert.False(t, criteria.WorkoutPreferences)
	assert.False(t, criteria.Availability)
}

func TestScoreIdenticalProfilesIsFull(t *testing.T) {
	a := profile(domain.LevelAdvanced,
		[]string{"muscleGain", "endurance"},
		[]string{"strength", "crossfit"},
		mondayEvening())

	score, criteria := Score(a, a)
	assert.Equal(t, 100, score)
	assert.True(t, criteria.FitnessGoals)
	assert.True(t, criteria.WorkoutPreferences)
	assert.True(t, criteria.Availability)
}

func TestScoreRoundsHalfUp(t *testing.T) {
	// Goal overlap 1/4 contributes 7.5; with the level term that is 27.5,
	// which rounds up to 28.
	a := profile(domain.LevelBeginner,
		[]string{"weightLoss", "endurance", "flexibility", "generalFitness"},
		nil, nil)
	b := profile(domain.LevelBeginner, []string{"weightLoss"}, nil, nil)
	score, _ := Score(a, b)
	assert.Equal(t, 28, score)
}

func TestScoreCountsEveryOverlappingSlotPair(t *testing.T) {
	a := profile(domain.LevelBeginner, nil, nil, domain.Availability{
		{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "08:00", End: "12:00"}}},
	})
	b := profile(domain.LevelAdvanced, nil, nil, domain.Availability{
		{Day: "monday", TimeSlots: []domain.TimeSlot{
			{Start: "08:00", End: "09:00"},
			{Start: "10:00", End: "11:00"},
		}},
	})

	// a's single wide slot overlaps both of b's slots: 2 hits over 1
	// slot, so the availability term is 20*(2/1) = 40.
	score, criteria := Score(a, b)
	assert.Equal(t, 40, score)
	assert.True(t, criteria.Availability)
}

func TestScoreAvailabilityNeedsSameDayOverlap(t *testing.T) {
	a := profile(domain.LevelBeginner, nil, nil, domain.Availability{
		{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "18:00", End: "19:00"}}},
		{Day: "tuesday", TimeSlots: []domain.TimeSlot{{Start: "18:00", End: "19:00"}}},
	})
	b := profile(domain.LevelAdvanced, nil, nil, domain.Availability{
		// Same clock time, different day: no overlap.
		{Day: "wednesday", TimeSlots: []domain.TimeSlot{{Start: "18:00", End: "19:00"}}},
		// Touching intervals on monday do not overlap (half-open).
		{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "19:00", End: "20:00"}}},
	})

	score, criteria := Score(a, b)
	assert.Equal(t, 0, score)
	assert.False(t, criteria.Availability)

	b.Availability[1].TimeSlots[0].Start = "18:30"
	score, criteria = Score(a, b)
	assert.Equal(t, 10, score, "one of a's two slots overlaps")
	assert.True(t, criteria.Availability)
}
