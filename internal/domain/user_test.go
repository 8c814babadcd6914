package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProfile() *UserProfile {
	return &UserProfile{
		Name:              "Ana",
		FitnessLevel:      LevelIntermediate,
		FitnessGoals:      []string{"endurance", "weightLoss"},
		PreferredWorkouts: []string{"running"},
		Availability: Availability{
			{Day: "monday", TimeSlots: []TimeSlot{{Start: "18:00", End: "19:00"}}},
		},
		LocationLat: 38.7286,
		LocationLon: -9.1527,
		Active:      true,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validProfile().Validate())

	tests := []struct {
		name   string
		mutate func(*UserProfile)
		want   error
	}{
		{"lat too high", func(u *UserProfile) { u.LocationLat = 91 }, ErrInvalidCoordinates},
		{"lon too low", func(u *UserProfile) { u.LocationLon = -181 }, ErrInvalidCoordinates},
		{"bad level", func(u *UserProfile) { u.FitnessLevel = "pro" }, ErrInvalidEnumValue},
		{"bad goal", func(u *UserProfile) { u.FitnessGoals = []string{"bulking"} }, ErrInvalidEnumValue},
		{"bad workout", func(u *UserProfile) { u.PreferredWorkouts = []string{"parkour"} }, ErrInvalidEnumValue},
		{"bad day", func(u *UserProfile) { u.Availability[0].Day = "funday" }, ErrInvalidEnumValue},
		{"unparseable slot", func(u *UserProfile) { u.Availability[0].TimeSlots[0].Start = "25:99" }, ErrInvalidTimeSlot},
		{"inverted slot", func(u *UserProfile) { u.Availability[0].TimeSlots[0] = TimeSlot{Start: "19:00", End: "18:00"} }, ErrInvalidTimeSlot},
		{"empty slot", func(u *UserProfile) { u.Availability[0].TimeSlots[0] = TimeSlot{Start: "18:00", End: "18:00"} }, ErrInvalidTimeSlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validProfile()
			tt.mutate(u)
			assert.ErrorIs(t, u.Validate(), tt.want)
		})
	}
}

func TestTimeSlotOverlaps(t *testing.T) {
	base := TimeSlot{Start: "18:00", End: "19:00"}

	assert.True(t, base.Overlaps(TimeSlot{Start: "18:30", End: "20:00"}))
	assert.True(t, base.Overlaps(TimeSlot{Start: "17:00", End: "18:01"}))
	assert.True(t, base.Overlaps(base))

	// Half-open intervals: touching edges do not overlap.
	assert.False(t, base.Overlaps(TimeSlot{Start: "19:00", End: "20:00"}))
	assert.False(t, base.Overlaps(TimeSlot{Start: "17:00", End: "18:00"}))
	assert.False(t, base.Overlaps(TimeSlot{Start: "bad", End: "20:00"}))
}
