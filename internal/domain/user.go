package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

var fitnessGoals = map[string]bool{
	"weightLoss":     true,
	"muscleGain":     true,
	"endurance":      true,
	"flexibility":    true,
	"generalFitness": true,
}

var workoutTypes = map[string]bool{
	"cardio":   true,
	"strength": true,
	"yoga":     true,
	"crossfit": true,
	"running":  true,
	"swimming": true,
	"cycling":  true,
}

var weekDays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// TimeSlot is a half-open [Start, End) interval in "HH:MM" wall-clock form.
type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Overlaps reports whether two half-open intervals intersect
// (start1 < end2 AND start2 < end1). Unparseable slots never overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	s1, err := ParseClock(s.Start)
	if err != nil {
		return false
	}
	e1, err := ParseClock(s.End)
	if err != nil {
		return false
	}
	s2, err := ParseClock(other.Start)
	if err != nil {
		return false
	}
	e2, err := ParseClock(other.End)
	if err != nil {
		return false
	}
	return s1 < e2 && s2 < e1
}

type DayAvailability struct {
	Day       string     `json:"day"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// Availability is stored as a JSONB column.
type Availability []DayAvailability

func (a Availability) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Availability) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Availability", src)
	}
}

// TotalSlots counts every time slot across all days.
func (a Availability) TotalSlots() int {
	n := 0
	for _, d := range a {
		n += len(d.TimeSlots)
	}
	return n
}

// Day returns the availability entry for the given weekday, if present.
func (a Availability) Day(day string) (DayAvailability, bool) {
	for _, d := range a {
		if d.Day == day {
			return d, true
		}
	}
	return DayAvailability{}, false
}

type UserProfile struct {
	ID                int
	Name              string
	ProfileImage      *string
	FitnessLevel      FitnessLevel
	FitnessGoals      []string
	PreferredWorkouts []string
	Availability      Availability
	LocationLat       float64
	LocationLon       float64
	Active            bool
	CreatedAt         time.Time
}

// PublicProfile is the projection of a user exposed to other users.
type PublicProfile struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	ProfileImage *string `json:"profile_image"`
}

func (u *UserProfile) Public() PublicProfile {
	return PublicProfile{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
}

// Validate checks the profile invariants: coordinates in range, known enum
// values and well-formed time slots with start < end.
func (u *UserProfile) Validate() error {
	if u.LocationLat < -90 || u.LocationLat > 90 || u.LocationLon < -180 || u.LocationLon > 180 {
		return ErrInvalidCoordinates
	}
	switch u.FitnessLevel {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
	default:
		return fmt.Errorf("%w: fitness level %q", ErrInvalidEnumValue, u.FitnessLevel)
	}
	for _, g := range u.FitnessGoals {
		if !fitnessGoals[g] {
			return fmt.Errorf("%w: fitness goal %q", ErrInvalidEnumValue, g)
		}
	}
	for _, w := range u.PreferredWorkouts {
		if !workoutTypes[w] {
			return fmt.Errorf("%w: workout type %q", ErrInvalidEnumValue, w)
		}
	}
	for _, d := range u.Availability {
		if !weekDays[d.Day] {
			return fmt.Errorf("%w: day %q", ErrInvalidEnumValue, d.Day)
		}
		for _, s := range d.TimeSlots {
			start, err := ParseClock(s.Start)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
			}
			end, err := ParseClock(s.End)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
			}
			if start >= end {
				return fmt.Errorf("%w: %s-%s", ErrInvalidTimeSlot, s.Start, s.End)
			}
		}
	}
	return nil
}
