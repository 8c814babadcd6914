// Command seed populates the database with a demo population: a cluster
// of active users around central Lisbon with varied goals, workout
// preferences and weekly availability. It prints a bearer token per user
// so the API can be exercised immediately.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fitmatch-app/backend/internal/config"
	"github.com/fitmatch-app/backend/internal/delivery/http/middleware"
	"github.com/fitmatch-app/backend/internal/domain"
	"github.com/fitmatch-app/backend/internal/infrastructure/database"
	"github.com/fitmatch-app/backend/internal/repository/postgres"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	name      string
	level     domain.FitnessLevel
	goals     []string
	workouts  []string
	days      []domain.DayAvailability
	latOffset float64
	lonOffset float64
}

// Base coordinates: Parque Eduardo VII, Lisbon. Offsets keep everyone
// within a few kilometers of each other.
const (
	baseLat = 38.7286
	baseLon = -9.1527
)

var users = []seedUser{
	{
		name:     "Ana",
		level:    domain.LevelIntermediate,
		goals:    []string{"weightLoss", "endurance"},
		workouts: []string{"running", "cycling"},
		days: []domain.DayAvailability{
			{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "07:00", End: "09:00"}}},
			{Day: "wednesday", TimeSlots: []domain.TimeSlot{{Start: "18:00", End: "20:00"}}},
		},
	},
	{
		name:      "Bruno",
		level:     domain.LevelIntermediate,
		goals:     []string{"endurance", "generalFitness"},
		workouts:  []string{"running", "swimming"},
		latOffset: 0.010,
		days: []domain.DayAvailability{
			{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "08:00", End: "10:00"}}},
			{Day: "saturday", TimeSlots: []domain.TimeSlot{{Start: "09:00", End: "12:00"}}},
		},
	},
	{
		name:      "Carla",
		level:     domain.LevelBeginner,
		goals:     []string{"flexibility", "generalFitness"},
		workouts:  []string{"yoga"},
		lonOffset: -0.012,
		days: []domain.DayAvailability{
			{Day: "tuesday", TimeSlots: []domain.TimeSlot{{Start: "19:00", End: "21:00"}}},
		},
	},
	{
		name:      "Diogo",
		level:     domain.LevelAdvanced,
		goals:     []string{"muscleGain"},
		workouts:  []string{"strength", "crossfit"},
		latOffset: -0.008,
		lonOffset: 0.006,
		days: []domain.DayAvailability{
			{Day: "monday", TimeSlots: []domain.TimeSlot{{Start: "06:00", End: "08:00"}}},
			{Day: "thursday", TimeSlots: []domain.TimeSlot{{Start: "06:00", End: "08:00"}}},
		},
	},
	{
		name:      "Elena",
		level:     domain.LevelIntermediate,
		goals:     []string{"weightLoss", "generalFitness"},
		workouts:  []string{"cardio", "running"},
		latOffset: 0.004,
		lonOffset: 0.015,
		days: []domain.DayAvailability{
			{Day: "wednesday", TimeSlots: []domain.TimeSlot{{Start: "17:30", End: "19:30"}}},
			{Day: "sunday", TimeSlots: []domain.TimeSlot{{Start: "10:00", End: "12:00"}}},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Printf("Failed to hash password: %v\n", err)
		os.Exit(1)
	}

	for _, su := range users {
		profile := &domain.UserProfile{
			Name:              su.name,
			FitnessLevel:      su.level,
			FitnessGoals:      su.goals,
			PreferredWorkouts: su.workouts,
			Availability:      su.days,
			LocationLat:       baseLat + su.latOffset,
			LocationLon:       baseLon + su.lonOffset,
			Active:            true,
		}
		if err := profile.Validate(); err != nil {
			fmt.Printf("Invalid seed profile %s: %v\n", su.name, err)
			os.Exit(1)
		}
		if err := repo.Create(ctx, profile, string(hash)); err != nil {
			fmt.Printf("Failed to create %s: %v\n", su.name, err)
			os.Exit(1)
		}

		ttl := time.Duration(cfg.JWT.AccessExpiryMin) * time.Minute
		token, err := middleware.GenerateToken(profile.ID, cfg.JWT.AccessSecret, ttl)
		if err != nil {
			fmt.Printf("Failed to issue token for %s: %v\n", su.name, err)
			os.Exit(1)
		}
		fmt.Printf("user %d (%s): %s\n", profile.ID, su.name, token)
	}
}
