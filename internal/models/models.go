package models

import (
	"time"

	"github.com/google/uuid"
)

// HeightUnit is the unit a profile's height was entered in.
type HeightUnit string

const (
	HeightCm HeightUnit = "cm"
	HeightIn HeightUnit = "in"
)

// WeightUnit is the unit a profile's weight was entered in.
type WeightUnit string

const (
	WeightKg  WeightUnit = "kg"
	WeightLbs WeightUnit = "lbs"
)

// Profile is the single user profile owning all sessions. Height and
// weight magnitudes are stored as entered; the unit tags say how to
// read them.
type Profile struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Age                int        `json:"age"`
	Height             float64    `json:"height"`
	HeightUnit         HeightUnit `json:"height_unit"`
	Weight             float64    `json:"weight"`
	WeightUnit         WeightUnit `json:"weight_unit"`
	OnboardingComplete bool       `json:"onboarding_complete"`
	CreatedAt          time.Time  `json:"created_at"`
}

// ProfileData carries the full field set for profile create/upsert.
type ProfileData struct {
	Name               string     `json:"name"`
	Age                int        `json:"age"`
	Height             float64    `json:"height"`
	HeightUnit         HeightUnit `json:"height_unit"`
	Weight             float64    `json:"weight"`
	WeightUnit         WeightUnit `json:"weight_unit"`
	OnboardingComplete bool       `json:"onboarding_complete"`
}

// ProfilePatch is a partial profile update. Nil fields are left alone.
type ProfilePatch struct {
	Name               *string
	Age                *int
	Height             *float64
	HeightUnit         *HeightUnit
	Weight             *float64
	WeightUnit         *WeightUnit
	OnboardingComplete *bool
}

// Session is one logged workout. Exercises are ordered by creation.
type Session struct {
	ID        uuid.UUID  `json:"id"`
	ProfileID uuid.UUID  `json:"profile_id"`
	Date      time.Time  `json:"date"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	Exercises []Exercise `json:"exercises"`
}

// SessionPatch updates a session's own fields. Child replacement goes
// through the reconciler, never through a patch.
type SessionPatch struct {
	Date  *time.Time
	Notes *string
}

// Exercise belongs to exactly one session and owns its sets.
type Exercise struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	Name      string    `json:"name"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	Sets      []Set     `json:"sets"`
}

// Set is one performed set. SetNumber is 1-based and dense within the
// owning exercise after every commit.
type Set struct {
	ID         uuid.UUID
	ExerciseID uuid.UUID
	SetNumber  int
	Payload    SetPayload
}
