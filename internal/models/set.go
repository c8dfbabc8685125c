package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SetType discriminates the two set payload shapes.
type SetType string

const (
	SetWeightReps    SetType = "weight_reps"
	SetLevelDuration SetType = "level_duration"
)

// SetPayload is the variant payload of a set. Exactly one concrete
// type holds each set's numbers, so the two shapes cannot be mixed.
type SetPayload interface {
	SetType() SetType
}

// WeightReps is a free-weight set: weight in the kilogram scale as
// entered, repetition count.
type WeightReps struct {
	Weight float64
	Reps   int
}

func (WeightReps) SetType() SetType { return SetWeightReps }

// LevelDuration is a machine/cardio set: resistance level and duration
// in seconds.
type LevelDuration struct {
	Level    int
	Duration float64
}

func (LevelDuration) SetType() SetType { return SetLevelDuration }

// SetPayloadJSON is the flattened wire form of a set payload.
type SetPayloadJSON struct {
	Type     SetType  `json:"type"`
	Weight   *float64 `json:"weight,omitempty"`
	Reps     *int     `json:"reps,omitempty"`
	Level    *int     `json:"level,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// PayloadJSON converts a payload to its wire form.
func PayloadJSON(p SetPayload) SetPayloadJSON {
	switch v := p.(type) {
	case WeightReps:
		return SetPayloadJSON{Type: SetWeightReps, Weight: &v.Weight, Reps: &v.Reps}
	case LevelDuration:
		return SetPayloadJSON{Type: SetLevelDuration, Level: &v.Level, Duration: &v.Duration}
	default:
		return SetPayloadJSON{}
	}
}

// Payload converts the wire form back into a typed payload. The fields
// of the tagged variant must be present and the other variant's fields
// absent.
func (j SetPayloadJSON) Payload() (SetPayload, error) {
	switch j.Type {
	case SetWeightReps:
		if j.Weight == nil || j.Reps == nil {
			return nil, ValidationError{Field: "set", Reason: "weight_reps set requires weight and reps"}
		}
		if j.Level != nil || j.Duration != nil {
			return nil, ValidationError{Field: "set", Reason: "weight_reps set cannot carry level or duration"}
		}
		return WeightReps{Weight: *j.Weight, Reps: *j.Reps}, nil
	case SetLevelDuration:
		if j.Level == nil || j.Duration == nil {
			return nil, ValidationError{Field: "set", Reason: "level_duration set requires level and duration"}
		}
		if j.Weight != nil || j.Reps != nil {
			return nil, ValidationError{Field: "set", Reason: "level_duration set cannot carry weight or reps"}
		}
		return LevelDuration{Level: *j.Level, Duration: *j.Duration}, nil
	default:
		return nil, ValidationError{Field: "set", Reason: "unknown set type " + string(j.Type)}
	}
}

type setJSON struct {
	ID         uuid.UUID `json:"id"`
	ExerciseID uuid.UUID `json:"exercise_id"`
	SetNumber  int       `json:"set_number"`
	SetPayloadJSON
}

// MarshalJSON flattens the payload variant into the set object.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(setJSON{
		ID:             s.ID,
		ExerciseID:     s.ExerciseID,
		SetNumber:      s.SetNumber,
		SetPayloadJSON: PayloadJSON(s.Payload),
	})
}

// UnmarshalJSON rebuilds the typed payload from the flattened form.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw setJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	payload, err := raw.Payload()
	if err != nil {
		return err
	}
	s.ID = raw.ID
	s.ExerciseID = raw.ExerciseID
	s.SetNumber = raw.SetNumber
	s.Payload = payload
	return nil
}
