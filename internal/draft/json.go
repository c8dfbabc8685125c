package draft

import (
	"encoding/json"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// Wire forms for the HTTP surface: a draft travels as plain content,
// never with entity IDs.

type sessionJSON struct {
	Date      time.Time      `json:"date"`
	Notes     string         `json:"notes"`
	Exercises []exerciseJSON `json:"exercises"`
}

type exerciseJSON struct {
	Name  string `json:"name"`
	Notes string `json:"notes"`
	Sets  []Set  `json:"sets"`
}

func (d Session) MarshalJSON() ([]byte, error) {
	out := sessionJSON{Date: d.Date, Notes: d.Notes, Exercises: make([]exerciseJSON, len(d.Exercises))}
	for i, ex := range d.Exercises {
		out.Exercises[i] = exerciseJSON{Name: ex.Name, Notes: ex.Notes, Sets: ex.Sets}
	}
	return json.Marshal(out)
}

func (d *Session) UnmarshalJSON(data []byte) error {
	var raw sessionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Date = raw.Date
	d.Notes = raw.Notes
	d.Exercises = make([]Exercise, len(raw.Exercises))
	for i, ex := range raw.Exercises {
		d.Exercises[i] = Exercise{Name: ex.Name, Notes: ex.Notes, Sets: ex.Sets}
	}
	return nil
}

func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(models.PayloadJSON(s.Payload))
}

func (s *Set) UnmarshalJSON(data []byte) error {
	var raw models.SetPayloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	payload, err := raw.Payload()
	if err != nil {
		return err
	}
	s.Payload = payload
	return nil
}
