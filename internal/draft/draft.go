// Package draft holds the detached, mutable working copy of a workout
// being composed or edited. Nothing here touches the store; a draft
// becomes persistent only when the reconciler commits it.
package draft

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/units"
)

// Session is one workout under composition. Exercises keep the order
// the user arranged them in; that order becomes creation order at
// commit time.
type Session struct {
	Date      time.Time
	Notes     string
	Exercises []Exercise
}

// Exercise is a draft exercise. Sets carry no numbers; a set's number
// is its 1-based position at the moment of commit.
type Exercise struct {
	Name  string
	Notes string
	Sets  []Set
}

// Set wraps a payload variant. The payload union carries all the
// numbers, so a draft set can never mix the two shapes.
type Set struct {
	Payload models.SetPayload
}

// New returns an empty draft dated now.
func New() *Session {
	return &Session{Date: time.Now()}
}

// AddExercise appends an exercise with the trimmed name, no notes and
// no sets.
func (d *Session) AddExercise(name string) {
	d.Exercises = append(d.Exercises, Exercise{Name: strings.TrimSpace(name)})
}

// RemoveExercise removes the exercise at index i, shifting the rest.
func (d *Session) RemoveExercise(i int) error {
	if i < 0 || i >= len(d.Exercises) {
		return models.ValidationError{Field: "exercise", Reason: fmt.Sprintf("index %d out of range", i)}
	}
	d.Exercises = append(d.Exercises[:i], d.Exercises[i+1:]...)
	return nil
}

// AddSet appends a single set to the exercise at index i.
func (d *Session) AddSet(i int, payload models.SetPayload) error {
	return d.AddSets(i, payload, 1)
}

// AddSets appends count identical sets to the exercise at index i.
// Bulk entry is bounded to 1..20 sets per call.
func (d *Session) AddSets(i int, payload models.SetPayload, count int) error {
	if !units.ValidBulkCount(count) {
		return models.ValidationError{Field: "count", Reason: fmt.Sprintf("%d is outside 1..20", count)}
	}
	if i < 0 || i >= len(d.Exercises) {
		return models.ValidationError{Field: "exercise", Reason: fmt.Sprintf("index %d out of range", i)}
	}
	if payload == nil {
		return models.ValidationError{Field: "set", Reason: "payload is required"}
	}
	for n := 0; n < count; n++ {
		d.Exercises[i].Sets = append(d.Exercises[i].Sets, Set{Payload: payload})
	}
	return nil
}

// RemoveSet removes the set at position j from the exercise at index i.
func (d *Session) RemoveSet(i, j int) error {
	if i < 0 || i >= len(d.Exercises) {
		return models.ValidationError{Field: "exercise", Reason: fmt.Sprintf("index %d out of range", i)}
	}
	ex := &d.Exercises[i]
	if j < 0 || j >= len(ex.Sets) {
		return models.ValidationError{Field: "set", Reason: fmt.Sprintf("index %d out of range", j)}
	}
	ex.Sets = append(ex.Sets[:j], ex.Sets[j+1:]...)
	return nil
}

// Validate is the can-commit predicate: at least one exercise, every
// exercise named and holding at least one set, every set carrying a
// payload. A zero-set exercise blocks saving the whole session.
func (d *Session) Validate() error {
	if len(d.Exercises) == 0 {
		return models.ValidationError{Field: "exercises", Reason: "a workout needs at least one exercise"}
	}
	for i, ex := range d.Exercises {
		if !units.ValidName(ex.Name) {
			return models.ValidationError{Field: "exercise", Reason: fmt.Sprintf("exercise %d has an empty name", i+1)}
		}
		if len(ex.Sets) == 0 {
			return models.ValidationError{Field: "exercise", Reason: fmt.Sprintf("exercise %q has no sets", ex.Name)}
		}
		for j, set := range ex.Sets {
			if set.Payload == nil {
				return models.ValidationError{Field: "set", Reason: fmt.Sprintf("set %d of %q has no payload", j+1, ex.Name)}
			}
		}
	}
	return nil
}
