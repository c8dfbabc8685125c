package draft

import (
	"errors"
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestAddRemoveExercise verifies positional removal shifts later
// exercises down.
func TestAddRemoveExercise(t *testing.T) {
	d := New()
	d.AddExercise("  Bench Press ")
	d.AddExercise("Squat")
	d.AddExercise("Deadlift")

	if d.Exercises[0].Name != "Bench Press" {
		t.Errorf("name = %q, want trimmed %q", d.Exercises[0].Name, "Bench Press")
	}

	if err := d.RemoveExercise(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(d.Exercises) != 2 {
		t.Fatalf("len = %d, want 2", len(d.Exercises))
	}
	if d.Exercises[1].Name != "Deadlift" {
		t.Errorf("exercise 1 = %q, want Deadlift", d.Exercises[1].Name)
	}

	if err := d.RemoveExercise(5); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

// TestAddSetsBulkBound verifies the 1..20 bulk bound: 21 is rejected,
// 20 appends twenty identical sets.
func TestAddSetsBulkBound(t *testing.T) {
	d := New()
	d.AddExercise("Leg Press")

	payload := models.WeightReps{Weight: 120, Reps: 10}

	err := d.AddSets(0, payload, 21)
	var ve models.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("count=21: expected ValidationError, got %v", err)
	}
	if len(d.Exercises[0].Sets) != 0 {
		t.Fatalf("rejected add must not append, got %d sets", len(d.Exercises[0].Sets))
	}

	if err := d.AddSets(0, payload, 20); err != nil {
		t.Fatalf("count=20: %v", err)
	}
	if len(d.Exercises[0].Sets) != 20 {
		t.Fatalf("len = %d, want 20", len(d.Exercises[0].Sets))
	}
	for i, set := range d.Exercises[0].Sets {
		if set.Payload != payload {
			t.Fatalf("set %d payload = %+v, want %+v", i, set.Payload, payload)
		}
	}

	if err := d.AddSets(0, payload, 0); err == nil {
		t.Error("count=0: expected error")
	}
	if err := d.AddSets(0, nil, 1); err == nil {
		t.Error("nil payload: expected error")
	}
}

// TestRemoveSet verifies positional set removal within one exercise.
func TestRemoveSet(t *testing.T) {
	d := New()
	d.AddExercise("Rowing")
	if err := d.AddSet(0, models.LevelDuration{Level: 5, Duration: 300}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddSet(0, models.LevelDuration{Level: 7, Duration: 240}); err != nil {
		t.Fatal(err)
	}

	if err := d.RemoveSet(0, 0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(d.Exercises[0].Sets) != 1 {
		t.Fatalf("len = %d, want 1", len(d.Exercises[0].Sets))
	}
	ld := d.Exercises[0].Sets[0].Payload.(models.LevelDuration)
	if ld.Level != 7 {
		t.Errorf("remaining set level = %d, want 7", ld.Level)
	}

	if err := d.RemoveSet(0, 3); err == nil {
		t.Error("expected error for out-of-range set index")
	}
	if err := d.RemoveSet(2, 0); err == nil {
		t.Error("expected error for out-of-range exercise index")
	}
}

// TestValidate verifies the can-commit predicate: a single zero-set
// exercise blocks the whole session.
func TestValidate(t *testing.T) {
	d := New()
	if d.Validate() == nil {
		t.Error("empty draft must not validate")
	}

	d.AddExercise("Squat")
	if d.Validate() == nil {
		t.Error("zero-set exercise must block saving")
	}

	if err := d.AddSet(0, models.WeightReps{Weight: 100, Reps: 5}); err != nil {
		t.Fatal(err)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("valid draft rejected: %v", err)
	}

	d.AddExercise("Bench Press")
	if d.Validate() == nil {
		t.Error("second exercise with zero sets must block saving")
	}

	d.Exercises[1].Name = "   "
	d.Exercises[1].Sets = []Set{{Payload: models.WeightReps{Weight: 60, Reps: 8}}}
	if d.Validate() == nil {
		t.Error("blank exercise name must block saving")
	}
}
