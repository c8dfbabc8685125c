package storage

import (
	"context"
	"database/sql"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CreateSet inserts a set for an exercise. The payload variant decides
// which columns are populated; the schema rejects mixed or missing
// variant fields.
func (s *Store) CreateSet(ctx context.Context, exerciseID uuid.UUID, setNumber int, payload models.SetPayload) (*models.Set, error) {
	var set *models.Set
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		set, err = tx.CreateSet(ctx, exerciseID, setNumber, payload)
		return err
	})
	return set, err
}

// CreateSet is the transactional variant of Store.CreateSet.
func (t *Tx) CreateSet(ctx context.Context, exerciseID uuid.UUID, setNumber int, payload models.SetPayload) (*models.Set, error) {
	if payload == nil {
		return nil, models.ValidationError{Field: "set", Reason: "payload is required"}
	}

	var exists int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM exercises WHERE id = ?`, exerciseID.String()).Scan(&exists)
	if err != nil {
		return nil, storageErr("checking exercise", err)
	}
	if exists == 0 {
		return nil, models.NotFoundError{Entity: "exercise", ID: exerciseID}
	}

	set := &models.Set{
		ID:         uuid.New(),
		ExerciseID: exerciseID,
		SetNumber:  setNumber,
		Payload:    payload,
	}

	var weight, duration sql.NullFloat64
	var reps, level sql.NullInt64
	switch p := payload.(type) {
	case models.WeightReps:
		weight = sql.NullFloat64{Float64: p.Weight, Valid: true}
		reps = sql.NullInt64{Int64: int64(p.Reps), Valid: true}
	case models.LevelDuration:
		level = sql.NullInt64{Int64: int64(p.Level), Valid: true}
		duration = sql.NullFloat64{Float64: p.Duration, Valid: true}
	}

	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO sets (id, exercise_id, set_number, set_type, weight, reps, level, duration)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		set.ID.String(), set.ExerciseID.String(), set.SetNumber, string(payload.SetType()),
		weight, reps, level, duration)
	if err != nil {
		return nil, storageErr("inserting set", err)
	}
	return set, nil
}

// DeleteSet removes a single set.
func (s *Store) DeleteSet(ctx context.Context, id uuid.UUID) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		res, err := tx.tx.ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, id.String())
		if err != nil {
			return storageErr("deleting set", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return storageErr("deleting set", err)
		}
		if n == 0 {
			return models.NotFoundError{Entity: "set", ID: id}
		}
		return nil
	})
}

func scanSet(row rowScanner) (*models.Set, error) {
	var (
		id, exerciseID, setType string
		setNumber               int
		weight, duration        sql.NullFloat64
		reps, level             sql.NullInt64
	)
	if err := row.Scan(&id, &exerciseID, &setNumber, &setType, &weight, &reps, &level, &duration); err != nil {
		return nil, err
	}

	set := &models.Set{SetNumber: setNumber}
	var err error
	if set.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if set.ExerciseID, err = uuid.Parse(exerciseID); err != nil {
		return nil, err
	}

	switch models.SetType(setType) {
	case models.SetWeightReps:
		set.Payload = models.WeightReps{Weight: weight.Float64, Reps: int(reps.Int64)}
	case models.SetLevelDuration:
		set.Payload = models.LevelDuration{Level: int(level.Int64), Duration: duration.Float64}
	}
	return set, nil
}
