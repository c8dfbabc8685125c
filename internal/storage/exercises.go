package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CreateExercise appends an exercise to a session. Insertion order is
// the display order: exercises are read back sorted by creation time,
// then rowid.
func (s *Store) CreateExercise(ctx context.Context, sessionID uuid.UUID, name, notes string) (*models.Exercise, error) {
	var ex *models.Exercise
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		ex, err = tx.CreateExercise(ctx, sessionID, name, notes)
		return err
	})
	return ex, err
}

// CreateExercise is the transactional variant of Store.CreateExercise.
func (t *Tx) CreateExercise(ctx context.Context, sessionID uuid.UUID, name, notes string) (*models.Exercise, error) {
	var exists int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID.String()).Scan(&exists)
	if err != nil {
		return nil, storageErr("checking session", err)
	}
	if exists == 0 {
		return nil, models.NotFoundError{Entity: "session", ID: sessionID}
	}

	ex := &models.Exercise{
		ID:        uuid.New(),
		SessionID: sessionID,
		Name:      name,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO exercises (id, session_id, name, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		ex.ID.String(), ex.SessionID.String(), ex.Name, ex.Notes, ex.CreatedAt)
	if err != nil {
		return nil, storageErr("inserting exercise", err)
	}
	return ex, nil
}

// DeleteExercise removes an exercise and its sets.
func (s *Store) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		_, err := deleteExercise(ctx, tx, id)
		return err
	})
}

// DeleteExercise is the transactional variant of Store.DeleteExercise.
func (t *Tx) DeleteExercise(ctx context.Context, id uuid.UUID) error {
	_, err := deleteExercise(ctx, t, id)
	return err
}

func deleteExercise(ctx context.Context, t *Tx, id uuid.UUID) (int64, error) {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM sets WHERE exercise_id = ?`, id.String())
	if err != nil {
		return 0, storageErr("deleting exercise sets", err)
	}

	res, err := t.tx.ExecContext(ctx, `DELETE FROM exercises WHERE id = ?`, id.String())
	if err != nil {
		return 0, storageErr("deleting exercise", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storageErr("deleting exercise", err)
	}
	if n == 0 {
		return 0, models.NotFoundError{Entity: "exercise", ID: id}
	}
	return n, nil
}

// loadExercises fetches exercises matching the given filter, with
// their sets attached, keyed by session ID. Exercises come back in
// creation order, sets ascending by set number.
func (s *Store) loadExercises(ctx context.Context, where string, args ...any) (map[uuid.UUID][]models.Exercise, error) {
	query := fmt.Sprintf(
		`SELECT e.id, e.session_id, e.name, e.notes, e.created_at
		 FROM exercises e
		 WHERE %s
		 ORDER BY e.created_at ASC, e.rowid ASC`, where)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("querying exercises", err)
	}
	defer rows.Close()

	bySession := make(map[uuid.UUID][]models.Exercise)
	byID := make(map[uuid.UUID]int) // exercise ID -> index in its session slice
	sessionOf := make(map[uuid.UUID]uuid.UUID)

	for rows.Next() {
		var (
			ex            models.Exercise
			id, sessionID string
		)
		if err := rows.Scan(&id, &sessionID, &ex.Name, &ex.Notes, &ex.CreatedAt); err != nil {
			return nil, storageErr("scanning exercise", err)
		}
		if ex.ID, err = uuid.Parse(id); err != nil {
			return nil, storageErr("parsing exercise id", err)
		}
		if ex.SessionID, err = uuid.Parse(sessionID); err != nil {
			return nil, storageErr("parsing session id", err)
		}
		ex.Sets = []models.Set{}

		bySession[ex.SessionID] = append(bySession[ex.SessionID], ex)
		byID[ex.ID] = len(bySession[ex.SessionID]) - 1
		sessionOf[ex.ID] = ex.SessionID
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("querying exercises", err)
	}

	setQuery := fmt.Sprintf(
		`SELECT st.id, st.exercise_id, st.set_number, st.set_type, st.weight, st.reps, st.level, st.duration
		 FROM sets st
		 JOIN exercises e ON e.id = st.exercise_id
		 WHERE %s
		 ORDER BY st.set_number ASC`, where)

	setRows, err := s.db.QueryContext(ctx, setQuery, args...)
	if err != nil {
		return nil, storageErr("querying sets", err)
	}
	defer setRows.Close()

	for setRows.Next() {
		set, err := scanSet(setRows)
		if err != nil {
			return nil, storageErr("scanning set", err)
		}
		sid, ok := sessionOf[set.ExerciseID]
		if !ok {
			continue
		}
		idx := byID[set.ExerciseID]
		bySession[sid][idx].Sets = append(bySession[sid][idx].Sets, *set)
	}
	if err := setRows.Err(); err != nil {
		return nil, storageErr("querying sets", err)
	}

	return bySession, nil
}
