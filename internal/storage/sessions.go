package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// CreateSession inserts a session owned by the given profile.
func (s *Store) CreateSession(ctx context.Context, profileID uuid.UUID, date time.Time, notes string) (*models.Session, error) {
	var sess *models.Session
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		sess, err = tx.CreateSession(ctx, profileID, date, notes)
		return err
	})
	return sess, err
}

// CreateSession is the transactional variant of Store.CreateSession.
func (t *Tx) CreateSession(ctx context.Context, profileID uuid.UUID, date time.Time, notes string) (*models.Session, error) {
	var exists int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles WHERE id = ?`, profileID.String()).Scan(&exists)
	if err != nil {
		return nil, storageErr("checking profile", err)
	}
	if exists == 0 {
		return nil, models.NotFoundError{Entity: "profile", ID: profileID}
	}

	sess := &models.Session{
		ID:        uuid.New(),
		ProfileID: profileID,
		Date:      date.UTC(),
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	_, err = t.tx.ExecContext(ctx,
		`INSERT INTO sessions (id, profile_id, date, notes, created_at) VALUES (?, ?, ?, ?, ?)`,
		sess.ID.String(), sess.ProfileID.String(), sess.Date, sess.Notes, sess.CreatedAt)
	if err != nil {
		return nil, storageErr("inserting session", err)
	}
	return sess, nil
}

// UpdateSessionFields updates a session's own date and notes. Child
// replacement goes through the reconciler, not here.
func (s *Store) UpdateSessionFields(ctx context.Context, id uuid.UUID, patch models.SessionPatch) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		return tx.UpdateSessionFields(ctx, id, patch)
	})
}

// UpdateSessionFields is the transactional variant of
// Store.UpdateSessionFields.
func (t *Tx) UpdateSessionFields(ctx context.Context, id uuid.UUID, patch models.SessionPatch) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)

	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, patch.Date.UTC())
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id.String())
	query := fmt.Sprintf(`UPDATE sessions SET %s WHERE id = ?`, strings.Join(sets, ", "))

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return storageErr("updating session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("updating session", err)
	}
	if n == 0 {
		return models.NotFoundError{Entity: "session", ID: id}
	}
	return nil
}

// DeleteSession removes a session and, transitively, every exercise
// and set it owns. The cascade is explicit and child-first so a
// failure at any point rolls the whole delete back.
func (s *Store) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		return tx.DeleteSession(ctx, id)
	})
}

// DeleteSession is the transactional variant of Store.DeleteSession.
func (t *Tx) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := t.DeleteSessionChildren(ctx, id); err != nil {
		return err
	}

	res, err := t.tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id.String())
	if err != nil {
		return storageErr("deleting session", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("deleting session", err)
	}
	if n == 0 {
		return models.NotFoundError{Entity: "session", ID: id}
	}
	return nil
}

// DeleteSessionChildren removes every exercise owned by the session
// together with their sets, leaving the session row itself in place.
// This is the first half of the reconciler's full-replace update.
func (t *Tx) DeleteSessionChildren(ctx context.Context, sessionID uuid.UUID) error {
	_, err := t.tx.ExecContext(ctx,
		`DELETE FROM sets WHERE exercise_id IN (SELECT id FROM exercises WHERE session_id = ?)`,
		sessionID.String())
	if err != nil {
		return storageErr("deleting session sets", err)
	}

	_, err = t.tx.ExecContext(ctx, `DELETE FROM exercises WHERE session_id = ?`, sessionID.String())
	if err != nil {
		return storageErr("deleting session exercises", err)
	}
	return nil
}

// GetSession loads one session with its exercises (creation order) and
// their sets (ascending set number).
func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, profile_id, date, notes, created_at FROM sessions WHERE id = ?`,
		id.String())

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundError{Entity: "session", ID: id}
	}
	if err != nil {
		return nil, storageErr("querying session", err)
	}

	exercises, err := s.loadExercises(ctx, `e.session_id = ?`, id.String())
	if err != nil {
		return nil, err
	}
	sess.Exercises = exercises[sess.ID]
	if sess.Exercises == nil {
		sess.Exercises = []models.Exercise{}
	}
	return sess, nil
}

// ListSessions loads all of a profile's sessions as full aggregates.
// No session ordering is promised here; ordering belongs to the query
// layer.
func (s *Store) ListSessions(ctx context.Context, profileID uuid.UUID) ([]models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_id, date, notes, created_at FROM sessions WHERE profile_id = ?`,
		profileID.String())
	if err != nil {
		return nil, storageErr("querying sessions", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, storageErr("scanning session", err)
		}
		sessions = append(sessions, *sess)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("querying sessions", err)
	}

	exercises, err := s.loadExercises(ctx,
		`e.session_id IN (SELECT id FROM sessions WHERE profile_id = ?)`, profileID.String())
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		sessions[i].Exercises = exercises[sessions[i].ID]
		if sessions[i].Exercises == nil {
			sessions[i].Exercises = []models.Exercise{}
		}
	}
	return sessions, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*models.Session, error) {
	var (
		sess          models.Session
		id, profileID string
	)
	if err := row.Scan(&id, &profileID, &sess.Date, &sess.Notes, &sess.CreatedAt); err != nil {
		return nil, err
	}

	var err error
	if sess.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if sess.ProfileID, err = uuid.Parse(profileID); err != nil {
		return nil, err
	}
	return &sess, nil
}
