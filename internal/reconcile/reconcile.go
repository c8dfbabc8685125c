// Package reconcile bridges drafts and the persisted entity graph. A
// draft carries content only; committing it assigns fresh identity to
// every child entity, replacing whatever the session owned before.
package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/claude/liftlog/internal/draft"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/units"
	"github.com/google/uuid"
)

// Reconciler validates drafts and commits them through the store.
type Reconciler struct {
	store *storage.Store
	log   *slog.Logger
}

// New creates a Reconciler.
func New(store *storage.Store, log *slog.Logger) *Reconciler {
	return &Reconciler{store: store, log: log}
}

// ToDraft projects a persisted session into an editable draft.
// Exercises keep their stored order; sets come out ascending by set
// number. The projection is lossless in content: committing it back
// unchanged reproduces the same session content under new child IDs.
func (r *Reconciler) ToDraft(sess *models.Session) *draft.Session {
	d := &draft.Session{
		Date:      sess.Date,
		Notes:     sess.Notes,
		Exercises: make([]draft.Exercise, len(sess.Exercises)),
	}
	for i, ex := range sess.Exercises {
		sets := make([]models.Set, len(ex.Sets))
		copy(sets, ex.Sets)
		sort.SliceStable(sets, func(a, b int) bool { return sets[a].SetNumber < sets[b].SetNumber })

		de := draft.Exercise{Name: ex.Name, Notes: ex.Notes, Sets: make([]draft.Set, len(sets))}
		for j, set := range sets {
			de.Sets[j] = draft.Set{Payload: set.Payload}
		}
		d.Exercises[i] = de
	}
	return d
}

// CommitCreate persists a draft as a brand new session owned by the
// profile. The whole subtree is created in one transaction or not at
// all.
func (r *Reconciler) CommitCreate(ctx context.Context, profileID uuid.UUID, d *draft.Session) (*models.Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var sess *models.Session
	err := r.store.WithTx(ctx, func(tx *storage.Tx) error {
		var err error
		sess, err = tx.CreateSession(ctx, profileID, d.Date, d.Notes)
		if err != nil {
			return err
		}
		sess.Exercises, err = createChildren(ctx, tx, sess.ID, d)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("workout created", "session", sess.ID, "exercises", len(sess.Exercises))
	return sess, nil
}

// CommitUpdate writes a draft back over an existing session: the
// session's own date and notes are updated, then every exercise and
// set it owned is deleted and recreated from the draft. One
// transaction end to end; a failure partway leaves the prior children
// exactly as they were.
func (r *Reconciler) CommitUpdate(ctx context.Context, sessionID uuid.UUID, d *draft.Session) (*models.Session, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	var sess *models.Session
	err := r.store.WithTx(ctx, func(tx *storage.Tx) error {
		date := d.Date
		notes := d.Notes
		if err := tx.UpdateSessionFields(ctx, sessionID, models.SessionPatch{Date: &date, Notes: &notes}); err != nil {
			return err
		}
		if err := tx.DeleteSessionChildren(ctx, sessionID); err != nil {
			return err
		}
		exercises, err := createChildren(ctx, tx, sessionID, d)
		if err != nil {
			return err
		}
		sess = &models.Session{ID: sessionID, Date: date.UTC(), Notes: notes, Exercises: exercises}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("workout updated", "session", sessionID, "exercises", len(sess.Exercises))
	return sess, nil
}

// createChildren creates the draft's exercises in draft order and
// numbers each exercise's sets 1..n by position.
func createChildren(ctx context.Context, tx *storage.Tx, sessionID uuid.UUID, d *draft.Session) ([]models.Exercise, error) {
	exercises := make([]models.Exercise, 0, len(d.Exercises))
	for _, de := range d.Exercises {
		ex, err := tx.CreateExercise(ctx, sessionID, de.Name, de.Notes)
		if err != nil {
			return nil, err
		}
		for j, ds := range de.Sets {
			set, err := tx.CreateSet(ctx, ex.ID, j+1, ds.Payload)
			if err != nil {
				return nil, err
			}
			ex.Sets = append(ex.Sets, *set)
		}
		exercises = append(exercises, *ex)
	}
	return exercises, nil
}

// SaveProfile is the onboarding/profile-edit upsert: it updates the
// existing profile in place (keeping its identity and sessions) or
// creates one if none exists yet. All fields are validated against the
// unit policy first.
func (r *Reconciler) SaveProfile(ctx context.Context, data models.ProfileData) (*models.Profile, error) {
	if err := validateProfile(data); err != nil {
		return nil, err
	}

	var saved *models.Profile
	err := r.store.WithTx(ctx, func(tx *storage.Tx) error {
		existing, err := tx.GetProfile(ctx)
		if err != nil {
			var nf models.NotFoundError
			if !errors.As(err, &nf) {
				return err
			}
			saved, err = tx.CreateProfile(ctx, data)
			return err
		}

		patch := models.ProfilePatch{
			Name:               &data.Name,
			Age:                &data.Age,
			Height:             &data.Height,
			HeightUnit:         &data.HeightUnit,
			Weight:             &data.Weight,
			WeightUnit:         &data.WeightUnit,
			OnboardingComplete: &data.OnboardingComplete,
		}
		if err := tx.UpdateProfile(ctx, existing.ID, patch); err != nil {
			return err
		}
		saved = &models.Profile{
			ID:                 existing.ID,
			Name:               data.Name,
			Age:                data.Age,
			Height:             data.Height,
			HeightUnit:         data.HeightUnit,
			Weight:             data.Weight,
			WeightUnit:         data.WeightUnit,
			OnboardingComplete: data.OnboardingComplete,
			CreatedAt:          existing.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("profile saved", "profile", saved.ID)
	return saved, nil
}

// DeleteSession removes a session and everything it owns.
func (r *Reconciler) DeleteSession(ctx context.Context, id uuid.UUID) error {
	if err := r.store.DeleteSession(ctx, id); err != nil {
		return err
	}
	r.log.Info("workout deleted", "session", id)
	return nil
}

func validateProfile(data models.ProfileData) error {
	if !units.ValidName(data.Name) {
		return models.ValidationError{Field: "name", Reason: "must be non-empty"}
	}
	if !units.ValidAge(data.Age) {
		return models.ValidationError{Field: "age", Reason: "must be between 1 and 149"}
	}
	if !units.ValidHeight(data.Height, data.HeightUnit) {
		return models.ValidationError{Field: "height", Reason: "out of range for unit " + string(data.HeightUnit)}
	}
	if !units.ValidWeight(data.Weight, data.WeightUnit) {
		return models.ValidationError{Field: "weight", Reason: "out of range for unit " + string(data.WeightUnit)}
	}
	return nil
}
