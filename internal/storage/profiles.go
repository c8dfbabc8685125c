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

// CreateProfile inserts the profile. The system holds exactly one
// profile; a second create fails with ConflictError. The upsert path
// for normal UI flow lives in the reconciler.
func (s *Store) CreateProfile(ctx context.Context, data models.ProfileData) (*models.Profile, error) {
	var p *models.Profile
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		p, err = createProfile(ctx, tx.tx, data)
		return err
	})
	return p, err
}

// CreateProfile is the transactional variant of Store.CreateProfile.
func (t *Tx) CreateProfile(ctx context.Context, data models.ProfileData) (*models.Profile, error) {
	return createProfile(ctx, t.tx, data)
}

func createProfile(ctx context.Context, q querier, data models.ProfileData) (*models.Profile, error) {
	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count); err != nil {
		return nil, storageErr("counting profiles", err)
	}
	if count > 0 {
		return nil, models.ConflictError{Reason: "a profile already exists"}
	}

	p := &models.Profile{
		ID:                 uuid.New(),
		Name:               data.Name,
		Age:                data.Age,
		Height:             data.Height,
		HeightUnit:         data.HeightUnit,
		Weight:             data.Weight,
		WeightUnit:         data.WeightUnit,
		OnboardingComplete: data.OnboardingComplete,
		CreatedAt:          time.Now().UTC(),
	}

	_, err := q.ExecContext(ctx,
		`INSERT INTO profiles (id, name, age, height, height_unit, weight, weight_unit, onboarding_complete, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.Age, p.Height, string(p.HeightUnit),
		p.Weight, string(p.WeightUnit), p.OnboardingComplete, p.CreatedAt)
	if err != nil {
		return nil, storageErr("inserting profile", err)
	}
	return p, nil
}

// GetProfile returns the singleton profile, or NotFoundError before
// onboarding has completed.
func (s *Store) GetProfile(ctx context.Context) (*models.Profile, error) {
	return getProfile(ctx, s.db)
}

// GetProfile is the transactional variant of Store.GetProfile.
func (t *Tx) GetProfile(ctx context.Context) (*models.Profile, error) {
	return getProfile(ctx, t.tx)
}

func getProfile(ctx context.Context, q querier) (*models.Profile, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, name, age, height, height_unit, weight, weight_unit, onboarding_complete, created_at
		 FROM profiles LIMIT 1`)

	var (
		p          models.Profile
		id, hu, wu string
	)
	err := row.Scan(&id, &p.Name, &p.Age, &p.Height, &hu, &p.Weight, &wu, &p.OnboardingComplete, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.NotFoundError{Entity: "profile"}
	}
	if err != nil {
		return nil, storageErr("querying profile", err)
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, storageErr("parsing profile id", err)
	}
	p.HeightUnit = models.HeightUnit(hu)
	p.WeightUnit = models.WeightUnit(wu)
	return &p, nil
}

// UpdateProfile applies a partial update. Validation is the caller's
// responsibility (unit policy runs before commits, not here).
func (s *Store) UpdateProfile(ctx context.Context, id uuid.UUID, patch models.ProfilePatch) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		return tx.UpdateProfile(ctx, id, patch)
	})
}

// UpdateProfile is the transactional variant of Store.UpdateProfile.
func (t *Tx) UpdateProfile(ctx context.Context, id uuid.UUID, patch models.ProfilePatch) error {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Age != nil {
		sets = append(sets, "age = ?")
		args = append(args, *patch.Age)
	}
	if patch.Height != nil {
		sets = append(sets, "height = ?")
		args = append(args, *patch.Height)
	}
	if patch.HeightUnit != nil {
		sets = append(sets, "height_unit = ?")
		args = append(args, string(*patch.HeightUnit))
	}
	if patch.Weight != nil {
		sets = append(sets, "weight = ?")
		args = append(args, *patch.Weight)
	}
	if patch.WeightUnit != nil {
		sets = append(sets, "weight_unit = ?")
		args = append(args, string(*patch.WeightUnit))
	}
	if patch.OnboardingComplete != nil {
		sets = append(sets, "onboarding_complete = ?")
		args = append(args, *patch.OnboardingComplete)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, id.String())
	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = ?`, strings.Join(sets, ", "))

	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return storageErr("updating profile", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("updating profile", err)
	}
	if n == 0 {
		return models.NotFoundError{Entity: "profile", ID: id}
	}
	return nil
}
