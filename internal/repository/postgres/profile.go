package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicboard/allotment-api/internal/model"
)

func (r *profileRepository) ListAssistants(ctx context.Context) ([]*model.Assistant, error) {
	query := `
		SELECT id, name, department, phone, email, weekly_off,
			   pref_first, pref_second, pref_third, active,
			   created_at, updated_at
		FROM assistants
		ORDER BY name
	`
	var out []*model.Assistant
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list assistants: %w", err)
	}
	return out, nil
}

func (r *profileRepository) GetAssistant(ctx context.Context, id uuid.UUID) (*model.Assistant, error) {
	query := `
		SELECT id, name, department, phone, email, weekly_off,
			   pref_first, pref_second, pref_third, active,
			   created_at, updated_at
		FROM assistants
		WHERE id = $1
	`
	var a model.Assistant
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		return nil, fmt.Errorf("failed to get assistant: %w", err)
	}
	return &a, nil
}

func (r *profileRepository) CreateAssistant(ctx context.Context, a *model.Assistant) error {
	query := `
		INSERT INTO assistants (
			id, name, department, phone, email, weekly_off,
			pref_first, pref_second, pref_third, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Department, a.Phone, a.Email, a.WeeklyOff,
		a.PrefFirst, a.PrefSecond, a.PrefThird, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create assistant: %w", err)
	}
	return nil
}

func (r *profileRepository) UpdateAssistant(ctx context.Context, a *model.Assistant) error {
	query := `
		UPDATE assistants
		SET department = $1, phone = $2, email = $3, weekly_off = $4,
			pref_first = $5, pref_second = $6, pref_third = $7, active = $8,
			updated_at = $9
		WHERE id = $10
	`
	a.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		a.Department, a.Phone, a.Email, a.WeeklyOff,
		a.PrefFirst, a.PrefSecond, a.PrefThird, a.Active, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update assistant: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("assistant not found")
	}
	return nil
}

func (r *profileRepository) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT id, name, department, specialisation, reg_number, active,
			   created_at, updated_at
		FROM doctors
		ORDER BY name
	`
	var out []*model.Doctor
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return out, nil
}

func (r *profileRepository) CreateDoctor(ctx context.Context, d *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, name, department, specialisation, reg_number, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Department, d.Specialisation, d.RegNumber, d.Active,
		d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}
