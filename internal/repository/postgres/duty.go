package postgres

import (
	"context"
	"fmt"

	"github.com/clinicboard/allotment-api/internal/model"
)

func (r *dutyRepository) ListAssignments(ctx context.Context) ([]*model.DutyAssignment, error) {
	query := `
		SELECT da.id, da.duty_id, d.name AS duty_name, d.frequency,
			   da.assistant, da.room, d.est_minutes, da.active
		FROM duty_assignments da
		JOIN duties d ON d.id = da.duty_id
		WHERE d.active
		ORDER BY d.name
	`
	var out []*model.DutyAssignment
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list duty assignments: %w", err)
	}
	return out, nil
}

func (r *dutyRepository) ListRunsSince(ctx context.Context, date string) ([]*model.DutyRun, error) {
	query := `
		SELECT id, duty_id, date, assistant, status, started_at, due_at,
			   ended_at, est_minutes, room
		FROM duty_runs
		WHERE date >= $1
		ORDER BY date
	`
	var out []*model.DutyRun
	if err := r.db.SelectContext(ctx, &out, query, date); err != nil {
		return nil, fmt.Errorf("failed to list duty runs: %w", err)
	}
	return out, nil
}

func (r *dutyRepository) ActiveRuns(ctx context.Context, date string) ([]*model.DutyRun, error) {
	query := `
		SELECT id, duty_id, date, assistant, status, started_at, due_at,
			   ended_at, est_minutes, room
		FROM duty_runs
		WHERE date = $1 AND status = $2
	`
	var out []*model.DutyRun
	if err := r.db.SelectContext(ctx, &out, query, date, model.DutyRunInProgress); err != nil {
		return nil, fmt.Errorf("failed to list active duty runs: %w", err)
	}
	return out, nil
}
