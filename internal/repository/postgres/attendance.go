package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicboard/allotment-api/internal/model"
)

func (r *attendanceRepository) ListByDate(ctx context.Context, date string) ([]*model.PunchRecord, error) {
	query := `
		SELECT id, date, assistant, punch_in, punch_out, updated_at
		FROM attendance
		WHERE date = $1
		ORDER BY assistant
	`
	var out []*model.PunchRecord
	if err := r.db.SelectContext(ctx, &out, query, date); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return out, nil
}

// PunchIn upserts on (date, assistant); a repeated punch-in keeps the
// original clock time.
func (r *attendanceRepository) PunchIn(ctx context.Context, date, assistant, clock string) error {
	query := `
		INSERT INTO attendance (id, date, assistant, punch_in, punch_out, updated_at)
		VALUES ($1, $2, $3, $4, '', $5)
		ON CONFLICT (date, assistant) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), date, assistant, clock, time.Now())
	if err != nil {
		return fmt.Errorf("failed to punch in: %w", err)
	}
	return nil
}

func (r *attendanceRepository) PunchOut(ctx context.Context, date, assistant, clock string) error {
	query := `
		UPDATE attendance
		SET punch_out = $1, updated_at = $2
		WHERE date = $3 AND assistant = $4
	`
	result, err := r.db.ExecContext(ctx, query, clock, time.Now(), date, assistant)
	if err != nil {
		return fmt.Errorf("failed to punch out: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("attendance record not found")
	}
	return nil
}
