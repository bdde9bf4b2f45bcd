package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicboard/allotment-api/internal/model"
)

func (r *timeBlockRepository) ListByDate(ctx context.Context, date string) ([]model.TimeBlock, error) {
	query := `
		SELECT id, assistant, date, start_time, end_time, reason, created_at
		FROM time_blocks
		WHERE date = $1
		ORDER BY start_time
	`
	var out []model.TimeBlock
	if err := r.db.SelectContext(ctx, &out, query, date); err != nil {
		return nil, fmt.Errorf("failed to list time blocks: %w", err)
	}
	return out, nil
}

func (r *timeBlockRepository) Create(ctx context.Context, block *model.TimeBlock) error {
	query := `
		INSERT INTO time_blocks (id, assistant, date, start_time, end_time, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	block.ID = uuid.New()
	block.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		block.ID, block.Assistant, block.Date, block.StartTime, block.EndTime,
		block.Reason, block.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create time block: %w", err)
	}
	return nil
}

func (r *timeBlockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time block: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("time block not found")
	}
	return nil
}
