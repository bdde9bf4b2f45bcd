package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicboard/allotment-api/internal/model"
)

func (r *scheduleRepository) ListByDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	query := `
		SELECT row_id, date, patient_id, patient_name, start_time, end_time,
			   procedure_name, doctor, room, first_assistant, second_assistant,
			   third_assistant, status, status_changed_at, actual_start_at,
			   actual_end_at, created_at, updated_at
		FROM appointments
		WHERE date = $1
		ORDER BY start_time, created_at
	`
	var rows []*model.Appointment
	if err := r.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

func (r *scheduleRepository) Get(ctx context.Context, rowID string) (*model.Appointment, error) {
	query := `
		SELECT row_id, date, patient_id, patient_name, start_time, end_time,
			   procedure_name, doctor, room, first_assistant, second_assistant,
			   third_assistant, status, status_changed_at, actual_start_at,
			   actual_end_at, created_at, updated_at
		FROM appointments
		WHERE row_id = $1
	`
	var row model.Appointment
	if err := r.db.GetContext(ctx, &row, query, rowID); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &row, nil
}

func (r *scheduleRepository) Create(ctx context.Context, appt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			row_id, date, patient_id, patient_name, start_time, end_time,
			procedure_name, doctor, room, first_assistant, second_assistant,
			third_assistant, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		appt.RowID,
		appt.Date,
		appt.PatientID,
		appt.PatientName,
		appt.StartTime,
		appt.EndTime,
		appt.Procedure,
		appt.Doctor,
		appt.Room,
		appt.First,
		appt.Second,
		appt.Third,
		appt.Status,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *scheduleRepository) Update(ctx context.Context, appt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, patient_name = $2, start_time = $3, end_time = $4,
			procedure_name = $5, doctor = $6, room = $7, first_assistant = $8,
			second_assistant = $9, third_assistant = $10, status = $11,
			status_changed_at = $12, actual_start_at = $13, actual_end_at = $14,
			updated_at = $15
		WHERE row_id = $16
	`
	result, err := r.db.ExecContext(ctx, query,
		appt.PatientID,
		appt.PatientName,
		appt.StartTime,
		appt.EndTime,
		appt.Procedure,
		appt.Doctor,
		appt.Room,
		appt.First,
		appt.Second,
		appt.Third,
		appt.Status,
		appt.StatusChangedAt,
		appt.ActualStartAt,
		appt.ActualEndAt,
		appt.UpdatedAt,
		appt.RowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *scheduleRepository) UpdateRoles(ctx context.Context, rowID string, roles model.RoleAssignment) error {
	query := `
		UPDATE appointments
		SET first_assistant = $1, second_assistant = $2, third_assistant = $3,
			updated_at = $4
		WHERE row_id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		roles[model.RoleFirst],
		roles[model.RoleSecond],
		roles[model.RoleThird],
		time.Now(),
		rowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment roles: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}
