package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicboard/allotment-api/internal/model"
)

// ScheduleRepository persists appointment rows. The engine itself never
// touches it; handlers load a snapshot, run the engine, then write back.
type ScheduleRepository interface {
	ListByDate(ctx context.Context, date string) ([]*model.Appointment, error)
	Get(ctx context.Context, rowID string) (*model.Appointment, error)
	Create(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, appt *model.Appointment) error
	UpdateRoles(ctx context.Context, rowID string, roles model.RoleAssignment) error
}

// ProfileRepository persists assistant and doctor profiles.
type ProfileRepository interface {
	ListAssistants(ctx context.Context) ([]*model.Assistant, error)
	ListDoctors(ctx context.Context) ([]*model.Doctor, error)
	CreateAssistant(ctx context.Context, a *model.Assistant) error
	UpdateAssistant(ctx context.Context, a *model.Assistant) error
	GetAssistant(ctx context.Context, id uuid.UUID) (*model.Assistant, error)
	CreateDoctor(ctx context.Context, d *model.Doctor) error
}

// AttendanceRepository persists daily punch records.
type AttendanceRepository interface {
	ListByDate(ctx context.Context, date string) ([]*model.PunchRecord, error)
	PunchIn(ctx context.Context, date, assistant, clock string) error
	PunchOut(ctx context.Context, date, assistant, clock string) error
}

// TimeBlockRepository persists ad hoc holds.
type TimeBlockRepository interface {
	ListByDate(ctx context.Context, date string) ([]model.TimeBlock, error)
	Create(ctx context.Context, block *model.TimeBlock) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// DutyRepository reads duty definitions, assignments and timed runs.
type DutyRepository interface {
	ListAssignments(ctx context.Context) ([]*model.DutyAssignment, error)
	ListRunsSince(ctx context.Context, date string) ([]*model.DutyRun, error)
	ActiveRuns(ctx context.Context, date string) ([]*model.DutyRun, error)
}

// UserRepository reads system logins.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}
