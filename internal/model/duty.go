package model

import (
	"time"

	"github.com/google/uuid"
)

// DutyFrequency is how often a recurring duty is expected to run.
type DutyFrequency string

const (
	DutyWeekly  DutyFrequency = "WEEKLY"
	DutyMonthly DutyFrequency = "MONTHLY"
)

// DutyRunStatus tracks a single timed run of a duty.
type DutyRunStatus string

const (
	DutyRunInProgress DutyRunStatus = "IN_PROGRESS"
	DutyRunDone       DutyRunStatus = "DONE"
)

// Duty is a recurring non-appointment task definition.
type Duty struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Frequency   DutyFrequency `json:"frequency" db:"frequency"`
	EstMinutes  int           `json:"est_minutes" db:"est_minutes"`
	Active      bool          `json:"active" db:"active"`
}

// DutyAssignment binds a duty to the assistant responsible for it.
type DutyAssignment struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	DutyID     uuid.UUID     `json:"duty_id" db:"duty_id"`
	DutyName   string        `json:"duty_name" db:"duty_name"`
	Frequency  DutyFrequency `json:"frequency" db:"frequency"`
	Assistant  string        `json:"assistant" db:"assistant"`
	Room       string        `json:"room" db:"room"`
	EstMinutes int           `json:"est_minutes" db:"est_minutes"`
	Active     bool          `json:"active" db:"active"`
}

// DutyRun is a timed run occupying an assistant. Read-only to the engine.
type DutyRun struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	DutyID     uuid.UUID     `json:"duty_id" db:"duty_id"`
	Date       string        `json:"date" db:"date"`
	Assistant  string        `json:"assistant" db:"assistant"`
	Status     DutyRunStatus `json:"status" db:"status"`
	StartedAt  *time.Time    `json:"started_at,omitempty" db:"started_at"`
	DueAt      *time.Time    `json:"due_at,omitempty" db:"due_at"`
	EndedAt    *time.Time    `json:"ended_at,omitempty" db:"ended_at"`
	EstMinutes int           `json:"est_minutes" db:"est_minutes"`
	Room       string        `json:"room" db:"room"`
}

// InProgress reports whether the run currently occupies its assistant.
func (r *DutyRun) InProgress() bool {
	return r.Status == DutyRunInProgress
}
