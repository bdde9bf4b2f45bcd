package model

import (
	"strings"
	"time"
)

// Role identifies one of the three assistant positions on an appointment.
type Role string

const (
	RoleFirst  Role = "FIRST"
	RoleSecond Role = "SECOND"
	RoleThird  Role = "THIRD"
)

// Roles returns the role slots in allocation order. SECOND's rule may
// depend on FIRST's resolved value, so the order is load-bearing.
func Roles() [3]Role {
	return [3]Role{RoleFirst, RoleSecond, RoleThird}
}

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusWaiting   AppointmentStatus = "WAITING"
	StatusArriving  AppointmentStatus = "ARRIVING"
	StatusArrived   AppointmentStatus = "ARRIVED"
	StatusOngoing   AppointmentStatus = "ON GOING"
	StatusDone      AppointmentStatus = "DONE"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusShifted   AppointmentStatus = "SHIFTED"
	StatusLate      AppointmentStatus = "LATE"
)

// StatusOptions is the fixed status vocabulary offered to the front desk.
// Free-form legacy values still round-trip through the engine untouched.
var StatusOptions = []AppointmentStatus{
	StatusPending, StatusWaiting, StatusArriving, StatusArrived,
	StatusOngoing, StatusDone, StatusCompleted, StatusCancelled,
	StatusShifted, StatusLate,
}

var terminalTokens = []string{"DONE", "COMPLETED", "CANCELLED", "SHIFTED"}

// IsTerminal reports whether the status takes the row out of conflict and
// workload scans. Matched by token containment because legacy rows carry
// free-form values like "DONE (billed)".
func (s AppointmentStatus) IsTerminal() bool {
	upper := strings.ToUpper(string(s))
	for _, t := range terminalTokens {
		if strings.Contains(upper, t) {
			return true
		}
	}
	return false
}

// SignalsOngoing reports an explicit in-chair marker regardless of the
// row's times.
func (s AppointmentStatus) SignalsOngoing() bool {
	upper := strings.ToUpper(string(s))
	return strings.Contains(upper, "ON GOING") || strings.Contains(upper, "ONGOING")
}

// SignalsArrived reports the patient-arrived marker.
func (s AppointmentStatus) SignalsArrived() bool {
	return strings.Contains(strings.ToUpper(string(s)), "ARRIVED")
}

// Appointment is one schedule row. Clock fields stay raw text exactly as
// entered; timeutil owns parsing so a malformed time never poisons a row.
type Appointment struct {
	RowID           string            `json:"row_id" db:"row_id"`
	Date            string            `json:"date" db:"date"`
	PatientID       string            `json:"patient_id" db:"patient_id"`
	PatientName     string            `json:"patient_name" db:"patient_name"`
	StartTime       string            `json:"start_time" db:"start_time"`
	EndTime         string            `json:"end_time" db:"end_time"`
	Procedure       string            `json:"procedure" db:"procedure_name"`
	Doctor          string            `json:"doctor" db:"doctor"`
	Room            string            `json:"room" db:"room"`
	First           string            `json:"first" db:"first_assistant"`
	Second          string            `json:"second" db:"second_assistant"`
	Third           string            `json:"third" db:"third_assistant"`
	Status          AppointmentStatus `json:"status" db:"status"`
	StatusChangedAt *time.Time        `json:"status_changed_at,omitempty" db:"status_changed_at"`
	ActualStartAt   *time.Time        `json:"actual_start_at,omitempty" db:"actual_start_at"`
	ActualEndAt     *time.Time        `json:"actual_end_at,omitempty" db:"actual_end_at"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// RoleValue returns the assistant currently holding the given role slot.
func (a *Appointment) RoleValue(r Role) string {
	switch r {
	case RoleFirst:
		return a.First
	case RoleSecond:
		return a.Second
	case RoleThird:
		return a.Third
	}
	return ""
}

// SetRole writes an assistant name into the given role slot.
func (a *Appointment) SetRole(r Role, name string) {
	switch r {
	case RoleFirst:
		a.First = name
	case RoleSecond:
		a.Second = name
	case RoleThird:
		a.Third = name
	}
}

// HoldsAssistant reports whether the assistant occupies any role slot,
// and which one.
func (a *Appointment) HoldsAssistant(name string) (Role, bool) {
	key := CanonKey(name)
	if key == "" {
		return "", false
	}
	for _, role := range Roles() {
		if CanonKey(a.RoleValue(role)) == key {
			return role, true
		}
	}
	return "", false
}

// RoleAssignment maps role slots to assistant display names. Blank means
// the slot could not be filled.
type RoleAssignment map[Role]string

// CreateAppointmentRequest is the front-desk entry payload.
type CreateAppointmentRequest struct {
	Date        string `json:"date" binding:"required"`
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Procedure   string `json:"procedure"`
	Doctor      string `json:"doctor" binding:"required"`
	Room        string `json:"room"`
	First       string `json:"first"`
	Second      string `json:"second"`
	Third       string `json:"third"`
	Status      string `json:"status"`
}

// UpdateAppointmentRequest carries partial edits to a row.
type UpdateAppointmentRequest struct {
	PatientID   *string `json:"patient_id"`
	PatientName *string `json:"patient_name"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Procedure   *string `json:"procedure"`
	Doctor      *string `json:"doctor"`
	Room        *string `json:"room"`
	First       *string `json:"first"`
	Second      *string `json:"second"`
	Third       *string `json:"third"`
}
