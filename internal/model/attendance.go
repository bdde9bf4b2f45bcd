package model

import (
	"time"

	"github.com/google/uuid"
)

// PunchState is the three-state attendance reading for one assistant today.
type PunchState string

const (
	PunchNone PunchState = "NONE"
	PunchIn   PunchState = "IN"
	PunchOut  PunchState = "OUT"
)

// PunchRecord is one assistant's attendance row for one date.
type PunchRecord struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Date      string    `json:"date" db:"date"`
	Assistant string    `json:"assistant" db:"assistant"`
	PunchIn   string    `json:"punch_in" db:"punch_in"`
	PunchOut  string    `json:"punch_out" db:"punch_out"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// State derives the punch status from the recorded times.
func (r *PunchRecord) State() PunchState {
	if r == nil || r.PunchIn == "" {
		return PunchNone
	}
	if r.PunchOut != "" {
		return PunchOut
	}
	return PunchIn
}

// PunchMap indexes today's punch records by canonical assistant key.
type PunchMap map[string]PunchRecord

// StateOf returns the punch state for an assistant, PunchNone when there
// is no record today.
func (m PunchMap) StateOf(assistant string) PunchState {
	rec, ok := m[CanonKey(assistant)]
	if !ok {
		return PunchNone
	}
	return rec.State()
}

// OutTimeOf returns the punch-out clock text for an assistant, trimmed to
// HH:MM for display.
func (m PunchMap) OutTimeOf(assistant string) string {
	rec, ok := m[CanonKey(assistant)]
	if !ok {
		return ""
	}
	out := rec.PunchOut
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
