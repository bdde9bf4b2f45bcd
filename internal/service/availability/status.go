package availability

import (
	"fmt"
	"time"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/timeutil"
)

// Status is a point-in-time reading for the dashboard and pre-filtering.
type Status string

const (
	StatusFree    Status = "FREE"
	StatusBusy    Status = "BUSY"
	StatusBlocked Status = "BLOCKED"
	StatusUnknown Status = "UNKNOWN"
)

// AssistantStatus is one row of the status board.
type AssistantStatus struct {
	Assistant  string `json:"assistant"`
	Status     Status `json:"status"`
	Reason     string `json:"reason"`
	Department string `json:"department"`
	Patient    string `json:"patient,omitempty"`
	Doctor     string `json:"doctor,omitempty"`
	Remaining  string `json:"remaining,omitempty"`
}

// StatusOf computes the current status for one assistant. Precedence:
// punch gate, active time block, in-progress duty run, covering or
// explicitly flagged appointment, then FREE. An appointment whose status
// says ONGOING or ARRIVED counts as busy even when its times are
// unreadable, so sloppy manual edits never produce a false "free".
// Without attendance data the board cannot vouch for anyone and reads
// UNKNOWN instead of a false "free".
func (s *Snapshot) StatusOf(assistant, department string, run *model.DutyRun, now time.Time) AssistantStatus {
	if department == "" {
		department = "SHARED"
	}
	st := AssistantStatus{Assistant: assistant, Department: department}

	if s.Punches == nil {
		st.Status = StatusUnknown
		st.Reason = "No attendance data"
		return st
	}
	if state := s.Punches.StateOf(assistant); state != model.PunchIn {
		st.Status = StatusBlocked
		switch {
		case s.WeeklyOff[model.CanonKey(assistant)]:
			st.Reason = fmt.Sprintf("Weekly off on %s", s.Weekday)
		case state == model.PunchOut:
			st.Reason = fmt.Sprintf("Punched out at %s", s.Punches.OutTimeOf(assistant))
		default:
			st.Reason = "Not punched in"
		}
		return st
	}

	key := model.CanonKey(assistant)
	for _, block := range s.Blocks {
		if block.Date != s.Today || model.CanonKey(block.Assistant) != key {
			continue
		}
		window, ok := timeutil.ParseWindow(block.StartTime, block.EndTime)
		if !ok {
			continue
		}
		if window.Covers(s.NowMinute) {
			st.Status = StatusBlocked
			st.Reason = block.Reason
			return st
		}
	}

	if run != nil && run.InProgress() {
		st.Status = StatusBusy
		st.Reason = "On duty"
		if run.DueAt != nil {
			st.Remaining = RemainingClock(*run.DueAt, now)
			st.Reason = fmt.Sprintf("On duty, %s left", st.Remaining)
		}
		return st
	}

	for _, appt := range AssistantAppointments(s.Schedule, assistant) {
		window, parseable := timeutil.ParseWindow(appt.StartTime, appt.EndTime)
		busy := appt.Status.SignalsOngoing() ||
			(!parseable && appt.Status.SignalsArrived()) ||
			(parseable && window.Covers(s.NowMinute))
		if !busy {
			continue
		}
		patient := appt.PatientName
		if patient == "" {
			patient = "patient"
		}
		st.Status = StatusBusy
		st.Reason = fmt.Sprintf("With %s", patient)
		st.Patient = appt.PatientName
		st.Doctor = appt.Doctor
		return st
	}

	st.Status = StatusFree
	st.Reason = "Available"
	return st
}

// RemainingClock formats the time left until due as MM:SS, floored at
// 00:00 once the deadline passes.
func RemainingClock(dueAt, now time.Time) string {
	left := dueAt.Sub(now)
	if left <= 0 {
		return "00:00"
	}
	total := int(left.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
