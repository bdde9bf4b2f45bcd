// Package availability decides whether an assistant is usable: for a
// requested window (resolver) or at the current moment (status board).
// Every entry point is total; bad input degrades to a permissive or
// conservative default instead of an error.
package availability

import (
	"fmt"
	"time"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/timeutil"
)

// Kind says why a verdict came out the way it did. The public contract is
// just (available, reason); the kind exists so tests can assert on the
// cause of a block.
type Kind int

const (
	KindFree Kind = iota
	KindNoAssistant
	KindWeeklyOff
	KindNotPunchedIn
	KindPunchedOut
	KindTimeBlock
	KindAppointment
	KindUnparseableWindow
)

// Verdict is the outcome of one availability check.
type Verdict struct {
	Available bool
	Kind      Kind
	Reason    string
}

func blocked(kind Kind, reason string) Verdict {
	return Verdict{Available: false, Kind: kind, Reason: reason}
}

// Snapshot is the immutable-for-the-duration input set for one engine
// invocation: today's schedule, attendance, holds and weekly-off roster.
type Snapshot struct {
	Schedule  []*model.Appointment
	Punches   model.PunchMap // nil means attendance unknown: punch gate is skipped
	Blocks    []model.TimeBlock
	WeeklyOff map[string]bool // canonical keys of assistants off today
	Today     string
	Weekday   time.Weekday
	NowMinute int
}

// AssistantAppointments returns the non-terminal schedule rows holding the
// assistant in any role slot.
func AssistantAppointments(schedule []*model.Appointment, assistant string) []*model.Appointment {
	key := model.CanonKey(assistant)
	if key == "" {
		return nil
	}
	var out []*model.Appointment
	for _, appt := range schedule {
		if appt.Status.IsTerminal() {
			continue
		}
		if _, ok := appt.HoldsAssistant(assistant); ok {
			out = append(out, appt)
		}
	}
	return out
}

// IsAvailable decides FREE/BLOCKED for the assistant over the requested
// window. The evaluation order is a documented product decision:
//
//  1. punch gate: weekly-off is reported before punched-out, so an
//     assistant who finished their shift still reads "weekly off" on
//     their off day (kept as-is pending product clarification);
//  2. an unreadable window cannot be judged, so it passes;
//  3. ad hoc time blocks;
//  4. conflicting non-terminal appointments, minus the excluded row.
func (s *Snapshot) IsAvailable(assistant, start, end, excludeRowID string) Verdict {
	key := model.CanonKey(assistant)
	if key == "" {
		return blocked(KindNoAssistant, "No assistant specified")
	}

	if s.Punches != nil {
		if state := s.Punches.StateOf(assistant); state != model.PunchIn {
			if s.WeeklyOff[key] {
				return blocked(KindWeeklyOff, fmt.Sprintf("Weekly off on %s", s.Weekday))
			}
			if state == model.PunchOut {
				return blocked(KindPunchedOut, fmt.Sprintf("Punched out at %s", s.Punches.OutTimeOf(assistant)))
			}
			return blocked(KindNotPunchedIn, "Not punched in")
		}
	}

	window, ok := timeutil.ParseWindow(start, end)
	if !ok {
		return Verdict{Available: true, Kind: KindUnparseableWindow}
	}

	for _, block := range s.Blocks {
		if block.Date != s.Today || model.CanonKey(block.Assistant) != key {
			continue
		}
		blockWindow, ok := timeutil.ParseWindow(block.StartTime, block.EndTime)
		if !ok {
			continue
		}
		if timeutil.Overlaps(window, blockWindow) {
			return blocked(KindTimeBlock, fmt.Sprintf("Blocked: %s", block.Reason))
		}
	}

	for _, appt := range AssistantAppointments(s.Schedule, assistant) {
		if excludeRowID != "" && appt.RowID == excludeRowID {
			continue
		}
		apptWindow, ok := timeutil.ParseWindow(appt.StartTime, appt.EndTime)
		if !ok {
			continue
		}
		if timeutil.Overlaps(window, apptWindow) {
			patient := appt.PatientName
			if patient == "" {
				patient = "patient"
			}
			return blocked(KindAppointment, fmt.Sprintf("With %s (%s-%s)",
				patient, timeutil.Clock12(apptWindow.Start), timeutil.Clock12(apptWindow.End)))
		}
	}

	return Verdict{Available: true, Kind: KindFree}
}

// BusyWithAppointment reports whether the assistant is in an appointment
// right now: either a window covering the current minute or an explicit
// ONGOING status. This is the coarse pre-filter the allocator applies
// before running window-specific checks.
func (s *Snapshot) BusyWithAppointment(assistant string) bool {
	for _, appt := range AssistantAppointments(s.Schedule, assistant) {
		if appt.Status.SignalsOngoing() {
			return true
		}
		window, ok := timeutil.ParseWindow(appt.StartTime, appt.EndTime)
		if ok && window.Covers(s.NowMinute) {
			return true
		}
	}
	return false
}
