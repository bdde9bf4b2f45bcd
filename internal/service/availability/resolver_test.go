package availability

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/allotment-api/internal/model"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Today:     "2026-08-24",
		Weekday:   time.Monday,
		NowMinute: 10 * 60,
		WeeklyOff: map[string]bool{},
		Punches: model.PunchMap{
			"MAYA": {Assistant: "MAYA", PunchIn: "08:55"},
			"RAVI": {Assistant: "RAVI", PunchIn: "09:00"},
		},
	}
}

func TestIsAvailable_PunchGate(t *testing.T) {
	snap := testSnapshot()

	v := snap.IsAvailable("UNKNOWN", "09:00", "09:30", "")
	assert.False(t, v.Available)
	assert.Equal(t, KindNotPunchedIn, v.Kind)
	assert.Equal(t, "Not punched in", v.Reason)

	snap.Punches["LEELA"] = model.PunchRecord{Assistant: "LEELA", PunchIn: "08:00", PunchOut: "17:30:00"}
	v = snap.IsAvailable("Leela", "18:00", "18:30", "")
	assert.False(t, v.Available)
	assert.Equal(t, KindPunchedOut, v.Kind)
	assert.Equal(t, "Punched out at 17:30", v.Reason)
}

func TestIsAvailable_WeeklyOffBeforePunchedOut(t *testing.T) {
	// An assistant who punched out on their weekly-off day still reads
	// "weekly off"; the ordering is part of the contract.
	snap := testSnapshot()
	snap.WeeklyOff["LEELA"] = true
	snap.Punches["LEELA"] = model.PunchRecord{Assistant: "LEELA", PunchIn: "08:00", PunchOut: "12:00"}

	v := snap.IsAvailable("LEELA", "14:00", "14:30", "")
	assert.False(t, v.Available)
	assert.Equal(t, KindWeeklyOff, v.Kind)
	assert.Equal(t, "Weekly off on Monday", v.Reason)
}

func TestIsAvailable_UnparseableWindowIsPermissive(t *testing.T) {
	snap := testSnapshot()
	v := snap.IsAvailable("MAYA", "soon", "later", "")
	assert.True(t, v.Available)
	assert.Equal(t, KindUnparseableWindow, v.Kind)
}

func TestIsAvailable_TimeBlock(t *testing.T) {
	snap := testSnapshot()
	snap.Blocks = []model.TimeBlock{
		{Assistant: "MAYA", Date: "2026-08-24", StartTime: "11:00", EndTime: "12:00", Reason: "Sterilization"},
		{Assistant: "MAYA", Date: "2026-08-23", StartTime: "09:00", EndTime: "18:00", Reason: "Stale block"},
	}

	v := snap.IsAvailable("maya", "11:30", "12:30", "")
	assert.False(t, v.Available)
	assert.Equal(t, KindTimeBlock, v.Kind)
	assert.Equal(t, "Blocked: Sterilization", v.Reason)

	// Yesterday's block must not bleed into today.
	v = snap.IsAvailable("MAYA", "09:00", "10:00", "")
	assert.True(t, v.Available)
}

func TestIsAvailable_AppointmentConflict(t *testing.T) {
	snap := testSnapshot()
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "Asha", StartTime: "09:00", EndTime: "09:30", First: "MAYA", Status: model.StatusWaiting},
	}

	// Scenario: a new overlapping row is being created for the same
	// assistant; the new row itself is excluded from the scan.
	v := snap.IsAvailable("MAYA", "09:15", "09:45", "new-row")
	assert.False(t, v.Available)
	assert.Equal(t, KindAppointment, v.Kind)
	assert.Equal(t, "With Asha (09:00 AM-09:30 AM)", v.Reason)

	// Excluding the conflicting row itself clears the conflict.
	v = snap.IsAvailable("MAYA", "09:15", "09:45", "r1")
	assert.True(t, v.Available)
}

func TestIsAvailable_TerminalStatusesIgnored(t *testing.T) {
	snap := testSnapshot()
	for i, status := range []model.AppointmentStatus{
		model.StatusCancelled, model.StatusDone, model.StatusCompleted, model.StatusShifted,
	} {
		snap.Schedule = append(snap.Schedule, &model.Appointment{
			RowID: fmt.Sprintf("r%d", i), PatientName: "Old", StartTime: "09:00", EndTime: "10:00",
			First: "MAYA", Status: status,
		})
	}
	v := snap.IsAvailable("MAYA", "09:00", "10:00", "")
	assert.True(t, v.Available, "terminal rows must not block")
}

func TestIsAvailable_OverlapProperty(t *testing.T) {
	// Half-open overlap: touching windows never conflict, intersecting
	// ones always do and the reason names the held patient.
	snap := testSnapshot()
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "Binod", StartTime: "13:00", EndTime: "14:00", Second: "RAVI", Status: model.StatusPending},
	}

	v := snap.IsAvailable("RAVI", "14:00", "15:00", "")
	assert.True(t, v.Available, "windows touching at 14:00 must not conflict")

	v = snap.IsAvailable("RAVI", "13:59", "15:00", "")
	assert.False(t, v.Available)
	assert.Contains(t, v.Reason, "Binod")
}

func TestIsAvailable_OvernightNormalization(t *testing.T) {
	snap := testSnapshot()
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "Night", StartTime: "23:00", EndTime: "01:00", First: "MAYA", Status: model.StatusPending},
	}
	v := snap.IsAvailable("MAYA", "23:30", "23:45", "")
	assert.False(t, v.Available, "window inside the overnight appointment must conflict")
}

func TestIsAvailable_UnparseableAppointmentSkipped(t *testing.T) {
	snap := testSnapshot()
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "Ghost", StartTime: "??", EndTime: "", First: "MAYA", Status: model.StatusPending},
	}
	v := snap.IsAvailable("MAYA", "09:00", "10:00", "")
	assert.True(t, v.Available, "rows with unreadable times cannot be judged as conflicts")
}

func TestIsAvailable_NoPunchDataSkipsGate(t *testing.T) {
	snap := testSnapshot()
	snap.Punches = nil
	v := snap.IsAvailable("ANYONE", "09:00", "10:00", "")
	assert.True(t, v.Available, "without attendance data the punch gate is skipped")
}

func TestBusyWithAppointment(t *testing.T) {
	snap := testSnapshot() // now = 10:00
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "A", StartTime: "09:45", EndTime: "10:15", First: "MAYA", Status: model.StatusArrived},
		{RowID: "r2", PatientName: "B", StartTime: "", EndTime: "", Second: "RAVI", Status: model.StatusOngoing},
	}
	assert.True(t, snap.BusyWithAppointment("MAYA"), "covering window")
	assert.True(t, snap.BusyWithAppointment("RAVI"), "explicit ongoing status without times")
	assert.False(t, snap.BusyWithAppointment("LEELA"))
}
