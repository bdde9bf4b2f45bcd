package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clinicboard/allotment-api/internal/model"
)

func TestStatusOf_PunchGateWins(t *testing.T) {
	snap := testSnapshot()
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)

	st := snap.StatusOf("GHOST", "OPD", nil, now)
	assert.Equal(t, StatusBlocked, st.Status)
	assert.Equal(t, "Not punched in", st.Reason)

	snap.WeeklyOff["GHOST"] = true
	st = snap.StatusOf("GHOST", "OPD", nil, now)
	assert.Equal(t, "Weekly off on Monday", st.Reason)
}

func TestStatusOf_UnknownWithoutAttendance(t *testing.T) {
	snap := testSnapshot()
	snap.Punches = nil

	st := snap.StatusOf("MAYA", "OPD", nil, time.Now())
	assert.Equal(t, StatusUnknown, st.Status)
	assert.Equal(t, "No attendance data", st.Reason)
}

func TestStatusOf_TimeBlock(t *testing.T) {
	snap := testSnapshot() // now = 10:00
	snap.Blocks = []model.TimeBlock{
		{Assistant: "MAYA", Date: "2026-08-24", StartTime: "09:30", EndTime: "10:30", Reason: "Backend Work"},
	}
	st := snap.StatusOf("Maya", "OPD", nil, time.Now())
	assert.Equal(t, StatusBlocked, st.Status)
	assert.Equal(t, "Backend Work", st.Reason)
}

func TestStatusOf_DutyRunWithCountdown(t *testing.T) {
	snap := testSnapshot()
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	due := now.Add(4*time.Minute + 30*time.Second)
	run := &model.DutyRun{Assistant: "MAYA", Status: model.DutyRunInProgress, DueAt: &due}

	st := snap.StatusOf("MAYA", "OPD", run, now)
	assert.Equal(t, StatusBusy, st.Status)
	assert.Equal(t, "04:30", st.Remaining)
	assert.Equal(t, "On duty, 04:30 left", st.Reason)

	// A finished run is ignored; covering appointments win next.
	run.Status = model.DutyRunDone
	st = snap.StatusOf("MAYA", "OPD", run, now)
	assert.Equal(t, StatusFree, st.Status)
}

func TestStatusOf_AppointmentPrecedence(t *testing.T) {
	snap := testSnapshot() // now = 10:00
	snap.Schedule = []*model.Appointment{
		{RowID: "r1", PatientName: "Asha", Doctor: "Dr. Rao", StartTime: "09:45", EndTime: "10:30", First: "MAYA", Status: model.StatusWaiting},
		{RowID: "r2", PatientName: "Binod", StartTime: "", EndTime: "", Second: "RAVI", Status: model.StatusArrived},
	}

	st := snap.StatusOf("MAYA", "OPD", nil, time.Now())
	assert.Equal(t, StatusBusy, st.Status)
	assert.Equal(t, "With Asha", st.Reason)
	assert.Equal(t, "Dr. Rao", st.Doctor)

	// ARRIVED with unreadable times still reads busy.
	st = snap.StatusOf("RAVI", "OPD", nil, time.Now())
	assert.Equal(t, StatusBusy, st.Status)
	assert.Equal(t, "With Binod", st.Reason)
}

func TestStatusOf_FreeAndSharedDefault(t *testing.T) {
	snap := testSnapshot()
	st := snap.StatusOf("MAYA", "", nil, time.Now())
	assert.Equal(t, StatusFree, st.Status)
	assert.Equal(t, "Available", st.Reason)
	assert.Equal(t, "SHARED", st.Department)
}

func TestRemainingClock(t *testing.T) {
	now := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "12:05", RemainingClock(now.Add(12*time.Minute+5*time.Second), now))
	assert.Equal(t, "00:00", RemainingClock(now.Add(-time.Minute), now))
	assert.Equal(t, "00:00", RemainingClock(now, now))
}
