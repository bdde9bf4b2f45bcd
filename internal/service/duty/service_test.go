package duty

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/allotment-api/internal/model"
)

type fakeDutyRepo struct {
	assignments []*model.DutyAssignment
	runs        []*model.DutyRun
}

func (f *fakeDutyRepo) ListAssignments(context.Context) ([]*model.DutyAssignment, error) {
	return f.assignments, nil
}

func (f *fakeDutyRepo) ListRunsSince(_ context.Context, date string) ([]*model.DutyRun, error) {
	var out []*model.DutyRun
	for _, run := range f.runs {
		if run.Date >= date {
			out = append(out, run)
		}
	}
	return out, nil
}

func (f *fakeDutyRepo) ActiveRuns(_ context.Context, date string) ([]*model.DutyRun, error) {
	var out []*model.DutyRun
	for _, run := range f.runs {
		if run.Date == date && run.InProgress() {
			out = append(out, run)
		}
	}
	return out, nil
}

func TestPending(t *testing.T) {
	// Wednesday 2026-08-19; the week started Monday the 17th, the month
	// on the 1st.
	now := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)

	weeklyDone := uuid.New()
	weeklyOwed := uuid.New()
	monthlyDone := uuid.New()
	monthlyStale := uuid.New()

	repo := &fakeDutyRepo{
		assignments: []*model.DutyAssignment{
			{DutyID: weeklyDone, DutyName: "Sterilizer check", Frequency: model.DutyWeekly, Assistant: "Maya", Active: true},
			{DutyID: weeklyOwed, DutyName: "Stock count", Frequency: model.DutyWeekly, Assistant: "Ravi", Active: true},
			{DutyID: monthlyDone, DutyName: "Deep clean", Frequency: model.DutyMonthly, Assistant: "Leela", Active: true},
			{DutyID: monthlyStale, DutyName: "Audit", Frequency: model.DutyMonthly, Assistant: "Noor", Active: true},
			{DutyID: uuid.New(), DutyName: "Retired", Frequency: model.DutyWeekly, Assistant: "Gone", Active: false},
		},
		runs: []*model.DutyRun{
			{DutyID: weeklyDone, Date: "2026-08-18", Status: model.DutyRunDone},
			// Done last week: does not satisfy this week.
			{DutyID: weeklyOwed, Date: "2026-08-14", Status: model.DutyRunDone},
			{DutyID: monthlyDone, Date: "2026-08-05", Status: model.DutyRunDone},
			// In progress is not done.
			{DutyID: monthlyStale, Date: "2026-08-10", Status: model.DutyRunInProgress},
		},
	}

	svc := NewService(repo, func() time.Time { return now }, zerolog.Nop())
	pending, err := svc.Pending(context.Background())
	require.NoError(t, err)

	var names []string
	for _, p := range pending {
		names = append(names, p.Assignment.DutyName)
	}
	assert.Equal(t, []string{"Stock count", "Audit"}, names)
	assert.Equal(t, "2026-08-17", pending[0].PeriodFrom)
	assert.Equal(t, "2026-08-01", pending[1].PeriodFrom)
}

func TestActiveRuns(t *testing.T) {
	now := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)
	repo := &fakeDutyRepo{
		runs: []*model.DutyRun{
			{DutyID: uuid.New(), Date: "2026-08-19", Assistant: "Maya", Status: model.DutyRunInProgress},
			{DutyID: uuid.New(), Date: "2026-08-19", Assistant: "Ravi", Status: model.DutyRunDone},
		},
	}
	svc := NewService(repo, func() time.Time { return now }, zerolog.Nop())

	runs, err := svc.ActiveRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Contains(t, runs, model.CanonKey("Maya"))
}

func TestMondayOffset(t *testing.T) {
	assert.Equal(t, 0, mondayOffset(time.Monday))
	assert.Equal(t, 2, mondayOffset(time.Wednesday))
	assert.Equal(t, 6, mondayOffset(time.Sunday))
}
