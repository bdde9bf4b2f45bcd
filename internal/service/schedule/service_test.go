package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/allotment-api/internal/model"
)

type fakeScheduleRepo struct {
	rows map[string]*model.Appointment
}

func newFakeScheduleRepo(rows ...*model.Appointment) *fakeScheduleRepo {
	f := &fakeScheduleRepo{rows: map[string]*model.Appointment{}}
	for _, r := range rows {
		f.rows[r.RowID] = r
	}
	return f
}

func (f *fakeScheduleRepo) ListByDate(_ context.Context, date string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, r := range f.rows {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Get(_ context.Context, rowID string) (*model.Appointment, error) {
	r, ok := f.rows[rowID]
	if !ok {
		return nil, errors.New("no row")
	}
	copied := *r
	return &copied, nil
}

func (f *fakeScheduleRepo) Create(_ context.Context, appt *model.Appointment) error {
	f.rows[appt.RowID] = appt
	return nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, appt *model.Appointment) error {
	f.rows[appt.RowID] = appt
	return nil
}

func (f *fakeScheduleRepo) UpdateRoles(_ context.Context, rowID string, roles model.RoleAssignment) error {
	r, ok := f.rows[rowID]
	if !ok {
		return errors.New("no row")
	}
	for _, role := range model.Roles() {
		r.SetRole(role, roles[role])
	}
	return nil
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func testService(repo *fakeScheduleRepo) *Service {
	return NewService(repo, nil, nil, fixedClock(), zerolog.Nop())
}

func TestCreate_MintsRowIDAndDefaults(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := testService(repo)

	row, err := svc.Create(context.Background(), &model.CreateAppointmentRequest{
		Date: "2026-08-24", PatientName: "Asha", StartTime: "10:00", EndTime: "10:30", Doctor: "Dr. Rao",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, row.RowID)
	assert.Equal(t, model.StatusPending, row.Status)
	assert.Contains(t, repo.rows, row.RowID)
}

func TestUpdateStatus_StampsClocks(t *testing.T) {
	repo := newFakeScheduleRepo(&model.Appointment{RowID: "r1", Date: "2026-08-24", Status: model.StatusWaiting})
	svc := testService(repo)
	ctx := context.Background()

	row, err := svc.UpdateStatus(ctx, "r1", model.StatusOngoing)
	require.NoError(t, err)
	require.NotNil(t, row.ActualStartAt)
	firstStart := *row.ActualStartAt
	assert.NotNil(t, row.StatusChangedAt)
	assert.Nil(t, row.ActualEndAt)

	// Bouncing through another status never overwrites the first start.
	_, err = svc.UpdateStatus(ctx, "r1", model.StatusWaiting)
	require.NoError(t, err)
	row, err = svc.UpdateStatus(ctx, "r1", model.StatusOngoing)
	require.NoError(t, err)
	assert.Equal(t, firstStart, *row.ActualStartAt)

	row, err = svc.UpdateStatus(ctx, "r1", model.StatusDone)
	require.NoError(t, err)
	assert.NotNil(t, row.ActualEndAt)
}

func TestRemoveAssistant_ClearsEveryHeldSlot(t *testing.T) {
	repo := newFakeScheduleRepo(&model.Appointment{
		RowID: "r1", Date: "2026-08-24", First: "Maya", Second: "maya", Third: "Ravi",
	})
	svc := testService(repo)

	row, err := svc.RemoveAssistant(context.Background(), "r1", "MAYA")
	require.NoError(t, err)
	assert.Empty(t, row.First)
	assert.Empty(t, row.Second)
	assert.Equal(t, "Ravi", row.Third)
}

func TestFilterOngoing(t *testing.T) {
	rows := []*model.Appointment{
		{RowID: "r1", StartTime: "09:45", EndTime: "10:15", Status: model.StatusWaiting},
		{RowID: "r2", StartTime: "", EndTime: "", Status: model.StatusOngoing},
		{RowID: "r3", StartTime: "11:00", EndTime: "11:30", Status: model.StatusWaiting},
		{RowID: "r4", StartTime: "09:45", EndTime: "10:15", Status: model.StatusDone},
	}
	got := FilterOngoing(rows, 10*60)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].RowID)
	assert.Equal(t, "r2", got[1].RowID)
}

func TestFilterUpcoming(t *testing.T) {
	rows := []*model.Appointment{
		{RowID: "r1", StartTime: "10:10", Status: model.StatusPending},
		{RowID: "r2", StartTime: "10:45", Status: model.StatusPending},
		{RowID: "r3", StartTime: "09:00", Status: model.StatusPending},
		{RowID: "r4", StartTime: "10:10", Status: model.StatusCancelled},
		{RowID: "r5", StartTime: "??", Status: model.StatusPending},
	}
	got := FilterUpcoming(rows, 10*60, 30)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].RowID)
}
