package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicboard/allotment-api/internal/model"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
)

type fakeAttendanceRepo struct {
	records map[string]*model.PunchRecord // keyed by date|assistant
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]*model.PunchRecord{}}
}

func (f *fakeAttendanceRepo) key(date, assistant string) string {
	return date + "|" + model.CanonKey(assistant)
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date string) ([]*model.PunchRecord, error) {
	var out []*model.PunchRecord
	for _, rec := range f.records {
		if rec.Date == date {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) PunchIn(_ context.Context, date, assistant, clock string) error {
	f.records[f.key(date, assistant)] = &model.PunchRecord{Date: date, Assistant: assistant, PunchIn: clock}
	return nil
}

func (f *fakeAttendanceRepo) PunchOut(_ context.Context, date, assistant, clock string) error {
	f.records[f.key(date, assistant)].PunchOut = clock
	return nil
}

func testService(repo *fakeAttendanceRepo) *Service {
	at := time.Date(2026, 8, 24, 9, 15, 0, 0, time.UTC)
	return NewService(repo, func() time.Time { return at }, zerolog.Nop())
}

func TestPunchLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAttendanceRepo()
	svc := testService(repo)

	// Out before in is rejected.
	err := svc.PunchOut(ctx, "Maya")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, err.(*apperrors.AppError).Code)

	require.NoError(t, svc.PunchIn(ctx, "Maya"))
	today, err := svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PunchIn, today.StateOf("maya"))
	assert.Equal(t, "09:15:00", today[model.CanonKey("Maya")].PunchIn)

	// Double punch-in keeps the first clock time.
	err = svc.PunchIn(ctx, "MAYA")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, err.(*apperrors.AppError).Code)

	require.NoError(t, svc.PunchOut(ctx, "Maya"))
	today, err = svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PunchOut, today.StateOf("Maya"))

	err = svc.PunchOut(ctx, "Maya")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, err.(*apperrors.AppError).Code)
}
