// Package attendance records daily punch-in/out times. Punches gate the
// availability resolver: no punch-in means no allocation.
package attendance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
)

type Service struct {
	repo repository.AttendanceRepository
	now  func() time.Time
	log  zerolog.Logger
}

func NewService(repo repository.AttendanceRepository, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
		log:  log.With().Str("component", "attendance").Logger(),
	}
}

// Today returns today's punch records keyed by canonical assistant.
func (s *Service) Today(ctx context.Context) (model.PunchMap, error) {
	records, err := s.repo.ListByDate(ctx, s.now().Format("2006-01-02"))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	out := model.PunchMap{}
	for _, rec := range records {
		out[model.CanonKey(rec.Assistant)] = *rec
	}
	return out, nil
}

// PunchIn records the assistant's arrival. Re-punching while already in
// is rejected so the first clock time survives.
func (s *Service) PunchIn(ctx context.Context, assistant string) error {
	today, err := s.Today(ctx)
	if err != nil {
		return err
	}
	if today.StateOf(assistant) != model.PunchNone {
		return apperrors.Conflict("already punched in today", nil)
	}
	now := s.now()
	if err := s.repo.PunchIn(ctx, now.Format("2006-01-02"), assistant, now.Format("15:04:05")); err != nil {
		return apperrors.Internal(err)
	}
	s.log.Info().Str("assistant", assistant).Msg("punched in")
	return nil
}

// PunchOut records the assistant's departure. Requires an open punch-in.
func (s *Service) PunchOut(ctx context.Context, assistant string) error {
	today, err := s.Today(ctx)
	if err != nil {
		return err
	}
	switch today.StateOf(assistant) {
	case model.PunchNone:
		return apperrors.BadRequest("not punched in today", nil)
	case model.PunchOut:
		return apperrors.Conflict("already punched out today", nil)
	}
	now := s.now()
	if err := s.repo.PunchOut(ctx, now.Format("2006-01-02"), assistant, now.Format("15:04:05")); err != nil {
		return apperrors.Internal(err)
	}
	s.log.Info().Str("assistant", assistant).Msg("punched out")
	return nil
}
