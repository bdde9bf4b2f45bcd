// Package duty tracks recurring non-appointment tasks and their timed
// runs. Runs feed the status board; pending lists feed the duty page.
package duty

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
)

type Service struct {
	repo repository.DutyRepository
	now  func() time.Time
	log  zerolog.Logger
}

func NewService(repo repository.DutyRepository, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
		log:  log.With().Str("component", "duty").Logger(),
	}
}

// PendingDuty is one assignment still owed for its current period.
type PendingDuty struct {
	Assignment *model.DutyAssignment `json:"assignment"`
	PeriodFrom string                `json:"period_from"`
}

// Pending lists active assignments with no completed run since the start
// of their period: the current week for weekly duties, the current month
// for monthly ones. Weeks start on Monday to match the clinic roster.
func (s *Service) Pending(ctx context.Context) ([]PendingDuty, error) {
	assignments, err := s.repo.ListAssignments(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	weekStart := now.AddDate(0, 0, -mondayOffset(now.Weekday()))
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())

	// One fetch covers both periods; the month start is always earliest.
	earliest := monthStart
	if weekStart.Before(earliest) {
		earliest = weekStart
	}
	runs, err := s.repo.ListRunsSince(ctx, earliest.Format("2006-01-02"))
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	doneSince := func(dutyID string, from time.Time) bool {
		fromDate := from.Format("2006-01-02")
		for _, run := range runs {
			if run.DutyID.String() == dutyID && run.Status == model.DutyRunDone && run.Date >= fromDate {
				return true
			}
		}
		return false
	}

	var out []PendingDuty
	for _, a := range assignments {
		if !a.Active {
			continue
		}
		from := weekStart
		if a.Frequency == model.DutyMonthly {
			from = monthStart
		}
		if doneSince(a.DutyID.String(), from) {
			continue
		}
		out = append(out, PendingDuty{
			Assignment: a,
			PeriodFrom: from.Format("2006-01-02"),
		})
	}
	return out, nil
}

// ActiveRuns lists today's in-progress runs keyed by canonical assistant.
func (s *Service) ActiveRuns(ctx context.Context) (map[string]*model.DutyRun, error) {
	runs, err := s.repo.ActiveRuns(ctx, s.now().Format("2006-01-02"))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	out := map[string]*model.DutyRun{}
	for _, run := range runs {
		out[model.CanonKey(run.Assistant)] = run
	}
	return out, nil
}

// mondayOffset is the number of days since the last Monday.
func mondayOffset(day time.Weekday) int {
	return (int(day) + 6) % 7
}
