package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	"github.com/clinicboard/allotment-api/internal/service/profile"
)

// Entry is one line of an availability report.
type Entry struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Service assembles engine snapshots from the stores and answers
// availability and status queries.
type Service struct {
	schedule   repository.ScheduleRepository
	attendance repository.AttendanceRepository
	blocks     repository.TimeBlockRepository
	duties     repository.DutyRepository
	directory  *profile.Directory
	now        func() time.Time
	log        zerolog.Logger
}

func NewService(
	schedule repository.ScheduleRepository,
	attendance repository.AttendanceRepository,
	blocks repository.TimeBlockRepository,
	duties repository.DutyRepository,
	directory *profile.Directory,
	now func() time.Time,
	log zerolog.Logger,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		schedule:   schedule,
		attendance: attendance,
		blocks:     blocks,
		duties:     duties,
		directory:  directory,
		now:        now,
		log:        log.With().Str("component", "availability").Logger(),
	}
}

// Now exposes the service clock so collaborators share one notion of
// "today".
func (s *Service) Now() time.Time {
	return s.now()
}

// Directory exposes the injected profile directory.
func (s *Service) Directory() *profile.Directory {
	return s.directory
}

// Snapshot loads today's state into one immutable input set. Store
// failures degrade to empty sections rather than failing the caller; the
// engine must stay usable beneath the manual workflow.
func (s *Service) Snapshot(ctx context.Context) *Snapshot {
	now := s.now()
	today := now.Format("2006-01-02")

	snap := &Snapshot{
		Today:     today,
		Weekday:   now.Weekday(),
		NowMinute: now.Hour()*60 + now.Minute(),
		WeeklyOff: s.directory.WeeklyOff(ctx, now.Weekday()),
	}

	rows, err := s.schedule.ListByDate(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load schedule for snapshot")
	} else {
		snap.Schedule = rows
	}

	punches, err := s.attendance.ListByDate(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load attendance for snapshot")
	} else {
		snap.Punches = model.PunchMap{}
		for _, rec := range punches {
			snap.Punches[model.CanonKey(rec.Assistant)] = *rec
		}
	}

	blocks, err := s.blocks.ListByDate(ctx, today)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load time blocks for snapshot")
	} else {
		snap.Blocks = blocks
	}

	return snap
}

// Report runs the window-specific resolver across every assistant.
func (s *Service) Report(ctx context.Context, start, end, excludeRowID string) []Entry {
	snap := s.Snapshot(ctx)
	assistants := s.directory.AllAssistants(ctx)
	out := make([]Entry, 0, len(assistants))
	for _, name := range assistants {
		verdict := snap.IsAvailable(name, start, end, excludeRowID)
		out = append(out, Entry{Name: name, Available: verdict.Available, Reason: verdict.Reason})
	}
	return out
}

// Board computes the point-in-time status map for the dashboard.
func (s *Service) Board(ctx context.Context) map[string]AssistantStatus {
	snap := s.Snapshot(ctx)
	now := s.now()

	activeRuns := map[string]*model.DutyRun{}
	runs, err := s.duties.ActiveRuns(ctx, snap.Today)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load duty runs for status board")
	} else {
		for _, run := range runs {
			activeRuns[model.CanonKey(run.Assistant)] = run
		}
	}

	out := map[string]AssistantStatus{}
	for _, name := range s.directory.AllAssistants(ctx) {
		key := model.CanonKey(name)
		dept := s.directory.DepartmentForAssistant(ctx, name)
		out[key] = snap.StatusOf(name, dept, activeRuns[key], now)
	}
	return out
}
