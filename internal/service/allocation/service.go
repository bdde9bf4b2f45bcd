package allocation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	"github.com/clinicboard/allotment-api/internal/service/availability"
	"github.com/clinicboard/allotment-api/internal/timeutil"
	"github.com/clinicboard/allotment-api/pkg/metrics"
)

// Service wires the pure allocator to the stores: it resolves the
// department, assembles pools and snapshots, runs the pass and persists
// the winners.
type Service struct {
	store    *Store
	avail    *availability.Service
	schedule repository.ScheduleRepository
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewService(
	store *Store,
	avail *availability.Service,
	schedule repository.ScheduleRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:    store,
		avail:    avail,
		schedule: schedule,
		metrics:  m,
		log:      log.With().Str("component", "allocator").Logger(),
	}
}

// SlotRequest describes one appointment to fill, saved or not.
type SlotRequest struct {
	Doctor        string
	Start, End    string
	Current       model.RoleAssignment
	OnlyFillEmpty bool
	ExcludeRowID  string
}

// AllocateSlot runs one allocation pass for the request. It never returns
// an error: any internal failure leaves the affected slots blank.
func (s *Service) AllocateSlot(ctx context.Context, req SlotRequest) Result {
	snap := s.avail.Snapshot(ctx)
	return s.run(ctx, snap, req)
}

func (s *Service) run(ctx context.Context, snap *availability.Snapshot, req SlotRequest) Result {
	started := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.AllocationLatency.Observe(time.Since(started).Seconds())
		}
	}()

	directory := s.avail.Directory()
	cfg := s.store.Config(ctx)
	department := directory.DepartmentForDoctor(ctx, req.Doctor)

	deptPool := directory.AssistantsInDepartment(ctx, department)
	fullPool := directory.AllAssistants(ctx)

	prefs := map[string]map[model.Role]model.RolePreference{}
	if cfg.Global.UsePreferenceFlags {
		for _, name := range fullPool {
			prefs[model.CanonKey(name)] = directory.PreferenceFlags(ctx, name)
		}
	}

	result := Allocate(Input{
		Doctor:        req.Doctor,
		Department:    department,
		Start:         req.Start,
		End:           req.End,
		ExcludeRowID:  req.ExcludeRowID,
		Current:       req.Current,
		OnlyFillEmpty: req.OnlyFillEmpty,
		Config:        cfg,
		DeptPool:      deptPool,
		FullPool:      fullPool,
		Prefs:         prefs,
		Snap:          snap,
	})

	for _, role := range model.Roles() {
		if s.metrics != nil {
			s.metrics.RecordAllocation(string(role), string(result.Details[role].Outcome))
		}
	}
	return result
}

// AllocateRow fills one saved schedule row and persists any slots the
// pass changed.
func (s *Service) AllocateRow(ctx context.Context, rowID string, onlyFillEmpty bool) (Result, error) {
	row, err := s.schedule.Get(ctx, rowID)
	if err != nil {
		return Result{}, err
	}

	result := s.AllocateSlot(ctx, SlotRequest{
		Doctor: row.Doctor,
		Start:  row.StartTime,
		End:    row.EndTime,
		Current: model.RoleAssignment{
			model.RoleFirst:  row.First,
			model.RoleSecond: row.Second,
			model.RoleThird:  row.Third,
		},
		OnlyFillEmpty: onlyFillEmpty,
		ExcludeRowID:  rowID,
	})

	if changedRoles(row, result.Roles) {
		if err := s.schedule.UpdateRoles(ctx, rowID, result.Roles); err != nil {
			return result, err
		}
	}
	if s.metrics != nil {
		s.metrics.AllocationRunsTotal.WithLabelValues("row").Inc()
	}
	return result, nil
}

// AllocateAll sweeps today's schedule, filling rows that have a doctor
// and readable times. Returns the number of slots changed.
func (s *Service) AllocateAll(ctx context.Context, onlyFillEmpty bool) (int, error) {
	snap := s.avail.Snapshot(ctx)
	changed := 0

	for _, row := range snap.Schedule {
		if strings.TrimSpace(row.Doctor) == "" {
			continue
		}
		if _, ok := timeutil.ParseWindow(row.StartTime, row.EndTime); !ok {
			continue
		}
		current := model.RoleAssignment{
			model.RoleFirst:  row.First,
			model.RoleSecond: row.Second,
			model.RoleThird:  row.Third,
		}
		if onlyFillEmpty && current[model.RoleFirst] != "" && current[model.RoleSecond] != "" && current[model.RoleThird] != "" {
			continue
		}

		result := s.run(ctx, snap, SlotRequest{
			Doctor:        row.Doctor,
			Start:         row.StartTime,
			End:           row.EndTime,
			Current:       current,
			OnlyFillEmpty: onlyFillEmpty,
			ExcludeRowID:  row.RowID,
		})

		if !changedRoles(row, result.Roles) {
			continue
		}
		if err := s.schedule.UpdateRoles(ctx, row.RowID, result.Roles); err != nil {
			s.log.Error().Err(err).Str("row_id", row.RowID).Msg("failed to persist allocation")
			continue
		}
		for _, role := range model.Roles() {
			if result.Roles[role] != strings.TrimSpace(current[role]) && result.Roles[role] != "" {
				changed++
			}
		}
		// Later rows must see this row's new assignments in their
		// conflict scans.
		row.First = result.Roles[model.RoleFirst]
		row.Second = result.Roles[model.RoleSecond]
		row.Third = result.Roles[model.RoleThird]
	}

	if s.metrics != nil {
		s.metrics.AllocationRunsTotal.WithLabelValues("sweep").Inc()
	}
	return changed, nil
}

func changedRoles(row *model.Appointment, roles model.RoleAssignment) bool {
	return roles[model.RoleFirst] != strings.TrimSpace(row.First) ||
		roles[model.RoleSecond] != strings.TrimSpace(row.Second) ||
		roles[model.RoleThird] != strings.TrimSpace(row.Third)
}
