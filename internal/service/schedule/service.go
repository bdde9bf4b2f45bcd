// Package schedule owns the day sheet: row creation, edits, status
// transitions and the derived views the front desk reads.
package schedule

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinicboard/allotment-api/internal/model"
	"github.com/clinicboard/allotment-api/internal/repository"
	"github.com/clinicboard/allotment-api/internal/timeutil"
	apperrors "github.com/clinicboard/allotment-api/pkg/errors"
	"github.com/clinicboard/allotment-api/pkg/messaging"
	"github.com/clinicboard/allotment-api/pkg/metrics"
)

type Service struct {
	repo    repository.ScheduleRepository
	broker  messaging.Broker
	metrics *metrics.Metrics
	now     func() time.Time
	log     zerolog.Logger
}

func NewService(
	repo repository.ScheduleRepository,
	broker messaging.Broker,
	m *metrics.Metrics,
	now func() time.Time,
	log zerolog.Logger,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:    repo,
		broker:  broker,
		metrics: m,
		now:     now,
		log:     log.With().Str("component", "schedule").Logger(),
	}
}

// ListByDate returns the sheet for a date, today when blank.
func (s *Service) ListByDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	if strings.TrimSpace(date) == "" {
		date = s.now().Format("2006-01-02")
	}
	rows, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return rows, nil
}

// Get loads one row by its stable id.
func (s *Service) Get(ctx context.Context, rowID string) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, rowID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}
	return row, nil
}

// Create inserts a new row. The row id is minted here so every later
// operation can address the row stably.
func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	status := model.AppointmentStatus(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.StatusPending
	}
	now := s.now()
	row := &model.Appointment{
		RowID:       uuid.NewString(),
		Date:        req.Date,
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Procedure:   req.Procedure,
		Doctor:      req.Doctor,
		Room:        req.Room,
		First:       req.First,
		Second:      req.Second,
		Third:       req.Third,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.recordMutation("create")
	s.publish(ctx, row)
	return row, nil
}

// Update applies partial edits to a row.
func (s *Service) Update(ctx context.Context, rowID string, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, rowID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&row.PatientID, req.PatientID)
	apply(&row.PatientName, req.PatientName)
	apply(&row.StartTime, req.StartTime)
	apply(&row.EndTime, req.EndTime)
	apply(&row.Procedure, req.Procedure)
	apply(&row.Doctor, req.Doctor)
	apply(&row.Room, req.Room)
	apply(&row.First, req.First)
	apply(&row.Second, req.Second)
	apply(&row.Third, req.Third)
	row.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.recordMutation("update")
	s.publish(ctx, row)
	return row, nil
}

// UpdateStatus moves a row through the status vocabulary, stamping the
// actual-start clock when care begins and the actual-end clock when the
// row reaches a terminal state. Re-stamps are not overwritten, so a row
// bounced back and forth keeps its first start time.
func (s *Service) UpdateStatus(ctx context.Context, rowID string, status model.AppointmentStatus) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, rowID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	now := s.now()
	row.Status = status
	row.StatusChangedAt = &now
	if (status.SignalsOngoing() || status.SignalsArrived()) && row.ActualStartAt == nil {
		row.ActualStartAt = &now
	}
	if status.IsTerminal() && row.ActualEndAt == nil {
		row.ActualEndAt = &now
	}
	row.UpdatedAt = now

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.recordMutation("status")
	s.publish(ctx, row)
	return row, nil
}

// RemoveAssistant clears the assistant out of every role slot they hold
// on the row.
func (s *Service) RemoveAssistant(ctx context.Context, rowID, assistant string) (*model.Appointment, error) {
	row, err := s.repo.Get(ctx, rowID)
	if err != nil {
		return nil, apperrors.NotFound("appointment", err)
	}

	removed := false
	for {
		role, ok := row.HoldsAssistant(assistant)
		if !ok {
			break
		}
		row.SetRole(role, "")
		removed = true
	}
	if !removed {
		return row, nil
	}
	row.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, apperrors.Internal(err)
	}
	s.recordMutation("remove_assistant")
	s.publish(ctx, row)
	return row, nil
}

// FilterOngoing keeps rows whose window covers the clock minute or whose
// status explicitly says the patient is in the chair.
func FilterOngoing(rows []*model.Appointment, nowMinute int) []*model.Appointment {
	var out []*model.Appointment
	for _, row := range rows {
		if row.Status.IsTerminal() {
			continue
		}
		if row.Status.SignalsOngoing() {
			out = append(out, row)
			continue
		}
		if window, ok := timeutil.ParseWindow(row.StartTime, row.EndTime); ok && window.Covers(nowMinute) {
			out = append(out, row)
		}
	}
	return out
}

// FilterUpcoming keeps non-terminal rows starting within the horizon.
func FilterUpcoming(rows []*model.Appointment, nowMinute, minutesAhead int) []*model.Appointment {
	var out []*model.Appointment
	for _, row := range rows {
		if row.Status.IsTerminal() {
			continue
		}
		start, ok := timeutil.ToMinutes(row.StartTime)
		if !ok {
			continue
		}
		if start >= nowMinute && start <= nowMinute+minutesAhead {
			out = append(out, row)
		}
	}
	return out
}

func (s *Service) recordMutation(kind string) {
	if s.metrics != nil {
		s.metrics.ScheduleMutations.WithLabelValues(kind).Inc()
	}
}

// publish is fire-and-forget; a broker outage never blocks a front-desk
// edit.
func (s *Service) publish(ctx context.Context, row *model.Appointment) {
	if s.broker == nil {
		return
	}
	event := messaging.Event{
		Type:       messaging.ChannelScheduleUpdated,
		OccurredAt: s.now(),
		Payload:    row,
	}
	if err := s.broker.Publish(ctx, messaging.ChannelScheduleUpdated, event); err != nil {
		s.log.Warn().Err(err).Str("row_id", row.RowID).Msg("failed to publish schedule event")
	}
}
