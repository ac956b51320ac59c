package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

// scheduleRepository is the subset of store.ScheduleStore that ScheduleService requires.
type scheduleRepository interface {
	Add(req domain.ScheduleRequest) domain.Schedule
	List() []domain.Schedule
	Get(id string) (domain.Schedule, bool)
	Update(id string, req domain.ScheduleRequest) (domain.Schedule, bool)
	SetCompleted(id string, completed bool) (domain.Schedule, bool)
	Delete(id string) bool
}

type ScheduleService struct {
	store  scheduleRepository
	logger *slog.Logger
}

func NewScheduleService(store scheduleRepository, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{store: store, logger: logger}
}

func (s *ScheduleService) Create(_ context.Context, req domain.ScheduleRequest) (domain.Schedule, error) {
	if err := validateSchedule(req); err != nil {
		return domain.Schedule{}, err
	}
	sched := s.store.Add(req)
	s.logger.Info("schedule created", "schedule_id", sched.ID, "date", sched.Date, "type", sched.Type)
	return sched, nil
}

func (s *ScheduleService) List(_ context.Context) []domain.Schedule {
	return s.store.List()
}

func (s *ScheduleService) Get(_ context.Context, id string) (domain.Schedule, error) {
	sched, ok := s.store.Get(id)
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	return sched, nil
}

func (s *ScheduleService) Update(_ context.Context, id string, req domain.ScheduleRequest) (domain.Schedule, error) {
	if err := validateSchedule(req); err != nil {
		return domain.Schedule{}, err
	}
	sched, ok := s.store.Update(id, req)
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	s.logger.Info("schedule updated", "schedule_id", id)
	return sched, nil
}

func (s *ScheduleService) Complete(_ context.Context, id string, completed bool) (domain.Schedule, error) {
	sched, ok := s.store.SetCompleted(id, completed)
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	s.logger.Info("schedule completion changed", "schedule_id", id, "completed", completed)
	return sched, nil
}

func (s *ScheduleService) Delete(_ context.Context, id string) error {
	if !s.store.Delete(id) {
		return domain.ErrScheduleNotFound
	}
	s.logger.Info("schedule deleted", "schedule_id", id)
	return nil
}

func validateSchedule(req domain.ScheduleRequest) error {
	var fields []string
	if strings.TrimSpace(req.Date) == "" {
		fields = append(fields, "date is required")
	}
	if strings.TrimSpace(req.Time) == "" {
		fields = append(fields, "time is required")
	}
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, "title is required")
	}
	return domain.NewValidationError(fields...)
}
