package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

// reminderRepository is the subset of store.ReminderStore that ReminderService requires.
type reminderRepository interface {
	Add(req domain.ReminderRequest) domain.Reminder
	List() []domain.Reminder
	Get(id string) (domain.Reminder, bool)
	Update(id string, req domain.ReminderRequest) (domain.Reminder, bool)
	Deactivate(id string) bool
	Delete(id string) bool
}

type ReminderService struct {
	store  reminderRepository
	logger *slog.Logger
}

func NewReminderService(store reminderRepository, logger *slog.Logger) *ReminderService {
	return &ReminderService{store: store, logger: logger}
}

func (s *ReminderService) Create(_ context.Context, req domain.ReminderRequest) (domain.Reminder, error) {
	if err := validateReminder(req); err != nil {
		return domain.Reminder{}, err
	}
	r := s.store.Add(req)
	s.logger.Info("reminder created", "reminder_id", r.ID, "scheduled_at", r.ScheduledDateTime, "type", r.Type)
	return r, nil
}

// List returns active reminders only.
func (s *ReminderService) List(_ context.Context) []domain.Reminder {
	return s.store.List()
}

func (s *ReminderService) Get(_ context.Context, id string) (domain.Reminder, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return domain.Reminder{}, domain.ErrReminderNotFound
	}
	return r, nil
}

func (s *ReminderService) Update(_ context.Context, id string, req domain.ReminderRequest) (domain.Reminder, error) {
	if err := validateReminder(req); err != nil {
		return domain.Reminder{}, err
	}
	r, ok := s.store.Update(id, req)
	if !ok {
		return domain.Reminder{}, domain.ErrReminderNotFound
	}
	s.logger.Info("reminder updated", "reminder_id", id)
	return r, nil
}

func (s *ReminderService) Deactivate(_ context.Context, id string) error {
	if !s.store.Deactivate(id) {
		return domain.ErrReminderNotFound
	}
	s.logger.Info("reminder deactivated", "reminder_id", id)
	return nil
}

func (s *ReminderService) Delete(_ context.Context, id string) error {
	if !s.store.Delete(id) {
		return domain.ErrReminderNotFound
	}
	s.logger.Info("reminder deleted", "reminder_id", id)
	return nil
}

func validateReminder(req domain.ReminderRequest) error {
	var fields []string
	if strings.TrimSpace(req.Title) == "" {
		fields = append(fields, "title is required")
	}
	if strings.TrimSpace(req.ScheduledDateTime) == "" {
		fields = append(fields, "scheduledDateTime is required")
	}
	return domain.NewValidationError(fields...)
}
