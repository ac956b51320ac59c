package store

import (
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

type ReminderStore struct {
	items *collection[domain.Reminder]
	opts  options
}

func newReminderStore(o options) *ReminderStore {
	return &ReminderStore{items: newCollection[domain.Reminder](), opts: o}
}

func (s *ReminderStore) Add(req domain.ReminderRequest) domain.Reminder {
	createdAt := s.opts.now()
	return s.items.add(s.opts.newID, func(id string) domain.Reminder {
		return domain.Reminder{
			ID:                id,
			Title:             req.Title,
			Message:           req.Message,
			ScheduledDateTime: req.ScheduledDateTime,
			Type:              domain.ParseReminderType(req.Type),
			Active:            true,
			CreatedAt:         createdAt,
		}
	})
}

// List returns active reminders only, earliest scheduledDateTime first.
// Deactivated reminders remain reachable through Get.
func (s *ReminderStore) List() []domain.Reminder {
	return s.items.snapshot(
		func(r domain.Reminder) bool { return r.Active },
		func(a, b domain.Reminder) int {
			if c := strings.Compare(a.ScheduledDateTime, b.ScheduledDateTime); c != 0 {
				return c
			}
			return byCreation(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		},
	)
}

func (s *ReminderStore) Get(id string) (domain.Reminder, bool) {
	return s.items.get(id)
}

// Update keeps ID, CreatedAt and Active.
func (s *ReminderStore) Update(id string, req domain.ReminderRequest) (domain.Reminder, bool) {
	return s.items.modify(id, func(cur domain.Reminder) domain.Reminder {
		cur.Title = req.Title
		cur.Message = req.Message
		cur.ScheduledDateTime = req.ScheduledDateTime
		cur.Type = domain.ParseReminderType(req.Type)
		return cur
	})
}

func (s *ReminderStore) Deactivate(id string) bool {
	_, ok := s.items.modify(id, func(cur domain.Reminder) domain.Reminder {
		cur.Active = false
		return cur
	})
	return ok
}

func (s *ReminderStore) Delete(id string) bool {
	return s.items.remove(id)
}
