package store

import (
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

type ScheduleStore struct {
	items *collection[domain.Schedule]
	opts  options
}

func newScheduleStore(o options) *ScheduleStore {
	return &ScheduleStore{items: newCollection[domain.Schedule](), opts: o}
}

func (s *ScheduleStore) Add(req domain.ScheduleRequest) domain.Schedule {
	createdAt := s.opts.now()
	return s.items.add(s.opts.newID, func(id string) domain.Schedule {
		return domain.Schedule{
			ID:          id,
			Date:        req.Date,
			Time:        req.Time,
			Title:       req.Title,
			Description: req.Description,
			Type:        domain.ParseScheduleType(req.Type),
			CreatedAt:   createdAt,
		}
	})
}

// List returns every schedule ordered by date ascending.
func (s *ScheduleStore) List() []domain.Schedule {
	return s.items.snapshot(nil, func(a, b domain.Schedule) int {
		if c := strings.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return byCreation(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

func (s *ScheduleStore) Get(id string) (domain.Schedule, bool) {
	return s.items.get(id)
}

// Update overwrites the request fields of an existing schedule. ID, CreatedAt
// and Completed are kept.
func (s *ScheduleStore) Update(id string, req domain.ScheduleRequest) (domain.Schedule, bool) {
	return s.items.modify(id, func(cur domain.Schedule) domain.Schedule {
		cur.Date = req.Date
		cur.Time = req.Time
		cur.Title = req.Title
		cur.Description = req.Description
		cur.Type = domain.ParseScheduleType(req.Type)
		return cur
	})
}

func (s *ScheduleStore) SetCompleted(id string, completed bool) (domain.Schedule, bool) {
	return s.items.modify(id, func(cur domain.Schedule) domain.Schedule {
		cur.Completed = completed
		return cur
	})
}

func (s *ScheduleStore) Delete(id string) bool {
	return s.items.remove(id)
}
