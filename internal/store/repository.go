// Package store holds the in-memory repository: three independent,
// concurrency-safe collections of schedules, images and reminders. Nothing is
// persisted; state lives as long as the Repository value.
package store

import (
	"time"

	"github.com/google/uuid"
)

type Repository struct {
	Schedules *ScheduleStore
	Images    *ImageStore
	Reminders *ReminderStore
}

// Counts is the number of entities held by each collection.
type Counts struct {
	Schedules int `json:"schedules"`
	Images    int `json:"images"`
	Reminders int `json:"reminders"`
}

type Option func(*options)

type options struct {
	now   func() time.Time
	newID func() string
}

// WithClock overrides the time source used to stamp createdAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the identifier source. Generated ids that are
// empty or already taken are discarded and drawn again.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

func NewRepository(opts ...Option) *Repository {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Repository{
		Schedules: newScheduleStore(o),
		Images:    newImageStore(o),
		Reminders: newReminderStore(o),
	}
}

func (r *Repository) Counts() Counts {
	return Counts{
		Schedules: r.Schedules.items.len(),
		Images:    r.Images.items.len(),
		Reminders: r.Reminders.items.len(),
	}
}

// byCreation orders equal primary keys by creation time then id so listings
// are deterministic.
func byCreation(aAt, bAt time.Time, aID, bID string) int {
	if c := aAt.Compare(bAt); c != 0 {
		return c
	}
	switch {
	case aID < bID:
		return -1
	case aID > bID:
		return 1
	}
	return 0
}
