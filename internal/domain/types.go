package domain

import "time"

type Schedule struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"`
	Time        string       `json:"time"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ScheduleType `json:"type"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`
}

type ImageRecord struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Filename     string        `json:"filename"`
	OriginalName string        `json:"originalName"`
	Description  string        `json:"description"`
	Category     ImageCategory `json:"category"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type Reminder struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Message           string       `json:"message"`
	ScheduledDateTime string       `json:"scheduledDateTime"`
	Type              ReminderType `json:"type"`
	Active            bool         `json:"active"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// ScheduleRequest carries the client-editable fields of a Schedule. Type is
// kept as the raw wire string and normalized when the entity is built.
type ScheduleRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

type ReminderRequest struct {
	Title             string `json:"title"`
	Message           string `json:"message"`
	ScheduledDateTime string `json:"scheduledDateTime"`
	Type              string `json:"type"`
}

// NewImage describes an image whose bytes are already stored under Filename.
type NewImage struct {
	Date         string
	Filename     string
	OriginalName string
	Description  string
	Category     string
}
