package domain

import "strings"

type ScheduleType string

const (
	ScheduleAppointment ScheduleType = "appointment"
	ScheduleCheckup     ScheduleType = "checkup"
	ScheduleAdjustment  ScheduleType = "adjustment"
)

func (t ScheduleType) IsValid() bool {
	switch t {
	case ScheduleAppointment, ScheduleCheckup, ScheduleAdjustment:
		return true
	}
	return false
}

// ParseScheduleType accepts any wire value. Empty or unknown values map to
// ScheduleAppointment.
func ParseScheduleType(s string) ScheduleType {
	if t := ScheduleType(normalize(s)); t.IsValid() {
		return t
	}
	return ScheduleAppointment
}

type ImageCategory string

const (
	CategoryProgress ImageCategory = "progress"
	CategoryBefore   ImageCategory = "before"
	CategoryAfter    ImageCategory = "after"
	CategoryXRay     ImageCategory = "xray"
)

func (c ImageCategory) IsValid() bool {
	switch c {
	case CategoryProgress, CategoryBefore, CategoryAfter, CategoryXRay:
		return true
	}
	return false
}

// ParseImageCategory maps empty or unknown values to CategoryProgress.
func ParseImageCategory(s string) ImageCategory {
	if c := ImageCategory(normalize(s)); c.IsValid() {
		return c
	}
	return CategoryProgress
}

type ReminderType string

const (
	ReminderGeneral     ReminderType = "general"
	ReminderMedication  ReminderType = "medication"
	ReminderAppointment ReminderType = "appointment"
)

func (t ReminderType) IsValid() bool {
	switch t {
	case ReminderGeneral, ReminderMedication, ReminderAppointment:
		return true
	}
	return false
}

// ParseReminderType maps empty or unknown values to ReminderGeneral.
func ParseReminderType(s string) ReminderType {
	if t := ReminderType(normalize(s)); t.IsValid() {
		return t
	}
	return ReminderGeneral
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
