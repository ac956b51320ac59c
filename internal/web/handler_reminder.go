package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

// reminderSummaryLimit caps how many reminders are spelled out in the list
// summary string. Items always carries all of them.
const reminderSummaryLimit = 3

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	reminders := s.reminders.List(r.Context())

	var lines []string
	for i, rm := range reminders {
		if i == reminderSummaryLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", rm.ScheduledDateTime, rm.Title))
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindReminder,
		Detail:  fmt.Sprintf("Found %d active reminders", len(reminders)),
		Success: true,
		Data:    strings.Join(lines, "; "),
		Items:   reminders,
	})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req domain.ReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, actionCreate, kindReminder, err)
		return
	}

	rm, err := s.reminders.Create(r.Context(), req)
	if err != nil {
		s.respondError(w, r, actionCreate, kindReminder, err)
		return
	}
	s.recordMutation(kindReminder, actionCreate)

	writeJSON(w, http.StatusCreated, envelope{
		Action:  actionCreate,
		Type:    kindReminder,
		Detail:  fmt.Sprintf("Added reminder %q for %s", rm.Title, rm.ScheduledDateTime),
		Success: true,
		Data:    "ID: " + rm.ID,
		Item:    rm,
	})
}

func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	rm, err := s.reminders.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, actionRead, kindReminder, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindReminder,
		Detail:  fmt.Sprintf("Reminder %q for %s", rm.Title, rm.ScheduledDateTime),
		Success: true,
		Data:    "ID: " + rm.ID,
		Item:    rm,
	})
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	var req domain.ReminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, actionUpdate, kindReminder, err)
		return
	}

	rm, err := s.reminders.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.respondError(w, r, actionUpdate, kindReminder, err)
		return
	}
	s.recordMutation(kindReminder, actionUpdate)

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionUpdate,
		Type:    kindReminder,
		Detail:  fmt.Sprintf("Updated reminder %q", rm.Title),
		Success: true,
		Data:    "ID: " + rm.ID,
		Item:    rm,
	})
}

func (s *Server) handleDeactivateReminder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.reminders.Deactivate(r.Context(), id); err != nil {
		s.respondError(w, r, actionUpdate, kindReminder, err)
		return
	}
	s.recordMutation(kindReminder, "deactivate")

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionUpdate,
		Type:    kindReminder,
		Detail:  "Deactivated reminder",
		Success: true,
		Data:    "ID: " + id,
	})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.reminders.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, actionDelete, kindReminder, err)
		return
	}
	s.recordMutation(kindReminder, actionDelete)

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionDelete,
		Type:    kindReminder,
		Detail:  "Deleted reminder",
		Success: true,
		Data:    "ID: " + id,
	})
}
