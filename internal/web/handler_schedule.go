package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := s.schedules.List(r.Context())

	lines := make([]string, 0, len(schedules))
	for _, sc := range schedules {
		lines = append(lines, fmt.Sprintf("%s %s: %s", sc.Date, sc.Time, sc.Title))
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindSchedule,
		Detail:  fmt.Sprintf("Found %d schedules", len(schedules)),
		Success: true,
		Data:    strings.Join(lines, "; "),
		Items:   schedules,
	})
}

func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, actionCreate, kindSchedule, err)
		return
	}

	sc, err := s.schedules.Create(r.Context(), req)
	if err != nil {
		s.respondError(w, r, actionCreate, kindSchedule, err)
		return
	}
	s.recordMutation(kindSchedule, actionCreate)

	writeJSON(w, http.StatusCreated, envelope{
		Action:  actionCreate,
		Type:    kindSchedule,
		Detail:  fmt.Sprintf("Added schedule %q on %s at %s", sc.Title, sc.Date, sc.Time),
		Success: true,
		Data:    "ID: " + sc.ID,
		Item:    sc,
	})
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	sc, err := s.schedules.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, actionRead, kindSchedule, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindSchedule,
		Detail:  fmt.Sprintf("Schedule %q on %s at %s", sc.Title, sc.Date, sc.Time),
		Success: true,
		Data:    "ID: " + sc.ID,
		Item:    sc,
	})
}

func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, actionUpdate, kindSchedule, err)
		return
	}

	sc, err := s.schedules.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.respondError(w, r, actionUpdate, kindSchedule, err)
		return
	}
	s.recordMutation(kindSchedule, actionUpdate)

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionUpdate,
		Type:    kindSchedule,
		Detail:  fmt.Sprintf("Updated schedule %q", sc.Title),
		Success: true,
		Data:    "ID: " + sc.ID,
		Item:    sc,
	})
}

type completeRequest struct {
	Completed *bool `json:"completed"`
}

// handleCompleteSchedule marks a schedule completed. An empty body or a
// missing field means completed=true.
func (s *Server) handleCompleteSchedule(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		s.respondError(w, r, actionUpdate, kindSchedule, err)
		return
	}
	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	sc, err := s.schedules.Complete(r.Context(), r.PathValue("id"), completed)
	if err != nil {
		s.respondError(w, r, actionUpdate, kindSchedule, err)
		return
	}
	s.recordMutation(kindSchedule, actionUpdate)

	state := "completed"
	if !sc.Completed {
		state = "not completed"
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionUpdate,
		Type:    kindSchedule,
		Detail:  fmt.Sprintf("Marked schedule %q as %s", sc.Title, state),
		Success: true,
		Data:    "ID: " + sc.ID,
		Item:    sc,
	})
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.schedules.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, actionDelete, kindSchedule, err)
		return
	}
	s.recordMutation(kindSchedule, actionDelete)

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionDelete,
		Type:    kindSchedule,
		Detail:  "Deleted schedule",
		Success: true,
		Data:    "ID: " + id,
	})
}
