package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

const maxJSONBody = 1 << 20

// Envelope actions.
const (
	actionCreate = "create"
	actionRead   = "read"
	actionUpdate = "update"
	actionDelete = "delete"
)

// Envelope entity kinds; also used as metrics labels.
const (
	kindSchedule = "schedule"
	kindReminder = "reminder"
	kindImage    = "image"
)

// envelope is the response shape of every schedule, reminder and image
// endpoint. Item and Items carry the structured payload.
type envelope struct {
	Action  string `json:"action"`
	Type    string `json:"type"`
	Detail  string `json:"detail"`
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Item    any    `json:"item,omitempty"`
	Items   any    `json:"items,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// decodeJSON reads a bounded JSON body into v. Decode failures come back as a
// *domain.ValidationError so they map to 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeBody(w, r, v, false)
}

// decodeOptionalJSON is decodeJSON for endpoints where the body may be absent.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decodeBody(w, r, v, true)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if optional {
			return nil
		}
		return domain.NewValidationError("request body is empty")
	default:
		return domain.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}
}

// respondError maps service errors onto the envelope and a status code.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, action, kind string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, envelope{
			Action: action, Type: kind, Success: false,
			Detail: verr.Error(),
		})
	case errors.Is(err, domain.ErrScheduleNotFound),
		errors.Is(err, domain.ErrReminderNotFound),
		errors.Is(err, domain.ErrImageNotFound):
		writeJSON(w, http.StatusNotFound, envelope{
			Action: action, Type: kind, Success: false,
			Detail: fmt.Sprintf("%s %q not found", kind, r.PathValue("id")),
		})
	default:
		s.logger.Error("request failed", "action", action, "type", kind, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, envelope{
			Action: action, Type: kind, Success: false,
			Detail: "internal server error",
		})
	}
}

func (s *Server) recordMutation(kind, action string) {
	if s.metrics != nil {
		s.metrics.RecordMutation(kind, action)
	}
}

// closeWithLog closes c and logs any error. Use in defer statements where
// a close error is not actionable but should be recorded.
func closeWithLog(c io.Closer, name string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("close failed", "resource", name, "error", err)
	}
}
