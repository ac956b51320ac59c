package web

import (
	"net/http"

	"github.com/vbonduro/prettyteeth/internal/reference"
)

func (s *Server) handleListAppointments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.reference.UpcomingAppointments())
}

type appointmentResponse struct {
	Success     bool                  `json:"success"`
	Message     string                `json:"message"`
	Appointment reference.Appointment `json:"appointment"`
}

// handleCreateAppointment echoes the submitted appointment. Nothing is
// stored; the upcoming list stays fixed.
func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var a reference.Appointment
	if err := decodeJSON(w, r, &a); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: err.Error()})
		return
	}
	if a.Status == "" {
		a.Status = reference.AppointmentScheduled
	}
	s.recordPlaceholderWrite("appointment")
	s.logger.Info("appointment received", "patient", a.PatientName, "date_time", a.DateTime)

	writeJSON(w, http.StatusCreated, appointmentResponse{
		Success:     true,
		Message:     "Appointment received",
		Appointment: a,
	})
}

func (s *Server) handleGetPatient(w http.ResponseWriter, r *http.Request) {
	// Only one patient exists; the path id is accepted but not matched.
	s.logger.Debug("patient requested", "patient_id", r.PathValue("patientId"))
	writeJSON(w, http.StatusOK, s.reference.Patient())
}

func (s *Server) handleListTreatments(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("treatments requested", "patient_id", r.PathValue("patientId"))
	writeJSON(w, http.StatusOK, s.reference.TreatmentHistory())
}

type treatmentResponse struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Treatment reference.Treatment `json:"treatment"`
}

func (s *Server) handleCreateTreatment(w http.ResponseWriter, r *http.Request) {
	var t reference.Treatment
	if err := decodeJSON(w, r, &t); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Success: false, Message: err.Error()})
		return
	}
	if t.Status == "" {
		t.Status = reference.TreatmentPlanned
	}
	s.recordPlaceholderWrite("treatment")
	s.logger.Info("treatment received", "patient_id", t.PatientID, "type", t.TreatmentType)

	writeJSON(w, http.StatusCreated, treatmentResponse{
		Success:   true,
		Message:   "Treatment received",
		Treatment: t,
	})
}

// handleListTips serves both /api/dental-tips/{category} and
// /api/dental-tips?category=. The path value wins when both are present.
func (s *Server) handleListTips(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	if category == "" {
		category = r.URL.Query().Get("category")
	}
	writeJSON(w, http.StatusOK, s.reference.DentalTips(category))
}

func (s *Server) recordPlaceholderWrite(kind string) {
	if s.metrics != nil {
		s.metrics.PlaceholderWrites.WithLabelValues(kind).Inc()
	}
}
