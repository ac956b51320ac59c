package web

import (
	"net/http"

	"github.com/vbonduro/prettyteeth/internal/store"
)

type indexPage struct {
	Counts         store.Counts
	MetricsEnabled bool
}

func (s *Server) currentCounts() store.Counts {
	if s.counts == nil {
		return store.Counts{}
	}
	return s.counts()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page := indexPage{Counts: s.currentCounts(), MetricsEnabled: s.metrics != nil}
	if err := s.renderPage(w, page, "index.html"); err != nil {
		s.logger.Error("render index failed", "error", err)
	}
}

type healthResponse struct {
	Status string       `json:"status"`
	Counts store.Counts `json:"counts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Counts: s.currentCounts()})
}
