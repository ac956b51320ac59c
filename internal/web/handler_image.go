package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/vbonduro/prettyteeth/internal/domain"
)

const imageSummaryLimit = 5

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	images := s.images.List(r.Context())

	var lines []string
	for i, img := range images {
		if i == imageSummaryLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("%s: %s", img.Date, img.Description))
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindImage,
		Detail:  fmt.Sprintf("Found %d images", len(images)),
		Success: true,
		Data:    strings.Join(lines, "; "),
		Items:   images,
	})
}

func (s *Server) handleListImagesByDate(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	images := s.images.ListByDate(r.Context(), date)

	lines := make([]string, 0, len(images))
	for _, img := range images {
		lines = append(lines, fmt.Sprintf("%s: %s", img.Category, img.Description))
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindImage,
		Detail:  fmt.Sprintf("Found %d images for %s", len(images), date),
		Success: true,
		Data:    strings.Join(lines, "; "),
		Items:   images,
	})
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.images.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, actionRead, kindImage, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		Action:  actionRead,
		Type:    kindImage,
		Detail:  describeImage(img),
		Success: true,
		Data:    "File: " + img.Filename,
		Item:    img,
	})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	img, err := s.images.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, actionDelete, kindImage, err)
		return
	}
	s.recordMutation(kindImage, actionDelete)

	writeJSON(w, http.StatusOK, envelope{
		Action:  actionDelete,
		Type:    kindImage,
		Detail:  "Deleted " + describeImage(img),
		Success: true,
		Data:    "ID: " + img.ID,
	})
}

func describeImage(img domain.ImageRecord) string {
	return fmt.Sprintf("%s image %q from %s", img.Category, img.Description, img.Date)
}
