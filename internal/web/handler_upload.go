package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vbonduro/prettyteeth/internal/photostore"
	"github.com/vbonduro/prettyteeth/internal/service"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temp files.
const multipartMemory = 8 << 20

// allowedImageTypes is the set of image MIME types recognized in uploads.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniff spec (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// uploadMIME names the stored type of an upload. Bytes that are not a
// recognized image are kept as opaque binary.
func uploadMIME(data []byte) string {
	if mime, ok := allowedImageMIME(data); ok {
		return mime
	}
	return photostore.FallbackMIME
}

// handleUploadImage accepts a multipart form with fields date, description,
// category and file.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.opts.MaxUploadBytes {
		writeJSON(w, http.StatusBadRequest, envelope{
			Action: actionCreate, Type: kindImage, Success: false,
			Detail: fmt.Sprintf("upload exceeds %d bytes", s.opts.MaxUploadBytes),
		})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		detail := "failed to parse multipart form"
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			detail = fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit)
		}
		writeJSON(w, http.StatusBadRequest, envelope{
			Action: actionCreate, Type: kindImage, Success: false, Detail: detail,
		})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.logger.Warn("remove multipart temp files failed", "error", err)
		}
	}()

	in := service.UploadImageInput{
		Date:        r.FormValue("date"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer closeWithLog(file, "upload file", s.logger)
		data, err := io.ReadAll(file)
		if err != nil {
			s.respondError(w, r, actionCreate, kindImage, fmt.Errorf("read upload: %w", err))
			return
		}
		in.Data = data
		in.OriginalName = header.Filename
		in.MimeType = uploadMIME(data)
	case errors.Is(err, http.ErrMissingFile):
		// Reported by the service together with any other field errors.
	default:
		writeJSON(w, http.StatusBadRequest, envelope{
			Action: actionCreate, Type: kindImage, Success: false, Detail: "invalid file field",
		})
		return
	}

	img, err := s.images.Upload(r.Context(), in)
	if err != nil {
		s.respondError(w, r, actionCreate, kindImage, err)
		return
	}
	s.recordMutation(kindImage, actionCreate)
	if s.metrics != nil {
		s.metrics.UploadedBytes.Add(float64(len(in.Data)))
	}

	writeJSON(w, http.StatusCreated, envelope{
		Action:  actionCreate,
		Type:    kindImage,
		Detail:  "Saved " + describeImage(img),
		Success: true,
		Data:    fmt.Sprintf("File: %s (ID: %s)", img.OriginalName, img.ID),
		Item:    img,
	})
}

// handleGetUpload streams a stored image by its server-generated filename.
func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	reader, mimeType, err := s.images.Open(r.Context(), filename)
	if err != nil {
		if !errors.Is(err, photostore.ErrNotFound) {
			s.logger.Warn("open upload failed", "filename", filename, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer closeWithLog(reader, "upload reader", s.logger)

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "private, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		s.logger.Error("write upload failed", "filename", filename, "error", err)
	}
}
