package handler

import (
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
)

// attachImageResponse is the body returned after a successful upload.
type attachImageResponse struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// handleAttachImage handles POST /api/v1/travel-records/{id}/image.
// Expects a multipart form with the file under the "file" field. The overall
// request size is already capped by the max-body-size middleware.
func (s *Server) handleAttachImage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidation, `multipart "file" field is required`)
		return
	}
	defer file.Close()

	if header.Size == 0 {
		writeError(w, http.StatusBadRequest, codeValidation, "uploaded file is empty")
		return
	}

	contentType := header.Header.Get("Content-Type")
	filename, err := s.images.Attach(r.Context(), id, file, header.Size, header.Filename, contentType)
	if err != nil {
		writeServiceError(w, err, "travel record not found")
		return
	}

	writeJSON(w, http.StatusOK, attachImageResponse{
		Message:  "image uploaded successfully",
		Filename: filename,
	})
}

// handleGetImage handles GET /api/v1/travel-records/{id}/image.
// All three miss cases (no record, no attachment, file gone from storage)
// surface as 404.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.recordID(w, r)
	if !ok {
		return
	}

	rc, filename, err := s.images.Retrieve(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "image not found")
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already sent; all we can do is log the broken stream.
		slog.Error("stream image", "filename", filename, "error", err)
	}
}
