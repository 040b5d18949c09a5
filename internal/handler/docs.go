package handler

import (
	"net/http"

	"github.com/pkordes/travel-journal/spec"
)

// handleOpenAPI handles GET /openapi.yaml, serving the API contract embedded
// in the binary so the spec and the running code are always in sync.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
