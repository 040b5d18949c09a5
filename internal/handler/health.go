package handler

import "net/http"

// apiVersion is reported by the root endpoint.
const apiVersion = "1.0.0"

// handleRoot handles GET /. It returns a small welcome body pointing at the
// served API contract.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Travel Journal API",
		"version": apiVersion,
		"docs":    "/openapi.yaml",
	})
}

// handleHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
