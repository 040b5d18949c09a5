package handler

import "net/http"

// handleAggregateStats handles GET /api/v1/travel-records/stats/aggregate.
// Stats are recomputed from the full record set on every call.
func (s *Server) handleAggregateStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.Aggregate(r.Context())
	if err != nil {
		writeServiceError(w, err, "stats not available")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
