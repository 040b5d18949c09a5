package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-journal/internal/domain"
)

// Machine-distinguishable error codes carried in every error body.
const (
	codeValidation = "validation_error"
	codeNotFound   = "not_found"
	codeBadType    = "invalid_type"
	codeStorage    = "storage_error"
	codeInternal   = "internal_error"
)

// errorDetail is the machine-readable half of an error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the JSON body returned for every non-2xx outcome.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON serializes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError writes a structured error body with the given status and code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// writeServiceError maps a service-layer error onto the HTTP contract:
// ErrNotFound -> 404, ErrValidation -> 400, ErrUnsupportedMedia -> 400,
// ErrStorage -> 500 with the storage code, anything else -> 500 with a
// generic body (the detail goes to the log, not to the client).
func writeServiceError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, unwrapMessage(err))
	case errors.Is(err, domain.ErrUnsupportedMedia):
		writeError(w, http.StatusBadRequest, codeBadType, unwrapMessage(err))
	case errors.Is(err, domain.ErrStorage):
		slog.Error("storage error", "error", err)
		writeError(w, http.StatusInternalServerError, codeStorage, "image storage failed")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// unwrapMessage extracts the human-readable tail from a wrapped sentinel error.
// e.g. "service.RecordService.Create: validation error: title is required"
// becomes "title is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error() + ": ",
		domain.ErrUnsupportedMedia.Error() + ": ",
	} {
		if i := strings.Index(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	return msg
}
