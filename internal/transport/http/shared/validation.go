package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"empleados/internal/platform/validate"
	"empleados/internal/transport/http/api"
)

func FailValidation(w http.ResponseWriter, requestID string, issues []validate.Issue) {
	api.FailWithDetails(
		w,
		http.StatusBadRequest,
		"validation_error",
		"payload validation failed",
		map[string]any{"fields": issues},
		requestID,
	)
}

// RejectValidation writes a 400 when err carries field issues.
func RejectValidation(w http.ResponseWriter, requestID string, err error) bool {
	issues, ok := validate.Issues(err)
	if !ok {
		return false
	}
	FailValidation(w, requestID, issues)
	return true
}

// DecodeJSON decodes a single JSON document into dst. On failure the 400 response has already been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, requestID string, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", requestID)
			return false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return false
	}
	return true
}
