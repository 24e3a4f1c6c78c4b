package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"jozi-market/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a classified error to an HTTP status: validation to
// 400, state and duplicate to 409 (unknown order to 404), transport to 502,
// anything else to 500. The message is surfaced to the user as-is; none of
// the kinds crash the surrounding flow.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, "internal error", logger)
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case model.ErrKindValidation:
		status = http.StatusBadRequest
	case model.ErrKindState:
		status = http.StatusConflict
		if de.Code == model.ErrCodeOrderNotFound {
			status = http.StatusNotFound
		}
	case model.ErrKindDuplicate:
		status = http.StatusConflict
	case model.ErrKindTransport:
		status = http.StatusBadGateway
	}

	logger.Warn().
		Str("kind", string(de.Kind)).
		Str("code", de.Code).
		Int("status", status).
		Msg("request rejected")
	writeJSON(w, status, ErrorResponse{Error: de.Code, Message: de.Message})
}
