package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"menu-app/internal/middleware"
	"menu-app/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes a standardised error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	requestID := middleware.RequestIDFromContext(r.Context())

	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).
		Str("error", message).
		Int("status", status).
		Str("request_id", requestID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: requestID,
	})
}

// writeDomainError maps err onto an HTTP status. Errors that are not domain
// errors are reported as internal errors without leaking their text.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("unexpected error")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	writeError(w, r, statusForCode(domainErr.Code), domainErr.Code, domainErr.Message, logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidCourse,
		model.ErrCodeInvalidPrice:
		return http.StatusBadRequest
	case model.ErrCodeItemNotFound:
		return http.StatusNotFound
	case model.ErrCodeDuplicateID:
		return http.StatusConflict
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
