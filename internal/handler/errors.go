package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/drivelog/internal/domain"
)

// errorResponse is the envelope every non-2xx JSON response uses:
// {"error":{"code":"...","message":"..."}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps a service error to its HTTP status and error envelope.
// resource names what was being looked up (e.g. "destination") and is only
// used for the not-found message, because the handler is the layer that knows
// what was requested. Unrecognised errors are logged and reported as 500
// without leaking their text.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errBody("validation_error", unwrapMessage(err, domain.ErrValidation)))
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errBody("forbidden", unwrapMessage(err, domain.ErrForbidden)))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errBody("not_found", resource+" not found"))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errBody("conflict", unwrapMessage(err, domain.ErrConflict)))
	default:
		s.log.ErrorContext(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errBody("internal_error", "internal server error"))
	}
}

// writeRequestError reports a request rejected before reaching the service
// layer (e.g. a malformed body or query parameter).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errBody("validation_error", message))
}

// writeDecodeError reports a body that could not be decoded. Bodies over the
// size limit get 413; everything else is a validation error.
func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *bodyTooLargeError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errBody("payload_too_large", err.Error()))
		return
	}
	writeRequestError(w, err.Error())
}

func errBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part that follows the sentinel in
// a wrapped error chain.
// e.g. "service.DestinationService.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && len(msg) > i+len(marker) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
