package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/drivelog/internal/auth"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// bodyTooLargeError reports a request body cut off by http.MaxBytesReader.
type bodyTooLargeError struct {
	limit int64
}

func (e *bodyTooLargeError) Error() string {
	return fmt.Sprintf("request body must not exceed %d bytes", e.limit)
}

// decodeJSON decodes a single JSON object from the request body into dst.
// Unknown fields are rejected so typos in field names do not pass silently.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return &bodyTooLargeError{limit: maxErr.Limit}
		case errors.Is(err, io.EOF):
			return errors.New("request body is required")
		default:
			return fmt.Errorf("invalid request body: %v", err)
		}
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// callerID returns the authenticated user id. The protect middleware in Mount
// guarantees it is present; a missing id means the router was mis-wired.
func callerID(r *http.Request) (uuid.UUID, error) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		return uuid.Nil, errors.New("handler: no authenticated user in request context")
	}
	return id, nil
}

// pathID parses the {id} URL parameter.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, errors.New("id must be a valid UUID")
	}
	return id, nil
}

// queryInt binds a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	if r.URL.Query().Get(name) == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	var n int
	if err := runtime.BindRawQueryParameter("form", true, true, name, r.URL.RawQuery, &n); err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}

// optionalQueryInt binds an optional integer query parameter; absent values return nil.
func optionalQueryInt(r *http.Request, name string) (*int, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	var n *int
	if err := runtime.BindRawQueryParameter("form", true, false, name, r.URL.RawQuery, &n); err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return n, nil
}
