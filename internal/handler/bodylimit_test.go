package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivelog/internal/handler"
	"github.com/pkordes/drivelog/internal/middleware"
)

// Bodies of unknown length pass the Content-Length check and are cut off while
// the handler decodes them; the handler must still answer 413.
func TestJSONBodies_StreamingOverLimit_413(t *testing.T) {
	const limit = 64
	// Services are left unset: a call would panic on the nil function field.
	h := middleware.NewMaxBodySizeHandler(limit)(newHTTPHandler(handler.Services{
		Users:        &mockUserServicer{},
		Destinations: &mockDestinationServicer{},
		Logs:         &mockDrivingLogServicer{},
	}))
	body := `{"name":"` + strings.Repeat("x", 200) + `","km":"1.0"}`

	cases := map[string]struct{ method, target string }{
		"create destination": {http.MethodPost, "/destinations"},
		"update destination": {http.MethodPatch, "/destinations/" + destinationFixture().ID.String()},
		"create driving log": {http.MethodPost, "/driving-log"},
		"update profile":     {http.MethodPatch, "/me"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req.ContentLength = -1
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
			env := decodeError(t, rec)
			assert.Equal(t, "payload_too_large", env.Error.Code)
			assert.Equal(t, "request body must not exceed 64 bytes", env.Error.Message)
		})
	}
}

func TestJSONBodies_WithinLimit_StillValidated(t *testing.T) {
	h := middleware.NewMaxBodySizeHandler(1024)(newHTTPHandler(handler.Services{
		Destinations: &mockDestinationServicer{},
	}))
	req := httptest.NewRequest(http.MethodPost, "/destinations", strings.NewReader(`{"name":`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}
