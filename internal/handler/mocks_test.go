package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/drivelog/internal/auth"
	"github.com/pkordes/drivelog/internal/domain"
	"github.com/pkordes/drivelog/internal/handler"
)

// Test doubles for the handler servicer interfaces.
// Set only the method fields your test needs.

type mockUserServicer struct {
	get           func(ctx context.Context, userID uuid.UUID) (domain.User, error)
	updateProfile func(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
}

func (m *mockUserServicer) Get(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.get(ctx, userID)
}
func (m *mockUserServicer) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	return m.updateProfile(ctx, userID, patch)
}

type mockDestinationServicer struct {
	create func(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error)
	get    func(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	list   func(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Destination], error)
	update func(ctx context.Context, userID, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error)
	delete func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockDestinationServicer) Create(ctx context.Context, userID uuid.UUID, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, userID, d)
}
func (m *mockDestinationServicer) Get(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error) {
	return m.get(ctx, userID, id)
}
func (m *mockDestinationServicer) List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Destination], error) {
	return m.list(ctx, userID, p)
}
func (m *mockDestinationServicer) Update(ctx context.Context, userID, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error) {
	return m.update(ctx, userID, id, patch)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockCalendarServicer struct {
	month func(ctx context.Context, userID uuid.UUID, year, month int) ([]domain.CalendarDay, error)
}

func (m *mockCalendarServicer) Month(ctx context.Context, userID uuid.UUID, year, month int) ([]domain.CalendarDay, error) {
	return m.month(ctx, userID, year, month)
}

type mockDrivingLogServicer struct {
	create func(ctx context.Context, userID uuid.UUID, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error)
	get    func(ctx context.Context, userID, id uuid.UUID) (domain.DrivingLogEntry, error)
	update func(ctx context.Context, userID, id uuid.UUID, patch domain.DrivingLogPatch) (domain.DrivingLogEntry, error)
}

func (m *mockDrivingLogServicer) Create(ctx context.Context, userID uuid.UUID, e domain.DrivingLogEntry) (domain.DrivingLogEntry, error) {
	return m.create(ctx, userID, e)
}
func (m *mockDrivingLogServicer) Get(ctx context.Context, userID, id uuid.UUID) (domain.DrivingLogEntry, error) {
	return m.get(ctx, userID, id)
}
func (m *mockDrivingLogServicer) Update(ctx context.Context, userID, id uuid.UUID, patch domain.DrivingLogPatch) (domain.DrivingLogEntry, error) {
	return m.update(ctx, userID, id, patch)
}

type mockStatsServicer struct {
	monthly func(ctx context.Context, userID uuid.UUID, year, month int) (domain.MonthlyStats, error)
	yearly  func(ctx context.Context, userID uuid.UUID, year int) (domain.YearlyStats, error)
}

func (m *mockStatsServicer) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (domain.MonthlyStats, error) {
	return m.monthly(ctx, userID, year, month)
}
func (m *mockStatsServicer) Yearly(ctx context.Context, userID uuid.UUID, year int) (domain.YearlyStats, error) {
	return m.yearly(ctx, userID, year)
}

type mockExportServicer struct {
	export func(ctx context.Context, userID uuid.UUID, year int) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, userID uuid.UUID, year int) ([]domain.ExportRow, error) {
	return m.export(ctx, userID, year)
}

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: mocks must satisfy the handler interfaces.
var (
	_ handler.UserServicer        = (*mockUserServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
	_ handler.CalendarServicer    = (*mockCalendarServicer)(nil)
	_ handler.DrivingLogServicer  = (*mockDrivingLogServicer)(nil)
	_ handler.StatsServicer       = (*mockStatsServicer)(nil)
	_ handler.ExportServicer      = (*mockExportServicer)(nil)
	_ handler.Pinger              = mockPinger{}
)

// ---- helpers ---------------------------------------------------------------

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// testUser is the caller every protected request is made as.
var testUser = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

// asTestUser stands in for the bearer-token middleware.
func asTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), testUser)))
	})
}

// newHTTPHandler wires a Server with the given services into a chi router the
// same way main.go does, with authentication replaced by asTestUser.
func newHTTPHandler(svc handler.Services) http.Handler {
	r := chi.NewRouter()
	handler.NewServer(svc, testLogger).Mount(r, asTestUser)
	return r
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var e errorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&e))
	return e
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func destinationFixture() domain.Destination {
	return domain.Destination{
		ID:        uuid.New(),
		UserID:    testUser,
		Name:      "Office",
		Km:        200,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func entryFixture() domain.DrivingLogEntry {
	dest := destinationFixture()
	return domain.DrivingLogEntry{
		ID:            uuid.New(),
		DayID:         uuid.New(),
		DestinationID: dest.ID,
		Notes:         "client visit",
		Date:          day(2024, time.March, 4),
		UserID:        testUser,
		Destination:   dest,
	}
}
