// Package handler implements the HTTP handlers for the drive logbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (calendar.go, drivinglog.go, etc.) but all share the same Server struct
// so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/drivelog/internal/domain"
)

// The servicer interfaces define the business operations the handlers depend
// on. Defining them here, in the consumer package, lets handler tests inject
// mocks without touching the database or service layer.

// UserServicer serves the caller's own profile.
type UserServicer interface {
	Get(ctx context.Context, userID uuid.UUID) (domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error)
}

// DestinationServicer serves the caller's destination registry.
type DestinationServicer interface {
	Create(ctx context.Context, userID uuid.UUID, dest domain.Destination) (domain.Destination, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.Destination, error)
	List(ctx context.Context, userID uuid.UUID, p domain.PaginationParams) (domain.Page[domain.Destination], error)
	Update(ctx context.Context, userID, id uuid.UUID, patch domain.DestinationPatch) (domain.Destination, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// CalendarServicer serves month views of the calendar.
type CalendarServicer interface {
	Month(ctx context.Context, userID uuid.UUID, year, month int) ([]domain.CalendarDay, error)
}

// DrivingLogServicer serves driving-log entries.
type DrivingLogServicer interface {
	Create(ctx context.Context, userID uuid.UUID, entry domain.DrivingLogEntry) (domain.DrivingLogEntry, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.DrivingLogEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch domain.DrivingLogPatch) (domain.DrivingLogEntry, error)
}

// StatsServicer serves the monthly and yearly reports.
type StatsServicer interface {
	Monthly(ctx context.Context, userID uuid.UUID, year, month int) (domain.MonthlyStats, error)
	Yearly(ctx context.Context, userID uuid.UUID, year int) (domain.YearlyStats, error)
}

// ExportServicer serves the flat yearly export.
type ExportServicer interface {
	Export(ctx context.Context, userID uuid.UUID, year int) ([]domain.ExportRow, error)
}

// Pinger reports whether a backing dependency is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the dependencies of Server. A nil servicer is allowed in
// tests that do not exercise its routes.
type Services struct {
	Users        UserServicer
	Destinations DestinationServicer
	Calendar     CalendarServicer
	Logs         DrivingLogServicer
	Stats        StatsServicer
	Export       ExportServicer
	DB           Pinger
}

// Server holds the services every handler method operates on.
type Server struct {
	svc Services
	log *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services, log *slog.Logger) *Server {
	return &Server{svc: svc, log: log}
}

// Mount registers every route on r. /healthz is public; all other routes are
// wrapped with protect, which must authenticate the caller and store its id
// via auth.WithUserID.
func (s *Server) Mount(r chi.Router, protect ...func(http.Handler) http.Handler) {
	r.Get("/healthz", s.GetHealth)

	r.Group(func(r chi.Router) {
		r.Use(protect...)

		r.Get("/me", s.GetMe)
		r.Patch("/me", s.PatchMe)

		r.Get("/calendar", s.GetCalendar)

		r.Post("/driving-log", s.CreateDrivingLog)
		r.Get("/driving-log/{id}", s.GetDrivingLog)
		r.Patch("/driving-log/{id}", s.UpdateDrivingLog)

		r.Get("/destinations", s.ListDestinations)
		r.Post("/destinations", s.CreateDestination)
		r.Get("/destinations/{id}", s.GetDestination)
		r.Patch("/destinations/{id}", s.UpdateDestination)
		r.Delete("/destinations/{id}", s.DeleteDestination)

		r.Get("/stats/monthly", s.GetMonthlyStats)
		r.Get("/stats/yearly", s.GetYearlyStats)

		r.Get("/export", s.GetExport)
	})
}
