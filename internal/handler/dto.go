package handler

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/drivelog/internal/domain"
)

// ---- destinations ----------------------------------------------------------

type destinationResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Km        domain.Km `json:"km"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// destinationRequest is the body of POST and PATCH /destinations.
// Pointers distinguish omitted fields from zero values.
type destinationRequest struct {
	Name *string    `json:"name"`
	Km   *domain.Km `json:"km"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type destinationListResponse struct {
	Data       []destinationResponse `json:"data"`
	Pagination pagination            `json:"pagination"`
}

func destinationToResponse(d domain.Destination) destinationResponse {
	return destinationResponse{
		ID:        d.ID,
		Name:      d.Name,
		Km:        d.Km,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ---- driving log -----------------------------------------------------------

type drivingLogResponse struct {
	ID          uuid.UUID           `json:"id"`
	Day         uuid.UUID           `json:"day"`
	Date        openapi_types.Date  `json:"date"`
	Destination destinationResponse `json:"destination"`
	Notes       string              `json:"notes"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type drivingLogCreateRequest struct {
	Day           *uuid.UUID `json:"day"`
	DestinationID *uuid.UUID `json:"destination_id"`
	Notes         *string    `json:"notes"`
}

// drivingLogPatchRequest accepts "day" only so it can be rejected with a
// clear message: an entry can never move to another day.
type drivingLogPatchRequest struct {
	Day           json.RawMessage `json:"day"`
	DestinationID *uuid.UUID      `json:"destination_id"`
	Notes         *string         `json:"notes"`
}

func drivingLogToResponse(e domain.DrivingLogEntry) drivingLogResponse {
	return drivingLogResponse{
		ID:          e.ID,
		Day:         e.DayID,
		Date:        openapi_types.Date{Time: e.Date},
		Destination: destinationToResponse(e.Destination),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// ---- calendar --------------------------------------------------------------

type calendarDayResponse struct {
	ID         uuid.UUID           `json:"id"`
	Date       openapi_types.Date  `json:"date"`
	DrivingLog *drivingLogResponse `json:"driving_log"`
}

func calendarDayToResponse(d domain.CalendarDay) calendarDayResponse {
	out := calendarDayResponse{ID: d.ID, Date: openapi_types.Date{Time: d.Date}}
	if d.Log != nil {
		log := drivingLogToResponse(*d.Log)
		out.DrivingLog = &log
	}
	return out
}

// ---- profile ---------------------------------------------------------------

type meResponse struct {
	ID                  uuid.UUID `json:"id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	FirstName           string    `json:"first_name"`
	LastName            string    `json:"last_name"`
	DefaultStartAddress *string   `json:"default_start_address"`
}

// nullableString records whether a JSON key was present at all, so that an
// explicit null can be told apart from an omitted field.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type mePatchRequest struct {
	FirstName           *string        `json:"first_name"`
	LastName            *string        `json:"last_name"`
	DefaultStartAddress nullableString `json:"default_start_address"`
}

func userToResponse(u domain.User) meResponse {
	return meResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		DefaultStartAddress: u.DefaultStartAddress,
	}
}

// ---- stats -----------------------------------------------------------------

type destinationUsageResponse struct {
	DestinationID uuid.UUID `json:"destination_id"`
	Name          string    `json:"name"`
	Count         int       `json:"count"`
	KmTotal       domain.Km `json:"km_total"`
}

type monthlyStatsResponse struct {
	Year         int                        `json:"year"`
	Month        int                        `json:"month"`
	TotalKm      domain.Km                  `json:"total_km"`
	Destinations []destinationUsageResponse `json:"destinations"`
}

type monthTotalResponse struct {
	Month   openapi_types.Date `json:"month"`
	TotalKm domain.Km          `json:"total_km"`
	Trips   int                `json:"trips"`
}

type yearlyStatsResponse struct {
	Year          int                        `json:"year"`
	TotalKm       domain.Km                  `json:"total_km"`
	MonthlyTotals []monthTotalResponse       `json:"monthly_totals"`
	Destinations  []destinationUsageResponse `json:"destinations"`
}

func usageToResponse(in []domain.DestinationUsage) []destinationUsageResponse {
	out := make([]destinationUsageResponse, 0, len(in))
	for _, u := range in {
		out = append(out, destinationUsageResponse{
			DestinationID: u.DestinationID,
			Name:          u.Name,
			Count:         u.Count,
			KmTotal:       u.KmTotal,
		})
	}
	return out
}

// ---- export ----------------------------------------------------------------

type exportRowResponse struct {
	Date        openapi_types.Date `json:"date"`
	Destination string             `json:"destination"`
	Km          domain.Km          `json:"km"`
	Notes       string             `json:"notes"`
}
