package domain

import (
	"time"

	"github.com/google/uuid"
)

// DestinationUsage is one row of a per-destination breakdown.
type DestinationUsage struct {
	DestinationID uuid.UUID
	Name          string
	Count         int
	KmTotal       Km
}

// MonthTotal is one row of the per-month breakdown in the yearly report.
// Month is the first day of the month.
type MonthTotal struct {
	Month   time.Time
	TotalKm Km
	Trips   int
}

// MonthlyStats is the report for a single month.
// Destinations are ordered by trip count, highest first.
type MonthlyStats struct {
	Year         int
	Month        int
	TotalKm      Km
	Destinations []DestinationUsage
}

// YearlyStats is the report for a whole year.
// Months are chronological and only include months with entries.
// Destinations are ordered by distance subtotal, highest first.
type YearlyStats struct {
	Year         int
	TotalKm      Km
	Months       []MonthTotal
	Destinations []DestinationUsage
}
