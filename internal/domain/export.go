package domain

import "time"

// ExportRow is a single row in the driving-log export.
// It is a flat, denormalized view: one row per driving-log entry with the
// destination's name and distance resolved at export time.
type ExportRow struct {
	Date        time.Time
	Destination string
	Km          Km
	Notes       string
}
