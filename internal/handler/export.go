package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/drivelog/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{"date", "destination", "km", "notes"}

// GetExport handles GET /export?year=YYYY[&format=csv].
// It returns one row per driving-log entry of the year, ordered by date.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "export")
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		writeRequestError(w, "format must be json or csv")
		return
	}

	rows, err := s.svc.Export.Export(r.Context(), userID, year)
	if err != nil {
		s.writeError(w, r, err, "export")
		return
	}

	if format == "csv" {
		s.writeCSV(w, r, year, rows)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response rows.
func buildJSONRows(rows []domain.ExportRow) []exportRowResponse {
	out := make([]exportRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, exportRowResponse{
			Date:        openapi_types.Date{Time: r.Date},
			Destination: r.Destination,
			Km:          r.Km,
			Notes:       r.Notes,
		})
	}
	return out
}

// writeCSV encodes rows as CSV with a header row. The body is buffered so a
// write error can still be reported as a 500 before any bytes are sent.
func (s *Server) writeCSV(w http.ResponseWriter, r *http.Request, year int, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.writeError(w, r, fmt.Errorf("handler.GetExport: csv: %w", err), "export")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="drivelog-%d.csv"`, year))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.Date.Format(domain.DateLayout),
		r.Destination,
		r.Km.String(),
		r.Notes,
	}
}
