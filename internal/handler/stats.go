package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// GetMonthlyStats handles GET /stats/monthly?year=YYYY&month=M.
func (s *Server) GetMonthlyStats(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "stats")
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	st, err := s.svc.Stats.Monthly(r.Context(), userID, year, month)
	if err != nil {
		s.writeError(w, r, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, monthlyStatsResponse{
		Year:         st.Year,
		Month:        st.Month,
		TotalKm:      st.TotalKm,
		Destinations: usageToResponse(st.Destinations),
	})
}

// GetYearlyStats handles GET /stats/yearly?year=YYYY.
func (s *Server) GetYearlyStats(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "stats")
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	st, err := s.svc.Stats.Yearly(r.Context(), userID, year)
	if err != nil {
		s.writeError(w, r, err, "stats")
		return
	}

	months := make([]monthTotalResponse, 0, len(st.Months))
	for _, m := range st.Months {
		months = append(months, monthTotalResponse{
			Month:   openapi_types.Date{Time: m.Month},
			TotalKm: m.TotalKm,
			Trips:   m.Trips,
		})
	}
	writeJSON(w, http.StatusOK, yearlyStatsResponse{
		Year:          st.Year,
		TotalKm:       st.TotalKm,
		MonthlyTotals: months,
		Destinations:  usageToResponse(st.Destinations),
	})
}
