package handler

import "net/http"

// GetCalendar handles GET /calendar?year=YYYY&month=M.
// Both parameters are required integers; the service validates their range.
func (s *Server) GetCalendar(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "calendar")
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

	days, err := s.svc.Calendar.Month(r.Context(), userID, year, month)
	if err != nil {
		s.writeError(w, r, err, "calendar")
		return
	}

	out := make([]calendarDayResponse, 0, len(days))
	for _, d := range days {
		out = append(out, calendarDayToResponse(d))
	}
	writeJSON(w, http.StatusOK, out)
}
