package handler

import (
	"net/http"

	"github.com/pkordes/drivelog/internal/domain"
)

// CreateDrivingLog handles POST /driving-log.
func (s *Server) CreateDrivingLog(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}

	var req drivingLogCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Day == nil {
		writeRequestError(w, "day is required")
		return
	}
	if req.DestinationID == nil {
		writeRequestError(w, "destination_id is required")
		return
	}

	entry := domain.DrivingLogEntry{DayID: *req.Day, DestinationID: *req.DestinationID}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}

	created, err := s.svc.Logs.Create(r.Context(), userID, entry)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}
	writeJSON(w, http.StatusCreated, drivingLogToResponse(created))
}

// GetDrivingLog handles GET /driving-log/{id}.
func (s *Server) GetDrivingLog(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	e, err := s.svc.Logs.Get(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}
	writeJSON(w, http.StatusOK, drivingLogToResponse(e))
}

// UpdateDrivingLog handles PATCH /driving-log/{id}.
// Only destination_id and notes may change.
func (s *Server) UpdateDrivingLog(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var req drivingLogPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if len(req.Day) > 0 {
		writeRequestError(w, "day cannot be changed")
		return
	}

	patch := domain.DrivingLogPatch{DestinationID: req.DestinationID, Notes: req.Notes}
	updated, err := s.svc.Logs.Update(r.Context(), userID, id, patch)
	if err != nil {
		s.writeError(w, r, err, "driving log entry")
		return
	}
	writeJSON(w, http.StatusOK, drivingLogToResponse(updated))
}
