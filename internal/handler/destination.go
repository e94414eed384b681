package handler

import (
	"net/http"

	"github.com/pkordes/drivelog/internal/domain"
)

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if req.Name == nil {
		writeRequestError(w, "name is required")
		return
	}
	if req.Km == nil {
		writeRequestError(w, "km is required")
		return
	}

	created, err := s.svc.Destinations.Create(r.Context(), userID, domain.Destination{Name: *req.Name, Km: *req.Km})
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// ListDestinations handles GET /destinations.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	page, err := optionalQueryInt(r, "page")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}
	limit, err := optionalQueryInt(r, "limit")
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	res, err := s.svc.Destinations.List(r.Context(), userID, domain.NewPaginationParams(page, limit))
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}

	data := make([]destinationResponse, len(res.Items))
	for i, d := range res.Items {
		data[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, destinationListResponse{
		Data: data,
		Pagination: pagination{
			Page:  res.Params.Page,
			Limit: res.Params.Limit,
			Total: int(res.Total),
		},
	})
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	d, err := s.svc.Destinations.Get(r.Context(), userID, id)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// UpdateDestination handles PATCH /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	var req destinationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	updated, err := s.svc.Destinations.Update(r.Context(), userID, id, domain.DestinationPatch{Name: req.Name, Km: req.Km})
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

// DeleteDestination handles DELETE /destinations/{id}.
// The destination is soft-deleted: hidden from listings but still resolvable
// from the driving-log entries that reference it.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeRequestError(w, err.Error())
		return
	}

	if err := s.svc.Destinations.Delete(r.Context(), userID, id); err != nil {
		s.writeError(w, r, err, "destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
