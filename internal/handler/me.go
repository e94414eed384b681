package handler

import (
	"net/http"

	"github.com/pkordes/drivelog/internal/domain"
)

// GetMe handles GET /me.
func (s *Server) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "user")
		return
	}

	u, err := s.svc.Users.Get(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}

// PatchMe handles PATCH /me. Omitted fields are left unchanged; an explicit
// null default_start_address clears it.
func (s *Server) PatchMe(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err, "user")
		return
	}

	var req mePatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	patch := domain.ProfilePatch{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		SetStartAddress:     req.DefaultStartAddress.Set,
		DefaultStartAddress: req.DefaultStartAddress.Value,
	}
	u, err := s.svc.Users.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		s.writeError(w, r, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, userToResponse(u))
}
