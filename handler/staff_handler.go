package handler

import (
	"denuncias/models"
	"denuncias/service"
	"log/slog"
	"net/http"
)

// StaffHandler serves /api/usuarios
type StaffHandler struct {
	staff *service.StaffService
	log   *slog.Logger
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staff *service.StaffService, log *slog.Logger) *StaffHandler {
	return &StaffHandler{staff: staff, log: log.With("component", "staff_handler")}
}

// Login handles POST /api/usuarios/login
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	auth, err := h.staff.Login(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, auth)
}

// ListStaff handles GET /api/usuarios
func (h *StaffHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	users, err := h.staff.List(r.Context())
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, users)
}

// GetStaff handles GET /api/usuarios/{id}
func (h *StaffHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	user, err := h.staff.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// RegisterStaff handles POST /api/usuarios/register
func (h *StaffHandler) RegisterStaff(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterStaffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	user, err := h.staff.Register(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, user)
}

// UpdateStaff handles PUT /api/usuarios/{id}
func (h *StaffHandler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.UpdateStaffRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	user, err := h.staff.Update(r.Context(), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}

// DeleteStaff handles DELETE /api/usuarios/{id}
func (h *StaffHandler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := h.staff.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "staff user deleted"})
}
