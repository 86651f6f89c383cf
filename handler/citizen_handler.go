package handler

import (
	"denuncias/models"
	"denuncias/service"
	"log/slog"
	"net/http"
)

// CitizenHandler serves /api/contribuyentes: self-service for citizens and admin CRUD.
type CitizenHandler struct {
	citizens *service.CitizenService
	log      *slog.Logger
}

// NewCitizenHandler creates a new citizen handler
func NewCitizenHandler(citizens *service.CitizenService, log *slog.Logger) *CitizenHandler {
	return &CitizenHandler{citizens: citizens, log: log.With("component", "citizen_handler")}
}

// Register handles POST /api/contribuyentes/register
func (h *CitizenHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCitizenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	auth, err := h.citizens.Register(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, auth)
}

// Login handles POST /api/contribuyentes/login
func (h *CitizenHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	auth, err := h.citizens.Login(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, auth)
}

// Me handles GET /api/contribuyentes/me
func (h *CitizenHandler) Me(w http.ResponseWriter, r *http.Request) {
	c, err := h.citizens.Me(r.Context(), actorFrom(r))
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// UpdateMe handles PUT /api/contribuyentes/me
func (h *CitizenHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateCitizenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	c, err := h.citizens.UpdateMe(r.Context(), actorFrom(r), &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// DeleteMe handles DELETE /api/contribuyentes/me
func (h *CitizenHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.citizens.DeleteMe(r.Context(), actorFrom(r)); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

// Complaints handles GET /api/contribuyentes/{id}/denuncias
func (h *CitizenHandler) Complaints(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	items, err := h.citizens.Complaints(r.Context(), actorFrom(r), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// ListCitizens handles GET /api/contribuyentes
func (h *CitizenHandler) ListCitizens(w http.ResponseWriter, r *http.Request) {
	list, err := h.citizens.List(r.Context())
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// GetCitizen handles GET /api/contribuyentes/{id}
func (h *CitizenHandler) GetCitizen(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	c, err := h.citizens.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// UpdateCitizen handles PUT /api/contribuyentes/{id}
func (h *CitizenHandler) UpdateCitizen(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.UpdateCitizenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	c, err := h.citizens.Update(r.Context(), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// DeleteCitizen handles DELETE /api/contribuyentes/{id}
func (h *CitizenHandler) DeleteCitizen(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := h.citizens.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "citizen deleted"})
}
