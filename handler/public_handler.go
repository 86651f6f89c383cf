package handler

import (
	"denuncias/models"
	"denuncias/service"
	"log/slog"
	"net/http"
)

// PublicHandler serves the unauthenticated complaint form. A citizen token is optional.
type PublicHandler struct {
	complaints *service.ComplaintService
	log        *slog.Logger
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(complaints *service.ComplaintService, log *slog.Logger) *PublicHandler {
	return &PublicHandler{complaints: complaints, log: log.With("component", "public_handler")}
}

// CreateComplaint handles POST /api/public/denuncias/create.
// The reporter is linked to a citizen account only through a verified citizen token.
func (h *PublicHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	req.CitizenID = nil

	resp, err := h.complaints.CreatePublic(r.Context(), &req, actorFrom(r))
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

// CreateCitizenComplaint handles POST /api/contribuyentes/me/denuncias; a citizen session is required.
func (h *PublicHandler) CreateCitizenComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	req.CitizenID = nil

	resp, err := h.complaints.CreateByCitizen(r.Context(), &req, actorFrom(r))
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}
