package handler

import (
	"denuncias/models"
	"denuncias/service"
	"log/slog"
	"net/http"
)

// AdminHandler serves the administrator view of reporters under /api/admin/denunciantes
type AdminHandler struct {
	reporters *service.ReporterService
	log       *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reporters *service.ReporterService, log *slog.Logger) *AdminHandler {
	return &AdminHandler{reporters: reporters, log: log.With("component", "admin_handler")}
}

// GetReporters handles GET /api/admin/denunciantes
func (h *AdminHandler) GetReporters(w http.ResponseWriter, r *http.Request) {
	list, err := h.reporters.List(r.Context())
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

// GetReporter handles GET /api/admin/denunciantes/{id}
func (h *AdminHandler) GetReporter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	rp, err := h.reporters.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rp)
}

// UpdateReporter handles PUT /api/admin/denunciantes/{id}
func (h *AdminHandler) UpdateReporter(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.UpdateReporterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	rp, err := h.reporters.Update(r.Context(), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, rp)
}
