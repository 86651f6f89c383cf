package handler

import (
	"denuncias/models"
	"denuncias/service"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// ComplaintHandler handles HTTP requests for complaints
type ComplaintHandler struct {
	service      *service.ComplaintService
	maxFileBytes int64
	log          *slog.Logger
}

// NewComplaintHandler creates a new complaint handler. maxFileBytes bounds a single uploaded file.
func NewComplaintHandler(svc *service.ComplaintService, maxFileBytes int64, log *slog.Logger) *ComplaintHandler {
	return &ComplaintHandler{
		service:      svc,
		maxFileBytes: maxFileBytes,
		log:          log.With("component", "complaint_handler"),
	}
}

// ListComplaints handles GET /api/denuncias?status=&category=&district=&q=
func (h *ComplaintHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.service.List(r.Context(), models.ComplaintFilter{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		District: q.Get("district"),
		Query:    q.Get("q"),
	})
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, items)
}

// GetComplaint handles GET /api/denuncias/{id}
func (h *ComplaintHandler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	detail, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, detail)
}

// CreateComplaint handles POST /api/denuncias (staff on behalf of a reporter)
func (h *ComplaintHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var req models.CreateComplaintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	resp, err := h.service.CreateByStaff(r.Context(), &req, actorFrom(r))
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, resp)
}

// UpdateComplaint handles PUT /api/denuncias/{id}
func (h *ComplaintHandler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.UpdateComplaintRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	c, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

// DeleteComplaint handles DELETE /api/denuncias/{id}
func (h *ComplaintHandler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "complaint deleted"})
}

// AssignComplaint handles POST /api/denuncias/{id}/assign
func (h *ComplaintHandler) AssignComplaint(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.AssignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	a, err := h.service.Assign(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, a)
}

// UpdateState handles PUT /api/denuncias/{id}/state
func (h *ComplaintHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	var req models.TransitionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	entry, err := h.service.Transition(r.Context(), actorFrom(r), id, &req)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, entry)
}

// GetHistory handles GET /api/denuncias/{id}/history
func (h *ComplaintHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	history, err := h.service.History(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, history)
}

// AddAdvance handles POST /api/denuncias/{id}/advances (multipart: comment, files)
func (h *ComplaintHandler) AddAdvance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := parseMultipart(w, r, h.maxFileBytes*maxFilesPerRequest+maxJSONBody); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, closeFiles, err := openUploads(r, "files")
	defer closeFiles()
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}

	result, err := h.service.AddAdvance(r.Context(), actorFrom(r), id, r.FormValue("comment"), uploads)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, result)
}

// ListAdvances handles GET /api/denuncias/{id}/advances
func (h *ComplaintHandler) ListAdvances(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	advances, err := h.service.ListAdvances(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, advances)
}

// DeleteAttachment handles DELETE /api/denuncias/{id}/adjuntos/{attachment_id}
func (h *ComplaintHandler) DeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	attachmentID, err := pathID(r, "attachment_id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := h.service.DeleteAttachment(r.Context(), id, attachmentID); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "attachment deleted"})
}

// GetReport handles GET /api/denuncias/reports/summary
func (h *ComplaintHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Report(r.Context())
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, report)
}

// GetPublicStatus handles GET .../status/{id}. No authentication; the id is the public tracking number.
func (h *ComplaintHandler) GetPublicStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.PublicStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, status)
}
