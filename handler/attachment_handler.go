package handler

import (
	"denuncias/service"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// AttachmentHandler serves /api/adjuntos
type AttachmentHandler struct {
	attachments  *service.AttachmentService
	maxFileBytes int64
	log          *slog.Logger
}

// NewAttachmentHandler creates a new attachment handler
func NewAttachmentHandler(attachments *service.AttachmentService, maxFileBytes int64, log *slog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachments:  attachments,
		maxFileBytes: maxFileBytes,
		log:          log.With("component", "attachment_handler"),
	}
}

// Upload handles POST /api/adjuntos/upload (multipart: file, complaint_id, description)
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(w, r, h.maxFileBytes+maxJSONBody); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, closeFiles, err := openUploads(r, "file")
	defer closeFiles()
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if len(uploads) == 0 {
		respondWithError(w, http.StatusBadRequest, "Validation error", "no file was uploaded")
		return
	}

	complaintID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("complaint_id")), 10, 64)
	att, err := h.attachments.Upload(r.Context(), actorFrom(r), complaintID, r.FormValue("description"), uploads[0])
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, att)
}

// Download handles GET /api/adjuntos/download/{id}
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	att, f, err := h.attachments.Download(r.Context(), id)
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		h.log.Error("failed to stat attachment", "attachment_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal error", "Unexpected server error")
		return
	}
	w.Header().Set("Content-Type", att.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": service.DownloadName(att),
	}))
	http.ServeContent(w, r, "", info.ModTime(), f)
}

// Delete handles DELETE /api/adjuntos/{id}
func (h *AttachmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	if err := h.attachments.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, h.log, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "attachment deleted"})
}
