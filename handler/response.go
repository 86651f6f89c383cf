package handler

import (
	"denuncias/apperr"
	"denuncias/middleware"
	"denuncias/models"
	"denuncias/service"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// maxJSONBody caps decoded request bodies.
const maxJSONBody = 1 << 20

// maxFilesPerRequest caps the "files" field of multi-file uploads.
const maxFilesPerRequest = 10

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondWithError sends an error response
func respondWithError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondWithJSON(w, statusCode, models.ErrorResponse{
		Error:   errorType,
		Message: message,
		Code:    statusCode,
	})
}

// respondWithAppError maps a service error onto the envelope. Internal errors are logged
// and answered with a generic message.
func respondWithAppError(w http.ResponseWriter, log *slog.Logger, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondWithError(w, kind.Status(), kind.Label(), apperr.PublicMessage(err))
}

// decodeJSON decodes a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("request body too large")
		}
		return apperr.Validation("failed to parse request body")
	}
	return nil
}

// pathID reads a positive integer path variable.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func actorFrom(r *http.Request) *models.Actor {
	return middleware.ActorFromContext(r.Context())
}

// parseMultipart bounds and parses a multipart body. limit covers every file plus the form fields.
func parseMultipart(w http.ResponseWriter, r *http.Request, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperr.Validation("file exceeds the maximum allowed size")
		}
		return apperr.Validation("expected a multipart/form-data body")
	}
	return nil
}

// openUploads opens every file sent under field. The returned closer releases them.
func openUploads(r *http.Request, field string) ([]service.Upload, func(), error) {
	var (
		uploads []service.Upload
		opened  []multipart.File
	)
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	if r.MultipartForm == nil {
		return nil, closeAll, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) > maxFilesPerRequest {
		return nil, closeAll, apperr.Validation("too many files; the limit is " + strconv.Itoa(maxFilesPerRequest))
	}
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperr.Validation("failed to read uploaded file")
		}
		opened = append(opened, f)
		uploads = append(uploads, service.Upload{Field: field, Name: fh.Filename, Body: f})
	}
	return uploads, closeAll, nil
}
