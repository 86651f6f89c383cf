package handler

import (
	"bytes"
	"denuncias/apperr"
	"denuncias/logger"
	"denuncias/models"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
)

func TestRespondWithAppError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantLabel   string
		wantMessage string
	}{
		{"validation", apperr.Validation("title is required"), http.StatusBadRequest, "Validation error", "title is required"},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperr.NotFound("complaint not found")), http.StatusNotFound, "Not found", "complaint not found"},
		{"conflict", apperr.Conflict("email already registered", errors.New("dup")), http.StatusConflict, "Conflict", "email already registered"},
		{"raw error is hidden", errors.New("dial tcp 10.0.0.5:3306: refused"), http.StatusInternalServerError, "Internal error", "Unexpected server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondWithAppError(rec, logger.Discard(), httptest.NewRequest(http.MethodGet, "/x", nil), tt.err)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var env models.ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error != tt.wantLabel || env.Message != tt.wantMessage || env.Code != tt.wantCode {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"status":"Asignada"}`, false},
		{"malformed", `{"status":`, true},
		{"too large", `{"status":"` + strings.Repeat("a", maxJSONBody) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst models.TransitionRequest
			err := decodeJSON(rec, req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("err kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.raw})
		got, err := pathID(req, "id")
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("pathID(%q) = %d, %v", tt.raw, got, err)
		}
	}
}

func TestOpenUploadsLimitsFileCount(t *testing.T) {
	build := func(n int) *http.Request {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for i := 0; i < n; i++ {
			fw, _ := mw.CreateFormFile("files", fmt.Sprintf("f%d.txt", i))
			fw.Write([]byte("x"))
		}
		mw.Close()
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse: %v", err)
		}
		return req
	}

	uploads, closeFiles, err := openUploads(build(maxFilesPerRequest), "files")
	defer closeFiles()
	if err != nil {
		t.Fatalf("at the limit: %v", err)
	}
	if len(uploads) != maxFilesPerRequest {
		t.Errorf("uploads = %d, want %d", len(uploads), maxFilesPerRequest)
	}

	_, closeMore, err := openUploads(build(maxFilesPerRequest+1), "files")
	defer closeMore()
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("over the limit: err = %v, want validation", err)
	}
}
