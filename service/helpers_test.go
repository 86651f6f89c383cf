package service

import (
	"context"
	"denuncias/database"
	"denuncias/logger"
	"denuncias/models"
	"denuncias/repository"
	"denuncias/storage"
	"denuncias/testutil"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testEnv struct {
	db          *database.DB
	uploads     string
	queue       *testutil.RecordingQueue
	complaints  *ComplaintService
	staff       *StaffService
	citizens    *CitizenService
	reporters   *ReporterService
	attachments *AttachmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	uploads := t.TempDir()
	files := storage.NewFileStore(uploads, 0)
	log := logger.Discard()
	queue := &testutil.RecordingQueue{}
	tokens := NewTokenIssuer("test-secret", time.Hour)

	complaints := NewComplaintService(db, files, NewNotificationService(queue, log, nil), nil, log)
	return &testEnv{
		db:          db,
		uploads:     uploads,
		queue:       queue,
		complaints:  complaints,
		staff:       NewStaffService(db, tokens, nil, log),
		citizens:    NewCitizenService(db, complaints, tokens, log),
		reporters:   NewReporterService(db, log),
		attachments: NewAttachmentService(db, files, nil, log),
	}
}

func (e *testEnv) seedStaff(t *testing.T, role models.Role, email string) *models.StaffUser {
	t.Helper()
	last := "Tester"
	u := &models.StaffUser{
		FirstName:    string(role),
		LastName:     &last,
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Role:         role,
		CreatedAt:    database.Now(),
	}
	if err := repository.NewStaffRepository(e.db).CreateStaff(context.Background(), u); err != nil {
		t.Fatalf("seed staff: %v", err)
	}
	return u
}

func (e *testEnv) createComplaint(t *testing.T, email string) *models.CreateComplaintResponse {
	t.Helper()
	resp, err := e.complaints.CreatePublic(context.Background(), &models.CreateComplaintRequest{
		Category:      "noise",
		Title:         "Loud construction",
		Description:   "Works every night after 23:00",
		Address:       "123 Main",
		District:      "Centro",
		ReporterEmail: email,
	}, nil)
	if err != nil {
		t.Fatalf("create complaint: %v", err)
	}
	return resp
}

// count runs SELECT COUNT(*) with a ? filter.
func (e *testEnv) count(t *testing.T, table, where string, args ...any) int {
	t.Helper()
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if where != "" {
		q += " WHERE " + where
	}
	var n int
	if err := e.db.QueryRowContext(context.Background(), q, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func (e *testEnv) storedFiles(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(e.uploads, "denuncias"))
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatalf("read uploads: %v", err)
	}
	return len(entries)
}

func actor(u *models.StaffUser) *models.Actor {
	return &models.Actor{ID: u.ID, Email: u.Email, Role: u.Role}
}
