// Package testutil holds shared helpers for package tests.
package testutil

import (
	"context"
	"denuncias/database"
	"denuncias/logger"
	"denuncias/models"
	"denuncias/schema"
	"path/filepath"
	"sync"
	"testing"
)

// NewTestDB opens a fresh sqlite database in a temp dir with foreign keys enforced and the schema created.
func NewTestDB(t testing.TB) *database.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(context.Background(), database.SQLite, "file:"+path+"?_foreign_keys=on", 1)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := schema.InitializeDatabase(context.Background(), db, logger.Discard()); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

// RecordingSender captures every notification it is asked to send.
type RecordingSender struct {
	mu   sync.Mutex
	sent []models.Notification
	Err  error
}

func (s *RecordingSender) Send(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, *n)
	return nil
}

// Sent returns a copy of the captured notifications.
func (s *RecordingSender) Sent() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.sent...)
}

// RecordingQueue is a synchronous stand-in for the mail worker.
type RecordingQueue struct {
	mu     sync.Mutex
	queued []models.Notification
}

func (q *RecordingQueue) Enqueue(n *models.Notification) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.queued = append(q.queued, *n)
	return true
}

// Queued returns a copy of the queued notifications.
func (q *RecordingQueue) Queued() []models.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]models.Notification(nil), q.queued...)
}
