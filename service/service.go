// Package service implements the complaint lifecycle and the account services on top of the repositories.
// Every multi-statement mutation runs inside database.WithTx; side effects (mail, file removal) run after commit.
package service

import (
	"denuncias/apperr"
	"denuncias/database"
	"denuncias/storage"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// FileStore is the part of *storage.FileStore the services use.
type FileStore interface {
	Save(field, originalName string, r io.Reader) (*storage.Stored, error)
	Open(rel string) (*os.File, error)
	Remove(rel string) error
}

// Upload is one file taken from a multipart request.
type Upload struct {
	Field string
	Name  string
	Body  io.Reader
}

// classify maps persistence sentinels onto the error taxonomy. apperr errors pass through.
func classify(err error, msg string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	switch {
	case errors.Is(err, database.ErrDuplicate):
		return apperr.Conflict("a record with the same unique value already exists", err)
	case errors.Is(err, database.ErrForeignKey):
		return apperr.Conflict("the operation conflicts with related records", err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// storeUploads saves every upload. On the first failure the files already written are removed.
func storeUploads(files FileStore, log *slog.Logger, uploads []Upload) ([]*storage.Stored, error) {
	stored := make([]*storage.Stored, 0, len(uploads))
	for _, u := range uploads {
		st, err := files.Save(u.Field, u.Name, u.Body)
		if err != nil {
			removeStored(files, log, stored)
			return nil, fileError(err)
		}
		stored = append(stored, st)
	}
	return stored, nil
}

func fileError(err error) error {
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return apperr.Validation("unsupported file type; allowed types are JPEG, PNG, GIF, WebP, PDF, DOC and DOCX")
	case errors.Is(err, storage.ErrTooLarge):
		return apperr.Validation("file exceeds the maximum allowed size")
	}
	return fmt.Errorf("failed to store file: %w", err)
}

// removeStored deletes files best-effort; failures are only logged.
func removeStored(files FileStore, log *slog.Logger, stored []*storage.Stored) {
	for _, st := range stored {
		removePath(files, log, st.Path)
	}
}

func removePath(files FileStore, log *slog.Logger, path string) {
	if err := files.Remove(path); err != nil {
		log.Warn("failed to remove stored file", "path", path, "error", err)
	}
}
