// Package storage keeps uploaded complaint files on local disk.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// DefaultMaxBytes is the per-file upload limit.
const DefaultMaxBytes int64 = 5 << 20

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrNotFound        = errors.New("stored file not found")
)

// allowed maps accepted MIME types to the extension used on disk.
var allowed = map[string]string{
	"image/jpeg":         ".jpg",
	"image/png":          ".png",
	"image/gif":          ".gif",
	"image/webp":         ".webp",
	"application/pdf":    ".pdf",
	"application/msword": ".doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": ".docx",
}

// Stored describes a file written by Save.
type Stored struct {
	OriginalName string
	MimeType     string
	Path         string // relative to the base path; this is what gets persisted
	Size         int64
}

// FileStore writes files under <base>/denuncias.
type FileStore struct {
	base     string
	maxBytes int64
	now      func() time.Time
}

// NewFileStore creates a file store rooted at base.
func NewFileStore(base string, maxBytes int64) *FileStore {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &FileStore{base: base, maxBytes: maxBytes, now: time.Now}
}

// Save sniffs, size-checks and writes r. field is the form field name, used as the file name prefix.
func (s *FileStore) Save(field, originalName string, r io.Reader) (*Stored, error) {
	// One extra byte tells "exactly max" apart from "over max".
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, ErrTooLarge
	}

	mt := mimetype.Detect(data)
	ext, ok := lookup(mt)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mt.String())
	}

	dir := filepath.Join(s.base, "denuncias")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	if field == "" {
		field = "file"
	}
	name := fmt.Sprintf("%s-%d-%s%s", field, s.now().UnixMilli(), uuid.NewString()[:8], ext)
	rel := filepath.ToSlash(filepath.Join("denuncias", name))

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &Stored{
		OriginalName: filepath.Base(originalName),
		MimeType:     baseType(mt),
		Path:         rel,
		Size:         int64(len(data)),
	}, nil
}

// Open returns the stored file at rel. Missing files yield ErrNotFound.
func (s *FileStore) Open(rel string) (*os.File, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

// Remove deletes the stored file. A file that is already gone is not an error.
func (s *FileStore) Remove(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// resolve keeps rel inside the base directory.
func (s *FileStore) resolve(rel string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	if clean == string(filepath.Separator) {
		return "", ErrNotFound
	}
	return filepath.Join(s.base, clean), nil
}

func lookup(mt *mimetype.MIME) (string, bool) {
	ext, ok := allowed[baseType(mt)]
	return ext, ok
}

func baseType(m *mimetype.MIME) string {
	t, _, _ := strings.Cut(m.String(), ";")
	return strings.TrimSpace(t)
}
