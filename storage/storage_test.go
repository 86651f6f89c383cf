package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func TestSave_AcceptsAllowedTypes(t *testing.T) {
	store := NewFileStore(t.TempDir(), 0)

	tests := []struct {
		name     string
		data     []byte
		wantMime string
		wantExt  string
	}{
		{"png", pngHeader, "image/png", ".png"},
		{"pdf", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"), "application/pdf", ".pdf"},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"), "image/jpeg", ".jpg"},
		{"gif", []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00"), "image/gif", ".gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := store.Save("files", "evidence"+tt.wantExt, bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if st.MimeType != tt.wantMime {
				t.Errorf("mime = %q, want %q", st.MimeType, tt.wantMime)
			}
			if !strings.HasPrefix(st.Path, "denuncias/files-") || !strings.HasSuffix(st.Path, tt.wantExt) {
				t.Errorf("unexpected path %q", st.Path)
			}
			if st.Size != int64(len(tt.data)) {
				t.Errorf("size = %d, want %d", st.Size, len(tt.data))
			}
			f, err := store.Open(st.Path)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			got, _ := io.ReadAll(f)
			f.Close()
			if !bytes.Equal(got, tt.data) {
				t.Error("stored bytes differ from upload")
			}
		})
	}
}

func TestSave_RejectsUnsupportedType(t *testing.T) {
	store := NewFileStore(t.TempDir(), 0)
	_, err := store.Save("file", "notes.txt", strings.NewReader("just some plain text"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestSave_RejectsOversize(t *testing.T) {
	base := t.TempDir()
	store := NewFileStore(base, int64(len(pngHeader)+10))

	big := append(append([]byte{}, pngHeader...), make([]byte, 11)...)
	if _, err := store.Save("file", "big.png", bytes.NewReader(big)); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err = %v, want ErrTooLarge", err)
	}

	exact := append(append([]byte{}, pngHeader...), make([]byte, 10)...)
	if _, err := store.Save("file", "exact.png", bytes.NewReader(exact)); err != nil {
		t.Fatalf("file at the limit rejected: %v", err)
	}

	entries, _ := os.ReadDir(filepath.Join(base, "denuncias"))
	if len(entries) != 1 {
		t.Errorf("expected one stored file, got %d", len(entries))
	}
}

func TestSave_UniqueNames(t *testing.T) {
	store := NewFileStore(t.TempDir(), 0)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		st, err := store.Save("file", "a.png", bytes.NewReader(pngHeader))
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[st.Path] {
			t.Fatalf("duplicate path %q", st.Path)
		}
		seen[st.Path] = true
	}
}

func TestRemoveAndOpen(t *testing.T) {
	store := NewFileStore(t.TempDir(), 0)
	st, err := store.Save("file", "a.png", bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Remove(st.Path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(st.Path); err != nil {
		t.Errorf("second Remove should be a no-op, got %v", err)
	}
	if _, err := store.Open(st.Path); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open after remove: err = %v, want ErrNotFound", err)
	}
}

func TestOpen_StaysInsideBase(t *testing.T) {
	outer := t.TempDir()
	secret := filepath.Join(outer, "secret.txt")
	if err := os.WriteFile(secret, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	base := filepath.Join(outer, "uploads")
	store := NewFileStore(base, 0)

	if _, err := store.Open("../secret.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("traversal: err = %v, want ErrNotFound", err)
	}
}
