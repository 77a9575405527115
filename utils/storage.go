// utils/storage.go
package utils

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists uploaded files (bill proofs, documents, avatars).
// The replace-then-delete sequence around a record save is not atomic with the
// database write; a crash in between can orphan a file. Accepted gap.
type FileStore interface {
	Save(dir, filename string, content io.Reader) (string, error)
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

// DiskStore writes under a media root on the local filesystem.
type DiskStore struct {
	Root string
}

func NewDiskStore() *DiskStore {
	root := os.Getenv("MEDIA_ROOT")
	if root == "" {
		root = "media"
	}
	return &DiskStore{Root: root}
}

func (s *DiskStore) Save(dir, filename string, content io.Reader) (string, error) {
	rel := filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(filename))
	full := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(full)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, content); err != nil {
		return "", err
	}
	return rel, nil
}

func (s *DiskStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.Root, path))
}

func (s *DiskStore) Delete(path string) error {
	if path == "" || IsPlaceholderFile(path) {
		return nil
	}
	return os.Remove(filepath.Join(s.Root, path))
}

// IsPlaceholderFile reports whether the path is a seeded placeholder asset
// that must never be released.
func IsPlaceholderFile(path string) bool {
	return strings.Contains(path, "placeholder")
}

// DefaultFileStore is used by controllers and services; replaceable for tests.
var DefaultFileStore FileStore = NewDiskStore()
