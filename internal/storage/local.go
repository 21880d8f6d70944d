// Package storage persists uploaded files (raw rosters and photos) by name.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roster-manager/backend/internal/models"
)

// Store defines the interface for named file storage. Names are plain file
// names; anything containing a path separator is rejected as not found.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) (*models.FileInfo, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}

// ValidName reports whether name can address a stored file.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

// LocalStore implements Store on a directory of the local filesystem.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

// NewLocalStore creates a LocalStore rooted at dir, creating it if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes r under name, replacing any existing file of that name.
func (s *LocalStore) Save(_ context.Context, name string, r io.Reader) (*models.FileInfo, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	size, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("writing file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("moving file into place: %w", err)
	}

	return &models.FileInfo{
		ID:         uuid.New().String(),
		Name:       name,
		Size:       size,
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}, nil
}

// Open returns a reader for the named file.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}

	f, err := os.Open(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	return f, nil
}

// Exists reports whether a regular file of that name is stored.
func (s *LocalStore) Exists(_ context.Context, name string) (bool, error) {
	if !ValidName(name) {
		return false, nil
	}

	st, err := os.Stat(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking file: %w", err)
	}
	return !st.IsDir(), nil
}

// Delete removes the named file.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	if !ValidName(name) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.dir, name)
}
