// Package upload validates uploaded roster and photo files and hands them to
// storage.
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/parser"
	"github.com/roster-manager/backend/internal/roster"
	"github.com/roster-manager/backend/internal/storage"
)

// PhotoResult is the outcome for one file of a photo batch.
type PhotoResult struct {
	Filename string // as uploaded
	Name     string // sanitized, set when the file passed validation
	Err      error
}

// Manager persists uploads into the roster upload area and the photo area.
type Manager struct {
	uploads storage.Store
	photos  storage.Store
	log     *logger.Logger
}

// NewManager creates an upload manager.
func NewManager(uploads, photos storage.Store, log *logger.Logger) *Manager {
	return &Manager{uploads: uploads, photos: photos, log: log}
}

// Photos returns the photo area.
func (m *Manager) Photos() storage.Store {
	return m.photos
}

// ImportRoster validates a roster upload, keeps a copy of the raw file and
// parses it. Parse failures wrap parser.ErrParse.
func (m *Manager) ImportRoster(ctx context.Context, fh *multipart.FileHeader) (*roster.Roster, error) {
	name, err := Check(fh, RosterExtensions)
	if err != nil {
		return nil, err
	}

	data, err := readAll(fh)
	if err != nil {
		return nil, err
	}

	info, err := m.uploads.Save(ctx, name, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("saving roster %s: %w", name, err)
	}

	r, err := parser.ParseRoster(bytes.NewReader(data))
	if err != nil {
		m.log.Warn("roster rejected", "file", name, "upload_id", info.ID, "error", err)
		return nil, err
	}

	m.log.Info("roster imported", "file", name, "upload_id", info.ID, "size", info.Size, "records", r.Len())
	return r, nil
}

// SavePhotos stores a batch of photos without overwriting. Files with an
// empty filename are skipped silently and produce no result. A file whose
// sanitized name already exists, including one saved earlier in the same
// batch, fails with models.ErrDuplicatePhoto. The returned count is the
// number of files stored.
func (m *Manager) SavePhotos(ctx context.Context, files []*multipart.FileHeader) ([]PhotoResult, int) {
	var (
		results []PhotoResult
		saved   int
	)

	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}

		res := PhotoResult{Filename: fh.Filename}
		res.Name, res.Err = m.savePhoto(ctx, fh, false)
		if res.Err == nil {
			saved++
		}
		results = append(results, res)
	}

	m.log.Info("photo batch stored", "files", len(results), "saved", saved)
	return results, saved
}

// SavePhoto stores a single photo, replacing any existing photo of the same
// sanitized name, and returns that name.
func (m *Manager) SavePhoto(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	return m.savePhoto(ctx, fh, true)
}

// RemovePhoto deletes a stored photo. A photo that is already gone is not an
// error.
func (m *Manager) RemovePhoto(ctx context.Context, name string) error {
	if err := m.photos.Delete(ctx, name); err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("removing photo %s: %w", name, err)
	}
	return nil
}

func (m *Manager) savePhoto(ctx context.Context, fh *multipart.FileHeader, overwrite bool) (string, error) {
	name, err := Check(fh, PhotoExtensions)
	if err != nil {
		return "", err
	}

	if !overwrite {
		exists, err := m.photos.Exists(ctx, name)
		if err != nil {
			return "", fmt.Errorf("checking photo %s: %w", name, err)
		}
		if exists {
			return name, fmt.Errorf("%w: %s", models.ErrDuplicatePhoto, name)
		}
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	info, err := m.photos.Save(ctx, name, f)
	if err != nil {
		return "", fmt.Errorf("saving photo %s: %w", name, err)
	}

	m.log.Debug("photo stored", "file", name, "upload_id", info.ID, "size", info.Size)
	return name, nil
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	return data, nil
}
