// mock_storage.go - In-memory storage.Store for testing
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/storage"
)

// MockStorage implements storage.Store in memory
type MockStorage struct {
	files    map[string]*models.FileInfo
	fileData map[string][]byte
	mu       sync.RWMutex

	// Optional error injection, keyed by operation name: save, open, exists, delete
	Errors map[string]error
}

// NewMockStorage creates an empty mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files:    make(map[string]*models.FileInfo),
		fileData: make(map[string][]byte),
		Errors:   make(map[string]error),
	}
}

func (m *MockStorage) Save(_ context.Context, name string, r io.Reader) (*models.FileInfo, error) {
	if err := m.Errors["save"]; err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return m.AddFile(name, data), nil
}

func (m *MockStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	if err := m.Errors["open"]; err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.fileData[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockStorage) Exists(_ context.Context, name string) (bool, error) {
	if err := m.Errors["exists"]; err != nil {
		return false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.fileData[name]
	return ok, nil
}

func (m *MockStorage) Delete(_ context.Context, name string) error {
	if err := m.Errors["delete"]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.fileData[name]; !ok {
		return fmt.Errorf("%w: %s", models.ErrNotFound, name)
	}
	delete(m.files, name)
	delete(m.fileData, name)
	return nil
}

// Ensure MockStorage implements storage.Store
var _ storage.Store = (*MockStorage)(nil)

// Test Helper Methods

// AddFile adds a file directly to the mock
func (m *MockStorage) AddFile(name string, data []byte) *models.FileInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	file := &models.FileInfo{
		ID:         name,
		Name:       name,
		Size:       int64(len(data)),
		UploadedAt: time.Now(),
		Status:     "uploaded",
	}
	m.files[name] = file
	m.fileData[name] = append([]byte(nil), data...)
	return file
}

// GetFileData returns the file content
func (m *MockStorage) GetFileData(name string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.fileData[name]
	return data, ok
}

// Names returns the stored names in sorted order
func (m *MockStorage) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.fileData))
	for name := range m.fileData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFileCount returns the number of stored files
func (m *MockStorage) GetFileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
