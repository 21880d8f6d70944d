package upload

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/parser"
	"github.com/roster-manager/backend/internal/testutil"
)

func newTestManager() (*Manager, *testutil.MockStorage, *testutil.MockStorage) {
	uploads := testutil.NewMockStorage()
	photos := testutil.NewMockStorage()
	return NewManager(uploads, photos, testutil.NewNoopLogger()), uploads, photos
}

func TestManager_ImportRoster(t *testing.T) {
	ctx := context.Background()

	t.Run("parses and keeps raw copy", func(t *testing.T) {
		m, uploads, _ := newTestManager()
		csv := "Name,State,Salary\nAlice,NY,50000\nBob,CA,60000\n"
		fh := testutil.FileHeaders(t, "csv_file", testutil.File{Filename: "Staff List.csv", Content: []byte(csv)})[0]

		r, err := m.ImportRoster(ctx, fh)
		require.NoError(t, err)
		assert.Equal(t, 2, r.Len())

		data, ok := uploads.GetFileData("Staff_List.csv")
		require.True(t, ok)
		assert.Equal(t, csv, string(data))
	})

	t.Run("invalid type", func(t *testing.T) {
		m, uploads, _ := newTestManager()
		fh := testutil.FileHeaders(t, "csv_file", testutil.File{Filename: "people.txt", Content: []byte("Name\nA\n")})[0]

		_, err := m.ImportRoster(ctx, fh)
		assert.ErrorIs(t, err, models.ErrInvalidFileType)
		assert.Zero(t, uploads.GetFileCount())
	})

	t.Run("parse error", func(t *testing.T) {
		m, _, _ := newTestManager()
		fh := testutil.FileHeaders(t, "csv_file", testutil.File{Filename: "bad.csv", Content: []byte("Name,State\nAlice,NY,extra\n")})[0]

		_, err := m.ImportRoster(ctx, fh)
		assert.ErrorIs(t, err, parser.ErrParse)
	})

	t.Run("storage failure", func(t *testing.T) {
		m, uploads, _ := newTestManager()
		uploads.Errors["save"] = errors.New("disk full")
		fh := testutil.FileHeaders(t, "csv_file", testutil.File{Filename: "a.csv", Content: []byte("Name\nA\n")})[0]

		_, err := m.ImportRoster(ctx, fh)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestManager_SavePhotos(t *testing.T) {
	ctx := context.Background()
	m, _, photos := newTestManager()
	photos.AddFile("existing.png", []byte("old"))

	files := testutil.FileHeaders(t, "photo_files",
		testutil.File{Filename: "alice.jpg", Content: []byte("a")},
		testutil.File{Filename: "notes.txt", Content: []byte("n")},
		testutil.File{Filename: "existing.png", Content: []byte("new")},
		testutil.File{Filename: "alice.jpg", Content: []byte("dup")},
		testutil.File{Filename: "bob.gif", Content: []byte("b")},
	)

	results, saved := m.SavePhotos(ctx, files)
	assert.Equal(t, 2, saved)
	require.Len(t, results, 5)

	assert.NoError(t, results[0].Err)
	assert.Equal(t, "alice.jpg", results[0].Name)
	assert.ErrorIs(t, results[1].Err, models.ErrInvalidFileType)
	assert.ErrorIs(t, results[2].Err, models.ErrDuplicatePhoto)
	assert.Equal(t, "existing.png", results[2].Name)
	assert.ErrorIs(t, results[3].Err, models.ErrDuplicatePhoto, "second copy within one batch")
	assert.NoError(t, results[4].Err)

	old, _ := photos.GetFileData("existing.png")
	assert.Equal(t, "old", string(old))
	first, _ := photos.GetFileData("alice.jpg")
	assert.Equal(t, "a", string(first))
	assert.Equal(t, []string{"alice.jpg", "bob.gif", "existing.png"}, photos.Names())
}

func TestManager_SavePhotosSkipsEmptyFilenames(t *testing.T) {
	m, _, _ := newTestManager()
	results, saved := m.SavePhotos(context.Background(), nil)
	assert.Empty(t, results)
	assert.Zero(t, saved)
}

func TestManager_SavePhotoOverwrites(t *testing.T) {
	ctx := context.Background()
	m, _, photos := newTestManager()
	photos.AddFile("alice.png", []byte("old"))

	fh := testutil.FileHeaders(t, "photo_file", testutil.File{Filename: "alice.png", Content: []byte("new")})[0]
	name, err := m.SavePhoto(ctx, fh)
	require.NoError(t, err)
	assert.Equal(t, "alice.png", name)

	data, _ := photos.GetFileData("alice.png")
	assert.Equal(t, "new", string(data))
}

func TestManager_RemovePhoto(t *testing.T) {
	ctx := context.Background()
	m, _, photos := newTestManager()
	photos.AddFile("alice.png", []byte("x"))

	assert.NoError(t, m.RemovePhoto(ctx, "alice.png"))
	assert.Zero(t, photos.GetFileCount())
	assert.NoError(t, m.RemovePhoto(ctx, "alice.png"), "already gone")

	photos.Errors["delete"] = errors.New("boom")
	assert.Error(t, m.RemovePhoto(ctx, "other.png"))
}
