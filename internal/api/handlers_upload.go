// handlers_upload.go - Photo upload and delivery handlers
package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/storage"
	"github.com/roster-manager/backend/internal/upload"
	"github.com/roster-manager/backend/internal/web"
)

// PhotoHandlerImpl implements the PhotoHandler interface
type PhotoHandlerImpl struct {
	store     RosterStore
	uploadMgr *upload.Manager
	log       *logger.Logger
}

// NewPhotoHandler creates a new photo handler instance
func NewPhotoHandler(store RosterStore, uploadMgr *upload.Manager, log *logger.Logger) PhotoHandler {
	return &PhotoHandlerImpl{
		store:     store,
		uploadMgr: uploadMgr,
		log:       log,
	}
}

// HandleUploadPhotos stores a batch of photos, skipping names already taken
func (h *PhotoHandlerImpl) HandleUploadPhotos(c echo.Context) error {
	files, present := formFiles(c, "photo_files")
	if !present {
		web.AddFlash(c, noticeNoPhotos)
		return redirectHome(c)
	}

	results, saved := h.uploadMgr.SavePhotos(c.Request().Context(), files)
	for _, res := range results {
		switch {
		case res.Err == nil:
		case errors.Is(res.Err, models.ErrInvalidFileType):
			web.AddFlash(c, fmt.Sprintf(noticeBadPhotoType, res.Filename))
		case errors.Is(res.Err, models.ErrDuplicatePhoto):
			web.AddFlash(c, fmt.Sprintf(noticePhotoExists, res.Name))
		default:
			h.log.Error("photo upload failed", "file", res.Filename, "error", res.Err)
			web.AddFlash(c, fmt.Sprintf(noticePhotoError, res.Filename, res.Err))
		}
	}

	web.AddFlash(c, fmt.Sprintf(noticePhotosUploaded, saved))
	return redirectHome(c)
}

// HandleAddPhoto stores one photo and assigns it to a record, replacing any
// stored photo of the same name
func (h *PhotoHandlerImpl) HandleAddPhoto(c echo.Context) error {
	name := nameParam(c)
	if _, ok := h.store.Get(name); !ok {
		web.AddFlash(c, noticeNotFound)
		return redirectHome(c)
	}

	fh, present := formFile(c, "photo_file")
	if !present {
		web.AddFlash(c, noticeNoPhoto)
		return redirectHome(c)
	}

	filename, err := h.uploadMgr.SavePhoto(c.Request().Context(), fh)
	switch {
	case errors.Is(err, models.ErrMissingFile), errors.Is(err, models.ErrInvalidFileType):
		web.AddFlash(c, noticeBadPhoto)
		return redirectHome(c)
	case err != nil:
		h.log.Error("photo upload failed", "name", name, "error", err)
		web.AddFlash(c, fmt.Sprintf(noticePhotoError, fh.Filename, err))
		return redirectHome(c)
	}

	if !h.store.Update(name, func(p *models.Person) { p.Picture = filename }) {
		web.AddFlash(c, noticeNotFound)
		return redirectHome(c)
	}

	h.log.Info("photo assigned", "name", name, "photo", filename)
	web.AddFlash(c, fmt.Sprintf(noticePhotoAdded, name))
	return redirectHome(c)
}

// HandleServePhoto streams a stored photo
func (h *PhotoHandlerImpl) HandleServePhoto(c echo.Context) error {
	filename := pathParam(c, "filename")
	if !storage.ValidName(filename) {
		return NewNotFoundError("photo", filename)
	}

	rc, err := h.uploadMgr.Photos().Open(c.Request().Context(), filename)
	if errors.Is(err, models.ErrNotFound) {
		return NewNotFoundError("photo", filename)
	}
	if err != nil {
		return NewInternalError("failed to open photo", err)
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
