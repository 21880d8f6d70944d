// handlers_roster.go - Main page and roster record handlers
package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/upload"
	"github.com/roster-manager/backend/internal/web"
)

// RosterHandlerImpl implements the RosterHandler interface
type RosterHandlerImpl struct {
	store     RosterStore
	uploadMgr *upload.Manager
	log       *logger.Logger
}

// NewRosterHandler creates a new roster handler instance
func NewRosterHandler(store RosterStore, uploadMgr *upload.Manager, log *logger.Logger) RosterHandler {
	return &RosterHandlerImpl{
		store:     store,
		uploadMgr: uploadMgr,
		log:       log,
	}
}

// HandleIndex renders the main page with the whole roster
func (h *RosterHandlerImpl) HandleIndex(c echo.Context) error {
	return renderIndex(c, h.store, nil)
}

// HandleUploadRoster replaces the roster with the contents of an uploaded CSV file
func (h *RosterHandlerImpl) HandleUploadRoster(c echo.Context) error {
	fh, _ := formFile(c, "csv_file")

	r, err := h.uploadMgr.ImportRoster(c.Request().Context(), fh)
	switch {
	case errors.Is(err, models.ErrMissingFile):
		web.AddFlash(c, noticeNoCSV)
	case errors.Is(err, models.ErrInvalidFileType):
		web.AddFlash(c, noticeBadCSVType)
	case err != nil:
		web.AddFlash(c, fmt.Sprintf(noticeCSVError, err))
	default:
		h.store.ReplaceAll(r)
		web.AddFlash(c, fmt.Sprintf(noticeCSVLoaded, r.Len()))
	}

	return redirectHome(c)
}

// HandleGetPerson returns one record as JSON
func (h *RosterHandlerImpl) HandleGetPerson(c echo.Context) error {
	p, ok := h.store.Get(nameParam(c))
	if !ok {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": false,
			"message": noticeNotFound,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    p,
	})
}

// HandleUpdatePerson overwrites the editable fields of one record
func (h *RosterHandlerImpl) HandleUpdatePerson(c echo.Context) error {
	name := c.FormValue("name")

	var upd models.PersonUpdate
	if err := c.Bind(&upd); err != nil {
		upd = models.PersonUpdate{}
	}

	if !h.store.Update(name, upd.Apply) {
		web.AddFlash(c, noticeNotFound)
		return redirectHome(c)
	}

	h.log.Info("person updated", "name", name)
	web.AddFlash(c, fmt.Sprintf(noticeUpdated, name))
	return redirectHome(c)
}

// HandleRemovePerson deletes a record together with its photo
func (h *RosterHandlerImpl) HandleRemovePerson(c echo.Context) error {
	name := nameParam(c)

	p, ok := h.store.Get(name)
	if !ok {
		web.AddFlash(c, noticeNotFound)
		return redirectHome(c)
	}

	if p.HasPicture() {
		if err := h.uploadMgr.RemovePhoto(c.Request().Context(), p.Picture); err != nil {
			h.log.Warn("photo not removed", "name", name, "photo", p.Picture, "error", err)
		}
	}

	if !h.store.Delete(name) {
		web.AddFlash(c, noticeNotFound)
		return redirectHome(c)
	}

	h.log.Info("person removed", "name", name)
	web.AddFlash(c, fmt.Sprintf(noticeRemoved, name))
	return redirectHome(c)
}

// HandleListPeople returns every record in roster order as JSON
func (h *RosterHandlerImpl) HandleListPeople(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.All())
}

// HandleListPeopleMsgpack returns every record in roster order as msgpack
func (h *RosterHandlerImpl) HandleListPeopleMsgpack(c echo.Context) error {
	data, err := msgpack.Marshal(h.store.All())
	if err != nil {
		return NewInternalError("failed to encode msgpack", err)
	}
	return c.Blob(http.StatusOK, "application/msgpack", data)
}

// renderIndex renders the main page, with search results when results is non-nil
func renderIndex(c echo.Context, store RosterStore, results []models.SearchResult) error {
	page := web.Page{
		People:        store.All(),
		SearchResults: results,
		Searched:      results != nil,
		SearchType:    c.FormValue("search_type"),
	}
	page.Notices = web.TakeFlashes(c)

	return c.Render(http.StatusOK, web.IndexTemplate, page)
}

func redirectHome(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/")
}

// nameParam returns the unescaped :name path parameter
func nameParam(c echo.Context) string {
	return pathParam(c, "name")
}

// pathParam returns a decoded path parameter. Echo routes on URL.RawPath
// when it is set, leaving params escaped; otherwise they are already decoded.
func pathParam(c echo.Context, key string) string {
	raw := c.Param(key)
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

// formFile returns the named multipart file. present reports whether the
// field was submitted at all, including as a file input left empty.
func formFile(c echo.Context, field string) (*multipart.FileHeader, bool) {
	files, present := formFiles(c, field)
	if len(files) == 0 {
		return nil, present
	}
	return files[0], true
}

func formFiles(c echo.Context, field string) ([]*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, false
	}
	if files := form.File[field]; len(files) > 0 {
		return files, true
	}
	_, present := form.Value[field]
	return nil, present
}
