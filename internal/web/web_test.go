package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roster-manager/backend/internal/models"
)

func TestDisplay(t *testing.T) {
	assert.Equal(t, "", Display("nan"))
	assert.Equal(t, "NaN", Display("NaN"))
	assert.Equal(t, "NY", Display("NY"))
	assert.Equal(t, "", Display(""))
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "/add_photo/Mary%20Ann", PersonURL("/add_photo/", "Mary Ann"))
	assert.Equal(t, "/remove_person/a%2Fb", PersonURL("/remove_person/", "a/b"))
	assert.Equal(t, "/photo/alice.jpg", PhotoURL("alice.jpg"))
}

func TestRenderer_Index(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	page := Page{
		People: []models.Entry{
			{Name: "Alice", Person: models.Person{State: "NY", Salary: "nan", Picture: "alice.jpg"}},
			{Name: "Bob <b>", Person: models.Person{State: "CA", Picture: "nan"}},
		},
		Searched:      true,
		SearchResults: []models.SearchResult{},
		Notices:       []string{"CSV uploaded successfully! Loaded 2 records."},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, IndexTemplate, page, nil))
	out := buf.String()

	assert.Contains(t, out, "CSV uploaded successfully! Loaded 2 records.")
	assert.Contains(t, out, "2 records")
	assert.Contains(t, out, `src="/photo/alice.jpg"`)
	assert.Contains(t, out, "Bob &lt;b&gt;")
	assert.Contains(t, out, "No results found.")
	assert.NotContains(t, out, ">nan<")
	assert.NotContains(t, out, "/photo/nan")
}

func TestRenderer_EmptyRoster(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, IndexTemplate, Page{}, nil))
	assert.Contains(t, buf.String(), "No records loaded.")
	assert.NotContains(t, buf.String(), "Results (")
}

func TestFlash_RoundTrip(t *testing.T) {
	e := echo.New()

	// First request queues notices and redirects.
	req := httptest.NewRequest(http.MethodPost, "/upload_photos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	AddFlash(c, "Photo a.jpg already exists. Skipped.")
	AddFlash(c, "Uploaded 1 photos successfully!")
	require.NoError(t, c.Redirect(http.StatusFound, "/"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, FlashCookie, cookies[0].Name)

	// The follow-up request reads and clears them.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	notices := TakeFlashes(c)
	assert.Equal(t, []string{"Photo a.jpg already exists. Skipped.", "Uploaded 1 photos successfully!"}, notices)
	require.NoError(t, c.String(http.StatusOK, "ok"))

	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestFlash_SameRequest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/search", nil), httptest.NewRecorder())

	AddFlash(c, "Invalid salary value")
	assert.Equal(t, []string{"Invalid salary value"}, TakeFlashes(c))
	assert.Empty(t, TakeFlashes(c))
}

func TestFlash_KeepsUnreadNoticesAndCaps(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(flashCookie([]string{"earlier"}))
	c := e.NewContext(req, httptest.NewRecorder())

	for i := 0; i < MaxNotices+5; i++ {
		AddFlash(c, "n")
	}
	notices := TakeFlashes(c)
	assert.Len(t, notices, MaxNotices)
	assert.NotContains(t, notices, "earlier")
}

func TestFlash_IgnoresGarbageCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookie, Value: "%%%not-base64"})
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Empty(t, TakeFlashes(c))
}

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	require.NoError(t, RegisterStaticRoutes(e))

	req := httptest.NewRequest(http.MethodGet, "/static/style.css", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/css"))

	req = httptest.NewRequest(http.MethodGet, "/static/missing.js", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFileSystem(t *testing.T) {
	staticFS, err := GetFileSystem()
	require.NoError(t, err)

	data, err := fs.ReadFile(staticFS, "app.js")
	require.NoError(t, err)
	assert.Contains(t, string(data), "/get_person/")
}
