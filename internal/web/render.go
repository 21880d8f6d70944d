package web

import (
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/roster-manager/backend/internal/models"
)

// IndexTemplate is the name of the main page template.
const IndexTemplate = "index.html"

// Page is the data rendered by the main page.
type Page struct {
	People        []models.Entry
	SearchResults []models.SearchResult
	Searched      bool
	SearchType    string
	Notices       []string
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"display":   Display,
		"personURL": PersonURL,
		"photoURL":  PhotoURL,
	}).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named template.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// Display returns v for presentation, showing the null marker as blank.
func Display(v string) string {
	if v == models.NullMarker {
		return ""
	}
	return v
}

// PersonURL joins a route prefix and an escaped person name.
func PersonURL(prefix, name string) string {
	return prefix + url.PathEscape(name)
}

// PhotoURL returns the address a stored photo is served from.
func PhotoURL(name string) string {
	return "/photo/" + url.PathEscape(name)
}
