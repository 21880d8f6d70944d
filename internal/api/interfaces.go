// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/roster-manager/backend/internal/models"
	"github.com/roster-manager/backend/internal/roster"
)

// RosterHandler handles the page and the record operations
type RosterHandler interface {
	HandleIndex(c echo.Context) error
	HandleUploadRoster(c echo.Context) error
	HandleSearch(c echo.Context) error
	HandleGetPerson(c echo.Context) error
	HandleUpdatePerson(c echo.Context) error
	HandleRemovePerson(c echo.Context) error
	HandleListPeople(c echo.Context) error
	HandleListPeopleMsgpack(c echo.Context) error
}

// PhotoHandler handles photo uploads and delivery
type PhotoHandler interface {
	HandleUploadPhotos(c echo.Context) error
	HandleAddPhoto(c echo.Context) error
	HandleServePhoto(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// RosterStore defines the roster operations handlers depend on.
// This allows mocking in tests
type RosterStore interface {
	Get(name string) (models.Person, bool)
	Update(name string, fn func(p *models.Person)) bool
	Delete(name string) bool
	ReplaceAll(r *roster.Roster)
	All() []models.Entry
	Len() int
	ByName(name string) []models.SearchResult
	ByState(state string) []models.SearchResult
	BySalary(r roster.SalaryRange) []models.SearchResult
}

var _ RosterStore = (*roster.Store)(nil)
