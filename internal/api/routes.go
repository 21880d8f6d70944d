// routes.go - Route registration helpers
// This file provides a clean way to register all routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/upload"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Roster    RosterStore
	UploadMgr *upload.Manager
	Logger    *logger.Logger
	Version   string
}

// Handlers holds all handler instances
type Handlers struct {
	Health HealthHandler
	Roster RosterHandler
	Photo  PhotoHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version, deps.Roster),
		Roster: NewRosterHandler(deps.Roster, deps.UploadMgr, deps.Logger),
		Photo:  NewPhotoHandler(deps.Roster, deps.UploadMgr, deps.Logger),
	}
}

// RegisterRoutes registers all routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Main page and form endpoints
	e.GET("/", handlers.Roster.HandleIndex)
	e.POST("/upload_csv", handlers.Roster.HandleUploadRoster)
	e.POST("/search", handlers.Roster.HandleSearch)
	e.GET("/get_person/:name", handlers.Roster.HandleGetPerson)
	e.POST("/update_person", handlers.Roster.HandleUpdatePerson)
	e.POST("/remove_person/:name", handlers.Roster.HandleRemovePerson)

	// Photos
	e.POST("/upload_photos", handlers.Photo.HandleUploadPhotos)
	e.POST("/add_photo/:name", handlers.Photo.HandleAddPhoto)
	e.GET("/photo/:filename", handlers.Photo.HandleServePhoto)

	// JSON API
	apiGroup := e.Group("/api")
	apiGroup.GET("/health", handlers.Health.HandleHealth)
	apiGroup.GET("/people", handlers.Roster.HandleListPeople)
	apiGroup.GET("/people/msgpack", handlers.Roster.HandleListPeopleMsgpack)
}
