// Package server assembles the HTTP application from configuration.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/roster-manager/backend/internal/api"
	"github.com/roster-manager/backend/internal/config"
	"github.com/roster-manager/backend/internal/logger"
	"github.com/roster-manager/backend/internal/roster"
	"github.com/roster-manager/backend/internal/storage"
	"github.com/roster-manager/backend/internal/storage/minio"
	"github.com/roster-manager/backend/internal/upload"
	"github.com/roster-manager/backend/internal/web"
)

// Server is a configured HTTP application.
type Server struct {
	Echo   *echo.Echo
	Roster *roster.Store

	cfg *config.AppConfig
	log *logger.Logger
}

// New builds the application: storage areas, the roster store, middleware and routes.
func New(ctx context.Context, cfg *config.AppConfig, log *logger.Logger, version string) (*Server, error) {
	uploads, err := storage.NewLocalStore(cfg.Storage.UploadsDirectory)
	if err != nil {
		return nil, fmt.Errorf("initializing upload storage: %w", err)
	}
	log.Debug("upload storage ready", "dir", uploads.Dir())

	photos, err := newPhotoStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing photo storage: %w", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	store := roster.NewStore()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = api.NewErrorHandler(log, strings.EqualFold(cfg.Logging.Level, "debug"))

	configureMiddleware(e, cfg, log)

	handlers := api.NewHandlers(&api.Dependencies{
		Roster:    store,
		UploadMgr: upload.NewManager(uploads, photos, log),
		Logger:    log,
		Version:   version,
	})
	api.RegisterRoutes(e, handlers)

	if err := web.RegisterStaticRoutes(e); err != nil {
		return nil, fmt.Errorf("registering static routes: %w", err)
	}

	return &Server{Echo: e, Roster: store, cfg: cfg, log: log}, nil
}

func newPhotoStore(ctx context.Context, cfg *config.AppConfig) (storage.Store, error) {
	if cfg.Photos.Backend != config.BackendMinIO {
		return storage.NewLocalStore(cfg.Storage.PhotosDirectory)
	}

	m := cfg.Photos.MinIO
	return minio.New(ctx, minio.Options{
		Endpoint:  m.Endpoint,
		AccessKey: m.AccessKey,
		SecretKey: m.SecretKey,
		Bucket:    m.Bucket,
		Prefix:    m.Prefix,
		UseSSL:    m.UseSSL,
	})
}

func configureMiddleware(e *echo.Echo, cfg *config.AppConfig, log *logger.Logger) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Logging.RequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/static/") || path == "/api/health"
		},
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				log.Warn("request failed", append(args, "error", v.Error)...)
				return nil
			}
			log.Info("request", args...)
			return nil
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered", "path", c.Request().URL.Path, "error", err, "stack", string(stack))
			return err
		},
	}))

	if cfg.Server.EnableGzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Skipper: func(c echo.Context) bool {
				return strings.HasPrefix(c.Request().URL.Path, "/photo/")
			},
		}))
	}

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Echo.StartServer(srv)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
