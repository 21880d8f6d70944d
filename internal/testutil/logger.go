package testutil

import (
	"io"
	"log/slog"

	"github.com/roster-manager/backend/internal/logger"
)

// NewNoopLogger returns a logger that discards everything.
func NewNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}
