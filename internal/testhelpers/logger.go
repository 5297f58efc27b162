package testhelpers

import (
	"io"
	"log/slog"

	"github.com/noble-hunt/AXLE-sub000/internal/logging"
)

// NewLogger creates a debug-level logger writing to the given sink, typically
// a [Writer] so that output only shows for failing tests.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
