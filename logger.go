package fontstash

import (
	"log/slog"

	"github.com/gogpu/fontstash/internal/logging"
)

// SetLogger configures the logger for fontstash and all its sub-packages.
// By default, fontstash produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by fontstash:
//   - [slog.LevelDebug]: internal diagnostics (fonts loaded, atlases created)
//   - [slog.LevelInfo]: lifecycle events (atlas rotation, registry eviction)
//   - [slog.LevelWarn]: non-fatal issues (glyphs skipped after a rasterization failure)
//
// Example:
//
//	// Enable debug-level logging for full diagnostics:
//	fontstash.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by fontstash.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
