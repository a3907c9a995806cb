package infrastructure

import (
	"log/slog"
)

// WithComponent tags logger with the name of the component that owns it
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
