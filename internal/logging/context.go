package logging

import (
	"context"
	"log/slog"

	"curator/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldContainer is the standardized structured logging key for container file paths.
	FieldContainer = "container"
	// FieldEntity is the standardized structured logging key for entity names.
	FieldEntity = "entity"
	// FieldKind is the standardized structured logging key for entity kinds.
	FieldKind = "kind"
	// FieldLibrary is the standardized structured logging key for library roots.
	FieldLibrary = "library"
)

// WithContext returns the logger enriched with standardized fields carried on
// the context. A nil logger becomes a no-op logger so callers never check.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if ctx == nil {
		return logger
	}
	if path, ok := services.ContainerFromContext(ctx); ok {
		logger = logger.With(String(FieldContainer, path))
	}
	return logger
}
