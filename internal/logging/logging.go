// Package logging holds the small zerolog helpers shared by tablekit
// components: component tagging and context propagation.
package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Field names attached to every component logger.
const (
	FieldComponent = "component"
	FieldEngineID  = "engine_id"
)

// ComponentLogger returns a child of logger tagged with the component name.
func ComponentLogger(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str(FieldComponent, name).Logger()
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx. A context without one
// yields a disabled logger, never nil.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		l := zerolog.Nop()
		return &l
	}
	return zerolog.Ctx(ctx)
}
