package util

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogFromContext returns a request-specific zerolog instance if available.
// Falls back to the global zerolog instance otherwise.
func LogFromContext(ctx context.Context) *zerolog.Logger {
	l := zerolog.Ctx(ctx)
	if l.GetLevel() == zerolog.Disabled {
		if ShouldDisableLogger(ctx) {
			return l
		}
		l = &log.Logger
	}
	return l
}

// LogFromEchoContext returns a request-specific zerolog instance from an echo context.
func LogFromEchoContext(c echo.Context) *zerolog.Logger {
	return LogFromContext(c.Request().Context())
}

type contextKey string

const ctxKeyDisableLogger contextKey = "disable_logger"

// DisableLogger disables the logger for the given context, overriding the
// global fallback of LogFromContext. Mainly used to silence noisy jobs in tests.
func DisableLogger(ctx context.Context, shouldDisable bool) context.Context {
	return context.WithValue(ctx, ctxKeyDisableLogger, shouldDisable)
}

// ShouldDisableLogger checks whether the logger was disabled for the given context.
func ShouldDisableLogger(ctx context.Context) bool {
	s := ctx.Value(ctxKeyDisableLogger)
	if s == nil {
		return false
	}
	shouldDisable, ok := s.(bool)
	if !ok {
		return false
	}
	return shouldDisable
}
