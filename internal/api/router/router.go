package router

import (
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/handlers"
	"github/vaultbridge/hw-wallet/internal/api/middleware"
)

// Init initializes the echo instance, the middleware stack and all route
// groups on the given server. Must be called after wire initialization and
// before Start.
func Init(s *api.Server) {
	s.Echo = echo.New()

	s.Echo.Debug = s.Config.Echo.Debug
	s.Echo.HideBanner = true
	s.Echo.HidePort = true

	s.Echo.HTTPErrorHandler = HTTPErrorHandlerWithConfig(HTTPErrorHandlerConfig{
		HideInternalServerErrorDetails: s.Config.Echo.HideInternalServerErrorDetails,
	})

	if s.Config.Echo.EnableRecoverMiddleware {
		s.Echo.Use(echomiddleware.Recover())
	}

	if s.Config.Echo.EnableRequestIDMiddleware {
		s.Echo.Use(echomiddleware.RequestID())
	}

	if s.Config.Echo.EnableLoggerMiddleware {
		s.Echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Level:           s.Config.Logger.RequestLevel,
			LogRequestBody:  s.Config.Logger.LogRequestBody,
			LogResponseBody: s.Config.Logger.LogResponseBody,
		}))
	}

	if s.Config.Echo.EnablePprof {
		pprof.Register(s.Echo)
	}

	s.Router = &api.Router{
		Routes: nil, // populated by handlers.AttachAllRoutes

		Root: s.Echo.Group(""),

		// management endpoints are gated by the management secret where they
		// mutate or expose internals, readiness stays open for orchestrators
		Management: s.Echo.Group("/-"),

		APIV1Hardware: s.Echo.Group("/api/v1/hardware-wallets"),

		APIV1Signing: s.Echo.Group("/api/v1/signing-requests"),
	}

	handlers.AttachAllRoutes(s)
}
