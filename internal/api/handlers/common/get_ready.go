package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
)

// 521 is an unofficial cloudflare-style status signaling the origin is down,
// used so orchestrators can tell "not ready" apart from a handler error.
const httpStatusServerIsDown = 521

func GetReadyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/ready", getReadyHandler(s))
}

// getReadyHandler reports whether the server has all its components
// initialized. It deliberately does not probe downstream dependencies, the
// liveness of those is the job of their own collectors and alerts.
func getReadyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.Ready() {
			return c.String(httpStatusServerIsDown, "Not ready.")
		}

		return c.String(http.StatusOK, "Ready.")
	}
}
