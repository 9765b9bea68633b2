package common

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/util"
)

const healthyDBPingTimeout = 4 * time.Second

func GetHealthyRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/healthy", getHealthyHandler(s))
}

// getHealthyHandler probes the server and its database connection. Gated by
// the management secret since a failing probe leaks infrastructure state.
func getHealthyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !managementSecretMatches(c, s) {
			return echo.ErrUnauthorized
		}

		if !s.Ready() {
			return c.String(httpStatusServerIsDown, "Not ready.")
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), healthyDBPingTimeout)
		defer cancel()

		if err := s.DB.PingContext(ctx); err != nil {
			util.LogFromEchoContext(c).Error().Err(err).Msg("Database ping failed")
			return c.String(httpStatusServerIsDown, "Not healthy.")
		}

		return c.String(http.StatusOK, "OK.")
	}
}
