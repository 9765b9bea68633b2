package common

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/config"
)

func GetVersionRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/version", getVersionHandler(s))
}

func getVersionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !managementSecretMatches(c, s) {
			return echo.ErrUnauthorized
		}

		return c.String(http.StatusOK, config.GetFormattedBuildArgs())
	}
}
