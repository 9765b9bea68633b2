package common

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github/vaultbridge/hw-wallet/internal/api"
)

func GetMetricsRoute(s *api.Server) *echo.Route {
	return s.Router.Management.GET("/metrics", getMetricsHandler(s))
}

func getMetricsHandler(s *api.Server) echo.HandlerFunc {
	metricsHandler := echo.WrapHandler(promhttp.Handler())

	return func(c echo.Context) error {
		if !managementSecretMatches(c, s) {
			return echo.ErrUnauthorized
		}

		return metricsHandler(c)
	}
}
