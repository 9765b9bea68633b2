package common

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func PostExpireRequestsRoute(s *api.Server) *echo.Route {
	return s.Router.Management.POST("/expire-signing-requests", postExpireRequestsHandler(s))
}

// postExpireRequestsHandler runs one expiry sweep over all overdue open
// signing requests. Exposed for external schedulers, the sweep itself is
// idempotent so overlapping runs are harmless.
func postExpireRequestsHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		if !managementSecretMatches(c, s) {
			return echo.ErrUnauthorized
		}

		count, err := s.Hardware.ExpireOldRequests(ctx)
		if err != nil {
			return err
		}

		response := &types.PostExpireRequestsResponse{
			ExpiredCount: swag.Int64(int64(count)),
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}

func managementSecretMatches(c echo.Context, s *api.Server) bool {
	secret := c.QueryParam("mgmt-secret")
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.Config.Management.Secret)) == 1
}
