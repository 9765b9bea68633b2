package signing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetSigningRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.GET("/:id", getSigningRequestHandler(s))
}

func getSigningRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		request, err := s.Hardware.GetSigningRequest(ctx, c.Param("id"))
		if err != nil {
			return httperrors.MapHardwareError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, signingRequestResponse(request))
	}
}
