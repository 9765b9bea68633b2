package signing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/util"
)

func PostDispatchSigningRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.POST("/:id/dispatch", postDispatchSigningRequestHandler(s))
}

func postDispatchSigningRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		request, err := s.Hardware.MarkRequestDispatched(ctx, c.Param("id"))
		if err != nil {
			log.Debug().Err(err).Msg("Failed to dispatch signing request")
			return httperrors.MapHardwareError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, signingRequestResponse(request))
	}
}
