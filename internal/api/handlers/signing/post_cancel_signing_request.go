package signing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/util"
)

func PostCancelSigningRequestRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Signing.POST("/:id/cancel", postCancelSigningRequestHandler(s))
}

func postCancelSigningRequestHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if err := s.Hardware.CancelSigningRequest(ctx, c.Param("id")); err != nil {
			log.Debug().Err(err).Msg("Failed to cancel signing request")
			return httperrors.MapHardwareError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
