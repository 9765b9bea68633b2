package devices

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/util"
)

func DeleteAssociationRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.DELETE("/:id", deleteAssociationHandler(s))
}

func deleteAssociationHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		if err := s.Hardware.RemoveAssociation(ctx, c.Param("id")); err != nil {
			log.Debug().Err(err).Msg("Failed to remove hardware wallet association")
			return httperrors.MapHardwareError(err)
		}

		return c.NoContent(http.StatusNoContent)
	}
}
