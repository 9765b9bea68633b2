package devices

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetAssociationRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.GET("/:id", getAssociationHandler(s))
}

func getAssociationHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		association, err := s.Hardware.GetAssociation(ctx, c.Param("id"))
		if err != nil {
			return httperrors.MapHardwareError(err)
		}

		return util.ValidateAndReturn(c, http.StatusOK, associationResponse(association))
	}
}
