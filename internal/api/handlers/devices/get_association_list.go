package devices

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"

	"github/vaultbridge/hw-wallet/internal/api"
	"github/vaultbridge/hw-wallet/internal/api/httperrors"
	"github/vaultbridge/hw-wallet/internal/types"
	"github/vaultbridge/hw-wallet/internal/util"
)

func GetAssociationListRoute(s *api.Server) *echo.Route {
	return s.Router.APIV1Hardware.GET("", getAssociationListHandler(s))
}

func getAssociationListHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		userID := c.QueryParam("userId")
		if userID == "" {
			return httperrors.NewHTTPValidationError(
				http.StatusBadRequest,
				types.PublicHTTPErrorTypeGeneric,
				"Missing userId",
				[]*types.HTTPValidationErrorDetail{
					{
						Key:   swag.String("userId"),
						In:    swag.String("query"),
						Error: swag.String("required"),
					},
				},
			)
		}

		associations, err := s.Hardware.ListAssociations(ctx, userID)
		if err != nil {
			return httperrors.MapHardwareError(err)
		}

		response := &types.GetAssociationListResponse{
			Associations: make([]*types.HardwareWalletAssociationResponse, 0, len(associations)),
		}
		for _, association := range associations {
			response.Associations = append(response.Associations, associationResponse(association))
		}

		return util.ValidateAndReturn(c, http.StatusOK, response)
	}
}
